package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/locale"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/prefs"
	"github.com/dshills/voxnav/internal/store"
	"github.com/dshills/voxnav/internal/tree"
	mt "github.com/dshills/voxnav/internal/tree/memtree"
)

func page() *mt.Document {
	return mt.NewDocument(
		mt.N(tree.RoleRootWebArea, "Page", mt.ID("page"), mt.Kids(
			mt.N(tree.RoleHeading, "Welcome", mt.ID("h"), mt.Level(2)),
			mt.N(tree.RoleList, "", mt.ID("list"), mt.Kids(
				mt.N(tree.RoleListItem, "First", mt.ID("li1")),
				mt.N(tree.RoleListItem, "Second", mt.ID("li2")),
			)),
			mt.N(tree.RoleLink, "Docs", mt.ID("link"), mt.States(tree.StateVisited|tree.StateFocusable)),
			mt.N(tree.RoleCheckBox, "Remember me", mt.ID("cb"), mt.States(tree.StateChecked)),
			mt.N(tree.RoleTextField, "Email", mt.ID("email"), mt.Value("a@b.c"), mt.States(tree.StateEditable|tree.StateInvalid)),
			mt.N(tree.RoleParagraph, "Bonjour", mt.ID("fr"), mt.Lang("fr")),
			mt.N(tree.RoleParagraph, "Konnichiwa", mt.ID("ja"), mt.Lang("ja")),
		)),
	)
}

func newRenderer(t *testing.T, p *prefs.Prefs) (*output.Renderer, *output.Recorder) {
	t.Helper()
	voices, err := locale.NewSelector("en-US", []locale.Voice{
		{Name: "Samantha", Lang: "en-US"},
		{Name: "Amelie", Lang: "fr-FR"},
	})
	require.NoError(t, err)
	rec := output.NewRecorder()
	return output.NewRenderer(rec, output.WithPrefs(p), output.WithVoices(voices)), rec
}

func describe(r *output.Renderer, n tree.Node) string {
	rng := cursor.FromNode(n)
	return r.New().WithRichSpeechAndBraille(&rng, nil, output.EventFocus).Text()
}

func TestDescribeRoles(t *testing.T) {
	d := page()
	r, _ := newRenderer(t, prefs.New(store.New()))

	tests := []struct {
		id   string
		want string
	}{
		{"h", "Welcome, Heading 2"},
		{"list", "List with 2 items"},
		{"link", "Docs, Visited link, Press Search+Space to activate"},
		{"cb", "Remember me, Check box, Checked, Press Search+Space to toggle"},
		{"email", "Email, a@b.c, Edit text, Invalid entry, Type to enter text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(r, d.Get(tt.id)), tt.id)
	}
}

func TestWithoutHints(t *testing.T) {
	d := page()
	r, _ := newRenderer(t, prefs.New(store.New()))
	rng := cursor.FromNode(d.Get("link"))
	got := r.New().WithRichSpeechAndBraille(&rng, nil, output.EventFocus).WithoutHints().Text()
	assert.Equal(t, "Docs, Visited link", got)
}

func TestEnteredContainerAnnounced(t *testing.T) {
	d := page()
	r, rec := newRenderer(t, prefs.New(store.New()))

	prev := cursor.FromNode(d.Get("h"))
	rng := cursor.FromNode(d.Get("li1"))
	r.New().WithRichSpeechAndBraille(&rng, &prev, output.EventNavigate).Go()

	require.Len(t, rec.Utterances, 1)
	assert.Equal(t, "List with 2 items, First, List item", rec.Last())
	assert.Equal(t, []string{"List with 2 items, First, List item"}, rec.BrailleLines)

	rec.Reset()
	next := cursor.FromNode(d.Get("li2"))
	r.New().WithRichSpeechAndBraille(&next, &rng, output.EventNavigate).Go()
	assert.Equal(t, "Second, List item", rec.Last())
}

func TestCharacterRangePhonetic(t *testing.T) {
	d := page()
	r, rec := newRenderer(t, prefs.New(store.New()))

	h := d.Get("h")
	rng := cursor.NewRange(cursor.New(h, 0), cursor.New(h, 1))
	r.New().WithRichSpeechAndBraille(&rng, nil, output.EventNavigate).
		WithSpeechProps(output.SpeechProps{Phonetic: true}).
		Go()

	assert.Equal(t, []string{"W", "whiskey"}, rec.Spoken())
	assert.True(t, rec.Utterances[0].Props.Phonetic)
}

func TestFormatAndEarcon(t *testing.T) {
	r, rec := newRenderer(t, prefs.New(store.New()))

	r.New().WithEarcon(output.EarconWrap).Format(output.MsgNoNextHeading).Go()
	assert.Equal(t, []output.Earcon{output.EarconWrap}, rec.Earcons)
	assert.Equal(t, "No next heading", rec.Last())

	r.Announce(output.MsgRate, 150)
	assert.Equal(t, "Rate 150 percent", rec.Last())

	r.Announce("Press Space to continue")
	assert.Equal(t, "Press Space to continue", rec.Last())
}

func TestMessageKeysFromTables(t *testing.T) {
	r, rec := newRenderer(t, prefs.New(store.New()))

	keys := map[string]output.MsgKey{
		"heading": output.MsgNoNextHeading,
		"rate":    output.MsgRate,
		"literal": output.MsgKey("Battery at 80 percent"),
	}
	assert.Equal(t, "No next heading", r.Message(keys["heading"]))
	assert.Equal(t, "Rate 150 percent", r.Message(keys["rate"], 150))

	r.Announce(keys["literal"])
	assert.Equal(t, "Battery at 80 percent", rec.Last())
}

func TestEarconsDisabled(t *testing.T) {
	p := prefs.New(store.New())
	require.NoError(t, p.SetBool(prefs.Earcons, false))
	r, rec := newRenderer(t, p)

	r.Earcon(output.EarconWrap)
	assert.Empty(t, rec.Earcons)
}

func TestSpeechDisabledStillBrailles(t *testing.T) {
	p := prefs.New(store.New())
	require.NoError(t, p.SetBool(prefs.SpeechEnabled, false))
	r, rec := newRenderer(t, p)

	r.Announce(output.MsgNoFocus)
	assert.Empty(t, rec.Utterances)
	assert.Equal(t, []string{"No current focus"}, rec.BrailleLines)
}

func TestLanguageSwitching(t *testing.T) {
	d := page()
	p := prefs.New(store.New())
	require.NoError(t, p.SetBool(prefs.LanguageSwitching, true))
	r, rec := newRenderer(t, p)

	fr := cursor.FromNode(d.Get("fr"))
	r.New().WithRichSpeechAndBraille(&fr, nil, output.EventNavigate).Go()
	require.Len(t, rec.Utterances, 1)
	assert.Equal(t, "Amelie", rec.Utterances[0].Props.Voice)

	rec.Reset()
	ja := cursor.FromNode(d.Get("ja"))
	r.New().WithRichSpeechAndBraille(&ja, nil, output.EventNavigate).Go()
	assert.Equal(t, []string{"No voice available for ja", "Konnichiwa"}, rec.Spoken())
	assert.Equal(t, "Samantha", rec.Utterances[1].Props.Voice)

	rec.Reset()
	r.New().WithRichSpeechAndBraille(&ja, nil, output.EventNavigate).Go()
	assert.Equal(t, []string{"Konnichiwa"}, rec.Spoken(), "notice is spoken once per language")
}

func TestGermanCatalog(t *testing.T) {
	voices, err := locale.NewSelector("de-DE", nil)
	require.NoError(t, err)
	rec := output.NewRecorder()
	r := output.NewRenderer(rec, output.WithVoices(voices))

	assert.Equal(t, "Keine nächste Überschrift", r.Message(output.MsgNoNextHeading))
	assert.Equal(t, "No next link", r.Message(output.MsgNoNextLink))
}

func TestMultiNodeRange(t *testing.T) {
	d := page()
	r, _ := newRenderer(t, nil)
	li1, li2 := d.Get("li1"), d.Get("li2")
	rng := cursor.NewRange(cursor.New(li1, 2), cursor.New(li2, 3))
	got := r.New().WithRichSpeechAndBraille(&rng, nil, output.EventSelection).Text()
	assert.Equal(t, "rst Sec", got)
}
