package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/dispatcher/handler"
	"github.com/dshills/voxnav/internal/navstate"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/prefs"
	"github.com/dshills/voxnav/internal/store"
	"github.com/dshills/voxnav/internal/tree"
	mt "github.com/dshills/voxnav/internal/tree/memtree"
)

type env struct {
	doc   *mt.Document
	rec   *output.Recorder
	state *navstate.State
}

func newEnv() *env {
	doc := mt.NewDocument(
		mt.N(tree.RoleRootWebArea, "News", mt.ID("page"), mt.URL("https://example.com/news"), mt.Kids(
			mt.N(tree.RoleParagraph, "Hello", mt.ID("p1")),
			mt.N(tree.RoleLink, "", mt.ID("link"), mt.URL("https://example.com/more"), mt.Kids(
				mt.N(tree.RoleStaticText, "More", mt.ID("more")),
			)),
			mt.N(tree.RoleButton, "OK", mt.ID("ok")),
		)),
	)
	rec := output.NewRecorder()
	p := prefs.New(store.New())
	state := navstate.New(doc, output.NewRenderer(rec, output.WithPrefs(p)))
	state.MarkReady()
	return &env{doc: doc, rec: rec, state: state}
}

func (e *env) run(cmd command.Command, id string) handler.Result {
	var rng *cursor.Range
	if id != "" {
		r := cursor.FromNode(e.doc.Get(id))
		rng = &r
	}
	ctx := &handler.Context{
		Command: cmd,
		State:   e.state,
		Output:  e.state.Output(),
		Host:    e.doc,
		Range:   rng,
	}
	return New().Handle(ctx)
}

func TestWithoutRangePropagates(t *testing.T) {
	e := newEnv()
	for _, cmd := range New().Commands() {
		assert.True(t, e.run(cmd, "").Propagate(), "%s", cmd)
	}
	assert.Empty(t, e.rec.Spoken())
}

func TestForceClick(t *testing.T) {
	e := newEnv()

	assert.True(t, e.run(command.ForceClickOnCurrentItem, "ok").IsOK())

	require.Len(t, e.doc.Defaulted(), 1)
	assert.Equal(t, "ok", e.doc.Defaulted()[0].ID())
	assert.Equal(t, []output.Earcon{output.EarconObjectSelect}, e.rec.Earcons)
}

func TestReadTitleAndURLs(t *testing.T) {
	e := newEnv()

	e.run(command.ReadCurrentTitle, "p1")
	e.run(command.ReadCurrentURL, "p1")
	e.run(command.ReadLinkURL, "more")
	assert.Equal(t, handler.StatusNoOp, e.run(command.ReadLinkURL, "ok").Status)

	assert.Equal(t, []string{
		"News",
		"https://example.com/news",
		"Link to https://example.com/more",
		"No URL",
	}, e.rec.Spoken())
}

func TestReadPhonetic(t *testing.T) {
	e := newEnv()

	e.run(command.ReadPhoneticPronunciation, "ok")
	assert.Equal(t, output.Phonetic("OK"), e.rec.Last())
}

func TestSpeakAndDescribe(t *testing.T) {
	e := newEnv()

	e.run(command.SpeakCurrentRange, "ok")
	e.run(command.FullyDescribe, "ok")

	spoken := e.rec.Spoken()
	require.Len(t, spoken, 2)
	assert.Greater(t, len(spoken[1]), len(spoken[0]))
	assert.Contains(t, spoken[1], spoken[0])
}

func TestReadFromHereReadsToEnd(t *testing.T) {
	e := newEnv()

	assert.True(t, e.run(command.ReadFromHere, "p1").IsOK())

	cur := e.state.CurrentRange()
	require.NotNil(t, cur)
	assert.Equal(t, "ok", cur.Start.Node.ID())
	assert.False(t, e.state.ReadingContinuously())
	assert.Len(t, e.rec.Spoken(), 3)
}

func TestReadFromHereStopsWhenInterrupted(t *testing.T) {
	e := newEnv()
	e.state.AddObserver(func(r *cursor.Range, _ bool) {
		if r != nil && r.Start.Node.ID() == "link" {
			e.state.SetReadingContinuously(false)
		}
	})

	e.run(command.ReadFromHere, "p1")

	assert.Equal(t, "link", e.state.CurrentRange().Start.Node.ID())
}
