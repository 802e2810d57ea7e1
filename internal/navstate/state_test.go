package navstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/navstate"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/store"
	"github.com/dshills/voxnav/internal/tree"
	mt "github.com/dshills/voxnav/internal/tree/memtree"
)

type fixture struct {
	doc   *mt.Document
	rec   *output.Recorder
	store *store.Store
	state *navstate.State
}

func newFixture() *fixture {
	doc := mt.NewDocument(
		mt.N(tree.RoleRootWebArea, "Page", mt.ID("page"), mt.URL("https://example.com/doc#section-2"), mt.Kids(
			mt.N(tree.RoleParagraph, "Start", mt.ID("x"), mt.At(tree.Rect{Left: 10, Top: 20, Width: 100, Height: 40})),
			mt.N(tree.RoleParagraph, "End", mt.ID("y"), mt.At(tree.Rect{Left: 10, Top: 80, Width: 60, Height: 20})),
		)),
		mt.N(tree.RoleButton, "Launcher", mt.ID("shelf")),
	)
	rec := output.NewRecorder()
	st := store.New()
	s := navstate.New(doc, output.NewRenderer(rec), navstate.WithStore(st))
	return &fixture{doc: doc, rec: rec, store: st, state: s}
}

func (f *fixture) rangeAt(id string) *cursor.Range {
	r := cursor.FromNode(f.doc.Get(id))
	return &r
}

func TestSetCurrentRangeUpdatesPrevious(t *testing.T) {
	f := newFixture()
	x, y := f.rangeAt("x"), f.rangeAt("y")

	f.state.SetCurrentRange(x, false)
	f.state.SetCurrentRange(y, false)

	assert.Same(t, y, f.state.CurrentRangeWithoutRecovery())
	assert.Same(t, x, f.state.PreviousRange())
	assert.Equal(t, 2, f.rec.Thaws)
	assert.Equal(t, "y", f.doc.AccessibilityFocus().ID())
	require.NotEmpty(t, f.doc.Visible())
	assert.Equal(t, "y", f.doc.Visible()[len(f.doc.Visible())-1].ID())
}

func TestInvalidRangeIsNilWithoutMutation(t *testing.T) {
	f := newFixture()
	x, y := f.rangeAt("x"), f.rangeAt("y")
	f.state.SetCurrentRange(x, false)
	f.state.SetCurrentRange(y, false)

	f.doc.Remove(f.doc.Get("y"))

	assert.Nil(t, f.state.CurrentRange())
	assert.Same(t, y, f.state.CurrentRangeWithoutRecovery())
	assert.Same(t, x, f.state.PreviousRange())
}

func TestSetInvalidRangeClearsFocusBoundsOnly(t *testing.T) {
	f := newFixture()
	x := f.rangeAt("x")
	f.state.SetCurrentRange(x, false)

	y := f.rangeAt("y")
	f.doc.Remove(f.doc.Get("y"))
	f.state.SetCurrentRange(y, false)

	assert.Same(t, x, f.state.CurrentRangeWithoutRecovery())
	assert.Nil(t, f.state.PreviousRange())
	assert.Equal(t, 1, f.rec.FocusBoundsCleared)
	assert.Equal(t, 2, f.rec.Thaws)
}

func TestSetNilTwiceIsNoop(t *testing.T) {
	f := newFixture()
	var calls int
	f.state.MarkReady()
	f.state.AddObserver(func(*cursor.Range, bool) { calls++ })

	f.state.SetCurrentRange(nil, false)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, f.rec.FocusBoundsCleared)
}

func TestClearRangeNotifiesAndClearsBounds(t *testing.T) {
	f := newFixture()
	f.state.MarkReady()
	x := f.rangeAt("x")
	f.state.SetCurrentRange(x, false)

	var got []*cursor.Range
	f.state.AddObserver(func(r *cursor.Range, _ bool) { got = append(got, r) })
	f.state.SetCurrentRange(nil, false)

	require.Len(t, got, 1)
	assert.Nil(t, got[0])
	assert.Same(t, x, f.state.PreviousRange())
	assert.Equal(t, 1, f.rec.FocusBoundsCleared)
}

func TestObserversGatedUntilReady(t *testing.T) {
	f := newFixture()
	type call struct {
		id          string
		fromEditing bool
	}
	var calls []call
	remove := f.state.AddObserver(func(r *cursor.Range, fromEditing bool) {
		calls = append(calls, call{r.Start.Node.ID(), fromEditing})
	})

	f.state.SetCurrentRange(f.rangeAt("x"), false)
	f.state.SetCurrentRange(f.rangeAt("y"), true)
	assert.Empty(t, calls)

	f.state.MarkReady()
	assert.Equal(t, []call{{"x", false}, {"y", true}}, calls)

	f.state.SetCurrentRange(f.rangeAt("x"), false)
	assert.Len(t, calls, 3)

	remove()
	f.state.SetCurrentRange(f.rangeAt("y"), false)
	assert.Len(t, calls, 3)
}

func TestObserverSeesNewState(t *testing.T) {
	f := newFixture()
	f.state.MarkReady()
	x := f.rangeAt("x")
	var seen *cursor.Range
	f.state.AddObserver(func(*cursor.Range, bool) { seen = f.state.CurrentRange() })
	f.state.SetCurrentRange(x, false)
	assert.Same(t, x, seen)
}

func TestFocusPositionPersisted(t *testing.T) {
	f := newFixture()
	f.state.SetCurrentRange(f.rangeAt("x"), false)

	p, ok := f.state.FocusPosition("https://example.com/doc")
	require.True(t, ok)
	assert.Equal(t, tree.Point{X: 60, Y: 40}, p)

	p, ok = f.state.FocusPosition("https://example.com/doc#other")
	require.True(t, ok, "fragment is ignored")
	assert.Equal(t, tree.Point{X: 60, Y: 40}, p)
}

func TestFocusPositionSkippedOutsideDocuments(t *testing.T) {
	f := newFixture()
	f.state.SetCurrentRange(f.rangeAt("shelf"), false)
	assert.Empty(t, f.store.Keys())

	f.state.SetCurrentRange(f.rangeAt("page"), false)
	assert.Empty(t, f.store.Keys(), "root node itself is not persisted")
}

func TestRestoreLastValidRange(t *testing.T) {
	f := newFixture()
	x, y := f.rangeAt("x"), f.rangeAt("y")
	f.state.SetCurrentRange(x, false)
	f.state.SetCurrentRange(y, false)
	f.doc.Remove(f.doc.Get("y"))

	f.state.SetTalkBackEnabled(true)
	f.state.RestoreLastValidRangeIfNeeded()
	assert.Same(t, y, f.state.CurrentRangeWithoutRecovery())

	f.state.SetTalkBackEnabled(false)
	f.state.RestoreLastValidRangeIfNeeded()
	assert.Same(t, x, f.state.CurrentRange())
}

func TestPageSelection(t *testing.T) {
	f := newFixture()
	assert.False(t, f.state.TogglePageSelection(), "no range, no selection")

	x := f.rangeAt("x")
	f.state.SetCurrentRange(x, false)
	require.True(t, f.state.TogglePageSelection())
	assert.True(t, f.doc.SelectionEventsSuppressed())
	assert.Equal(t, "Start selection", f.rec.Last())

	f.state.SetCurrentRange(f.rangeAt("y"), false)
	sel := f.state.PageSelection()
	require.NotNil(t, sel)
	assert.Equal(t, "x", sel.Start.Node.ID())
	assert.Equal(t, "y", sel.End.Node.ID())

	live, ok := f.doc.Selection()
	require.True(t, ok)
	assert.Equal(t, 3, live.FocusOffset)

	f.rec.Reset()
	assert.False(t, f.state.TogglePageSelection())
	assert.Nil(t, f.state.PageSelection())
	assert.False(t, f.doc.SelectionEventsSuppressed())
	assert.Equal(t, []string{"Start End", "End selection"}, f.rec.Spoken())
	assert.Equal(t, []output.Earcon{output.EarconSelectionEnd}, f.rec.Earcons)
}

func TestFlags(t *testing.T) {
	f := newFixture()
	f.state.SetReadingContinuously(true)
	f.state.IgnoreRangeChanges(true)
	assert.True(t, f.state.ReadingContinuously())
	assert.True(t, f.state.IgnoringRangeChanges())
	f.state.IgnoreRangeChanges(false)
	assert.False(t, f.state.IgnoringRangeChanges())
}
