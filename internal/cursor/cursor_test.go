package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/tree"
	mt "github.com/dshills/voxnav/internal/tree/memtree"
)

func doc() *mt.Document {
	return mt.NewDocument(
		mt.N(tree.RoleRootWebArea, "Page", mt.ID("page"), mt.Kids(
			mt.N(tree.RoleParagraph, "Hello world", mt.ID("p1")),
			mt.N(tree.RoleButton, "OK", mt.ID("btn"), mt.Kids(
				mt.N(tree.RoleStaticText, "OK", mt.ID("btext")),
			)),
			mt.N(tree.RoleParagraph, "Line one\nLine two", mt.ID("p2")),
			mt.N(tree.RoleParagraph, "ae\u0301b", mt.ID("accent")),
		)),
	)
}

func TestMoveCharacter(t *testing.T) {
	d := doc()
	r := cursor.FromNode(d.Get("p1"))

	r, ok := r.Move(cursor.UnitCharacter, tree.Forward)
	require.True(t, ok)
	assert.Equal(t, "e", r.Text())

	r, ok = r.Move(cursor.UnitCharacter, tree.Forward)
	require.True(t, ok)
	assert.Equal(t, "l", r.Text())

	r, ok = r.Move(cursor.UnitCharacter, tree.Backward)
	require.True(t, ok)
	assert.Equal(t, "e", r.Text())
	assert.Equal(t, 1, r.Start.Offset)
	assert.Equal(t, 2, r.End.Offset)
}

func TestMoveCharacterSpillsToNextLeaf(t *testing.T) {
	d := doc()
	p1 := d.Get("p1")
	r := cursor.NewRange(cursor.New(p1, 10), cursor.New(p1, 11))

	next, ok := r.Move(cursor.UnitCharacter, tree.Forward)
	require.True(t, ok)
	assert.Equal(t, "btext", next.Start.Node.ID())
	assert.Equal(t, "O", next.Text())

	back, ok := next.Move(cursor.UnitCharacter, tree.Backward)
	require.True(t, ok)
	assert.Equal(t, "p1", back.Start.Node.ID())
	assert.Equal(t, "d", back.Text())
}

func TestMoveCharacterGraphemeCluster(t *testing.T) {
	d := doc()
	r, ok := cursor.FromNode(d.Get("accent")).Move(cursor.UnitCharacter, tree.Forward)
	require.True(t, ok)
	assert.Equal(t, "e\u0301", r.Text())
	assert.Equal(t, 4, r.End.Offset)
}

func TestMoveCharacterAtDocumentStart(t *testing.T) {
	d := doc()
	p1 := d.Get("p1")
	r := cursor.NewRange(cursor.New(p1, 0), cursor.New(p1, 1))
	got, ok := r.Move(cursor.UnitCharacter, tree.Backward)
	assert.False(t, ok)
	assert.True(t, got.Equals(r))
}

func TestMoveWord(t *testing.T) {
	d := doc()
	r, ok := cursor.FromNode(d.Get("p1")).Move(cursor.UnitWord, tree.Forward)
	require.True(t, ok)
	assert.Equal(t, "world", r.Text())

	prev, ok := r.Move(cursor.UnitWord, tree.Backward)
	require.True(t, ok)
	assert.Equal(t, "Hello", prev.Text())

	next, ok := r.Move(cursor.UnitWord, tree.Forward)
	require.True(t, ok)
	assert.Equal(t, "btext", next.Start.Node.ID())
	assert.Equal(t, "OK", next.Text())
}

func TestMoveLine(t *testing.T) {
	d := doc()
	p2 := d.Get("p2")
	r, ok := cursor.FromNode(p2).Move(cursor.UnitLine, tree.Forward)
	require.True(t, ok)
	assert.Equal(t, "Line two", r.Text())

	line, count := cursor.LineIndex(p2, r.Start.Offset)
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, count)

	back, ok := r.Move(cursor.UnitLine, tree.Backward)
	require.True(t, ok)
	assert.Equal(t, "Line one", back.Text())
}

func TestMoveNode(t *testing.T) {
	d := doc()
	r := cursor.FromNode(d.Get("p1"))

	var forward []string
	for {
		next, ok := r.Move(cursor.UnitNode, tree.Forward)
		if !ok {
			break
		}
		forward = append(forward, next.Start.Node.ID())
		r = next
	}
	assert.Equal(t, []string{"btn", "p2", "accent"}, forward)

	var backward []string
	for {
		prev, ok := r.Move(cursor.UnitNode, tree.Backward)
		if !ok {
			break
		}
		backward = append(backward, prev.Start.Node.ID())
		r = prev
	}
	assert.Equal(t, []string{"p2", "btn", "p1"}, backward)
}

func TestMoveInvalidRange(t *testing.T) {
	d := doc()
	p1 := d.Get("p1")
	r := cursor.FromNode(p1)
	d.Remove(p1)

	assert.False(t, r.IsValid())
	_, ok := r.Move(cursor.UnitNode, tree.Forward)
	assert.False(t, ok)
}

func TestCompareAndNormalize(t *testing.T) {
	d := doc()
	a := cursor.FromNode(d.Get("p1"))
	b := cursor.FromNode(d.Get("p2"))

	assert.Equal(t, cursor.Forward, a.Compare(b))
	assert.Equal(t, cursor.Backward, b.Compare(a))
	assert.Equal(t, cursor.Same, a.Compare(a.WithWrapped(true)))

	rev := cursor.NewRange(b.Start, a.Start)
	norm := rev.Normalize()
	assert.Equal(t, "p1", norm.Start.Node.ID())
	assert.Equal(t, "p2", norm.End.Node.ID())
	assert.False(t, norm.IsCollapsed())
	assert.True(t, a.IsCollapsed())
}

func TestEqualsIgnoresWrapped(t *testing.T) {
	d := doc()
	a := cursor.FromNode(d.Get("p1"))
	assert.True(t, a.Equals(a.WithWrapped(true)))
	assert.True(t, a.WithWrapped(true).Wrapped)
}
