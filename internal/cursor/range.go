package cursor

import (
	"fmt"

	"github.com/dshills/voxnav/internal/tree"
)

// Unit is a movement granularity.
type Unit uint8

const (
	UnitNode Unit = iota
	UnitCharacter
	UnitWord
	UnitLine
)

// String returns the unit name.
func (u Unit) String() string {
	switch u {
	case UnitNode:
		return "node"
	case UnitCharacter:
		return "character"
	case UnitWord:
		return "word"
	case UnitLine:
		return "line"
	default:
		return fmt.Sprintf("Unit(%d)", u)
	}
}

// Ordering is the relative position of one range to another.
type Ordering int8

const (
	Backward Ordering = -1
	Same     Ordering = 0
	Forward  Ordering = 1
)

// String returns the ordering name.
func (o Ordering) String() string {
	switch o {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "same"
	}
}

// Range is an ordered pair of cursors.
type Range struct {
	Start Cursor
	End   Cursor

	// Wrapped marks a range reached by wrapping around a boundary.
	Wrapped bool
}

// NewRange creates a range between two cursors.
func NewRange(start, end Cursor) Range {
	return Range{Start: start, End: end}
}

// FromNode creates a collapsed range covering all of n.
func FromNode(n tree.Node) Range {
	c := AtNode(n)
	return Range{Start: c, End: c}
}

// IsValid reports whether both ends resolve to live nodes.
func (r Range) IsValid() bool {
	return r.Start.IsValid() && r.End.IsValid()
}

// IsCollapsed reports whether the range is a single point.
func (r Range) IsCollapsed() bool {
	return r.Start.Equals(r.End)
}

// Equals compares both ends. The wrapped flag is ignored.
func (r Range) Equals(other Range) bool {
	return r.Start.Equals(other.Start) && r.End.Equals(other.End)
}

// WithWrapped returns a copy with the wrapped flag set.
func (r Range) WithWrapped(wrapped bool) Range {
	r.Wrapped = wrapped
	return r
}

// Normalize returns an equivalent range with Start <= End.
func (r Range) Normalize() Range {
	if r.Start.Compare(r.End) > 0 {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Compare returns where other lies relative to r.
func (r Range) Compare(other Range) Ordering {
	a, b := r.Normalize(), other.Normalize()
	switch c := a.Start.Compare(b.Start); {
	case c < 0:
		return Forward
	case c > 0:
		return Backward
	}
	switch c := a.End.Compare(b.End); {
	case c < 0:
		return Forward
	case c > 0:
		return Backward
	}
	return Same
}

// Bound returns the cursor navigation leaves from in direction dir.
func (r Range) Bound(dir tree.Dir) Cursor {
	if dir == tree.Forward {
		return r.End
	}
	return r.Start
}

// Text returns the text covered by the range when both ends are offsets in
// the same node, otherwise the text of the start node.
func (r Range) Text() string {
	if r.Start.Node == nil {
		return ""
	}
	text := tree.Text(r.Start.Node)
	if r.Start.Node != r.End.Node || r.Start.IsWholeNode() || r.End.IsWholeNode() {
		return text
	}
	s, e := clamp(r.Start.Offset, len(text)), clamp(r.End.Offset, len(text))
	if s > e {
		s, e = e, s
	}
	return text[s:e]
}

// String returns a debug representation.
func (r Range) String() string {
	if r.IsCollapsed() {
		return "[" + r.Start.String() + "]"
	}
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
