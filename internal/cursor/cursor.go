package cursor

import (
	"fmt"

	"github.com/dshills/voxnav/internal/tree"
)

// WholeNode is the offset of a cursor that refers to an entire node.
const WholeNode = -1

// Cursor is a position in the external tree.
type Cursor struct {
	Node   tree.Node
	Offset int
}

// New creates a cursor at offset within n.
func New(n tree.Node, offset int) Cursor {
	return Cursor{Node: n, Offset: offset}
}

// AtNode creates a cursor covering all of n.
func AtNode(n tree.Node) Cursor {
	return Cursor{Node: n, Offset: WholeNode}
}

// IsValid reports whether the cursor resolves to a live node.
func (c Cursor) IsValid() bool {
	return c.Node != nil && c.Node.Valid()
}

// IsWholeNode reports whether the cursor refers to an entire node.
func (c Cursor) IsWholeNode() bool {
	return c.Offset == WholeNode
}

// Equals reports structural equality: same node and same offset.
func (c Cursor) Equals(other Cursor) bool {
	return c.Node == other.Node && c.Offset == other.Offset
}

// Compare orders two cursors in document order (-1, 0, 1).
func (c Cursor) Compare(other Cursor) int {
	if c.Node != other.Node {
		return tree.Compare(c.Node, other.Node)
	}
	switch {
	case c.Offset < other.Offset:
		return -1
	case c.Offset > other.Offset:
		return 1
	default:
		return 0
	}
}

// String returns a debug representation.
func (c Cursor) String() string {
	if c.Node == nil {
		return "<nil>"
	}
	if c.IsWholeNode() {
		return c.Node.ID()
	}
	return fmt.Sprintf("%s@%d", c.Node.ID(), c.Offset)
}
