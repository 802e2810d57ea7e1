package tree

// Dir is a traversal direction.
type Dir int

const (
	Forward Dir = iota
	Backward
)

// String returns the direction name.
func (d Dir) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Opposite returns the other direction.
func (d Dir) Opposite() Dir {
	if d == Backward {
		return Forward
	}
	return Backward
}

// Text returns the text content of a node: the value of editable nodes,
// otherwise the name.
func Text(n Node) string {
	if n.State().Has(StateEditable) || n.Name() == "" {
		return n.Value()
	}
	return n.Name()
}

// IsLeaf reports whether n has no children.
func IsLeaf(n Node) bool {
	return len(n.Children()) == 0
}

// IsAncestor reports whether a is a proper ancestor of n.
func IsAncestor(a, n Node) bool {
	if a == nil || n == nil {
		return false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p == a {
			return true
		}
	}
	return false
}

// Ancestors returns the ancestors of n, nearest first.
func Ancestors(n Node) []Node {
	var out []Node
	for p := n.Parent(); p != nil; p = p.Parent() {
		out = append(out, p)
	}
	return out
}

// DocumentRoot returns the nearest root web area containing n (n itself
// included), or the topmost ancestor when n is outside any document.
func DocumentRoot(n Node) Node {
	last := n
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Role() == RoleRootWebArea {
			return cur
		}
		last = cur
	}
	return last
}

// TopLevelRoot returns the outermost root web area containing n, or nil when
// n is part of the desktop UI.
func TopLevelRoot(n Node) Node {
	var top Node
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Role() == RoleRootWebArea {
			top = cur
		}
	}
	return top
}

func nextSibling(n Node) Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	siblings := p.Children()
	for i, s := range siblings {
		if s == n && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}
	return nil
}

func prevSibling(n Node) Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	siblings := p.Children()
	for i, s := range siblings {
		if s == n && i > 0 {
			return siblings[i-1]
		}
	}
	return nil
}

// nextSkipping returns the pre-order successor of n after its whole subtree,
// never leaving root.
func nextSkipping(n, root Node) Node {
	for cur := n; cur != nil && cur != root; cur = cur.Parent() {
		if s := nextSibling(cur); s != nil {
			return s
		}
	}
	return nil
}

// Next returns the pre-order successor of n within root, or nil.
func Next(n, root Node) Node {
	if children := n.Children(); len(children) > 0 {
		return children[0]
	}
	return nextSkipping(n, root)
}

// Prev returns the pre-order predecessor of n within root, or nil. The root
// itself is never returned.
func Prev(n, root Node) Node {
	if n == root {
		return nil
	}
	if s := prevSibling(n); s != nil {
		return LastDescendant(s)
	}
	p := n.Parent()
	if p == nil || p == root {
		return nil
	}
	return p
}

// LastDescendant returns the deepest last descendant of n (n when it is a
// leaf).
func LastDescendant(n Node) Node {
	for {
		children := n.Children()
		if len(children) == 0 {
			return n
		}
		n = children[len(children)-1]
	}
}

// FirstLeaf returns the first leaf under root.
func FirstLeaf(root Node) Node {
	n := root
	for {
		children := n.Children()
		if len(children) == 0 {
			return n
		}
		n = children[0]
	}
}

// LastLeaf returns the last leaf under root.
func LastLeaf(root Node) Node {
	return LastDescendant(root)
}

// FindOptions restricts FindNext.
type FindOptions struct {
	// Root bounds the search; nil means the whole tree.
	Root Node

	// Inclusive tests the start node itself first.
	Inclusive bool

	// SkipInitialSubtree skips the descendants of start when searching
	// forward.
	SkipInitialSubtree bool
}

// FindNext searches from start in direction dir for the first node that
// satisfies match. Backward searches skip the ancestors of start.
func FindNext(start Node, dir Dir, match func(Node) bool, opts FindOptions) Node {
	if start == nil {
		return nil
	}
	if opts.Inclusive && match(start) {
		return start
	}

	root := opts.Root
	if dir == Forward {
		var cur Node
		if opts.SkipInitialSubtree {
			cur = nextSkipping(start, root)
		} else {
			cur = Next(start, root)
		}
		for ; cur != nil; cur = Next(cur, root) {
			if match(cur) {
				return cur
			}
		}
		return nil
	}

	for cur := Prev(start, root); cur != nil; cur = Prev(cur, root) {
		if IsAncestor(cur, start) {
			continue
		}
		if match(cur) {
			return cur
		}
	}
	return nil
}

// Compare orders two nodes in document (pre-order) position. It returns -1
// when a precedes b, 1 when a follows b and 0 when they are the same node.
func Compare(a, b Node) int {
	if a == b {
		return 0
	}
	if IsAncestor(a, b) {
		return -1
	}
	if IsAncestor(b, a) {
		return 1
	}

	pathA := append([]Node{a}, Ancestors(a)...)
	pathB := append([]Node{b}, Ancestors(b)...)
	i, j := len(pathA)-1, len(pathB)-1
	if pathA[i] != pathB[j] {
		// Disjoint trees: fall back to a stable order.
		if a.ID() < b.ID() {
			return -1
		}
		return 1
	}
	for i > 0 && j > 0 && pathA[i-1] == pathB[j-1] {
		i--
		j--
	}
	// pathA[i] is the common ancestor; pathA[i-1] and pathB[j-1] are siblings.
	for _, c := range pathA[i].Children() {
		if c == pathA[i-1] {
			return -1
		}
		if c == pathB[j-1] {
			return 1
		}
	}
	return 0
}
