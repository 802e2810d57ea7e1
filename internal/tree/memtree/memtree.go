// Package memtree is an in-memory accessibility tree and host used by tests
// and the demo binary.
package memtree

import (
	"fmt"
	"sync"

	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/tree"
)

// Node is a mutable in-memory tree node.
type Node struct {
	id       string
	role     tree.Role
	name     string
	value    string
	state    tree.State
	level    int
	rect     tree.Rect
	url      string
	lang     string
	row, col int
	cell     bool
	anchor   int
	focus    int
	caret    bool
	parent   *Node
	children []*Node
	removed  bool
}

// Option configures a Node built with N.
type Option func(*Node)

// N builds a node with the given role and name.
func N(role tree.Role, name string, opts ...Option) *Node {
	n := &Node{role: role, name: name}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Kids appends children.
func Kids(children ...*Node) Option {
	return func(n *Node) {
		for _, c := range children {
			c.parent = n
			n.children = append(n.children, c)
		}
	}
}

// ID sets an explicit node id.
func ID(id string) Option { return func(n *Node) { n.id = id } }

// Value sets the node value.
func Value(v string) Option { return func(n *Node) { n.value = v } }

// States adds state flags.
func States(s tree.State) Option { return func(n *Node) { n.state |= s } }

// Level sets the heading level.
func Level(l int) Option { return func(n *Node) { n.level = l } }

// At sets the on-screen location.
func At(r tree.Rect) Option { return func(n *Node) { n.rect = r } }

// URL sets the document URL of a root web area or the target of a link.
func URL(u string) Option { return func(n *Node) { n.url = u } }

// Lang sets the node language.
func Lang(l string) Option { return func(n *Node) { n.lang = l } }

// Cell marks the node as a table cell at row, col.
func Cell(row, col int) Option {
	return func(n *Node) { n.row, n.col, n.cell = row, col, true }
}

// Caret sets the text selection of an editable node.
func Caret(anchor, focus int) Option {
	return func(n *Node) { n.anchor, n.focus, n.caret = anchor, focus, true }
}

func (n *Node) ID() string                  { return n.id }
func (n *Node) Role() tree.Role             { return n.role }
func (n *Node) Name() string                { return n.name }
func (n *Node) Value() string               { return n.value }
func (n *Node) Valid() bool                 { return !n.removed }
func (n *Node) State() tree.State           { return n.state }
func (n *Node) HeadingLevel() int           { return n.level }
func (n *Node) Location() tree.Rect         { return n.rect }
func (n *Node) DocURL() string              { return n.url }
func (n *Node) Lang() string                { return n.lang }
func (n *Node) String() string              { return fmt.Sprintf("%s(%s %q)", n.id, n.role, n.name) }
func (n *Node) TableCell() (int, int, bool) { return n.row, n.col, n.cell }

func (n *Node) TextSelection() (int, int, bool) {
	return n.anchor, n.focus, n.caret
}

// Parent implements tree.Node. A nil parent is returned as a nil interface.
func (n *Node) Parent() tree.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []tree.Node {
	out := make([]tree.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// SetValue replaces the node value.
func (n *Node) SetValue(v string) { n.value = v }

// SetCaret moves the text selection of an editable node.
func (n *Node) SetCaret(anchor, focus int) {
	n.anchor, n.focus, n.caret = anchor, focus, true
}

// Document is an in-memory tree rooted at a desktop node. It implements
// tree.Host and records every side effect requested by the core.
type Document struct {
	mu sync.Mutex

	desktop *Node
	byID    map[string]*Node
	nextID  int

	focus      *Node
	a11yFocus  *Node
	visible    []*Node
	defaulted  []*Node
	keyPresses []key.Event
	selection  *tree.Selection
	suppressed bool
}

// NewDocument creates a document whose desktop holds the given top-level
// nodes. Nodes without an id get one assigned in pre-order.
func NewDocument(top ...*Node) *Document {
	d := &Document{byID: make(map[string]*Node)}
	d.desktop = N(tree.RoleDesktop, "", ID("desktop"), Kids(top...))
	d.index(d.desktop)
	return d
}

func (d *Document) index(n *Node) {
	if n.id == "" {
		d.nextID++
		n.id = fmt.Sprintf("n%d", d.nextID)
	}
	d.byID[n.id] = n
	for _, c := range n.children {
		d.index(c)
	}
}

// Get returns the node with the given id, or nil.
func (d *Document) Get(id string) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.byID[id]
}

// FindByName returns the first node in pre-order with the given name.
func (d *Document) FindByName(name string) *Node {
	var found *Node
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		if n.name == name && !n.removed {
			found = n
			return true
		}
		for _, c := range n.children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(d.desktop)
	return found
}

// Append attaches child under parent.
func (d *Document) Append(parent, child *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	child.parent = parent
	parent.children = append(parent.children, child)
	d.index(child)
}

// Remove detaches n and invalidates its subtree.
func (d *Document) Remove(n *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p := n.parent; p != nil {
		for i, c := range p.children {
			if c == n {
				p.children = append(p.children[:i:i], p.children[i+1:]...)
				break
			}
		}
	}
	var invalidate func(*Node)
	invalidate = func(x *Node) {
		x.removed = true
		delete(d.byID, x.id)
		for _, c := range x.children {
			invalidate(c)
		}
	}
	invalidate(n)
	if d.focus != nil && d.focus.removed {
		d.focus = nil
	}
}

// SetFocus sets the host focus; nil clears it.
func (d *Document) SetFocus(n *Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.focus = n
}

// Desktop implements tree.Host.
func (d *Document) Desktop() tree.Node { return d.desktop }

// Focus implements tree.Host.
func (d *Document) Focus() tree.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.focus == nil || d.focus.removed {
		return nil
	}
	return d.focus
}

// SetAccessibilityFocus implements tree.Host.
func (d *Document) SetAccessibilityFocus(n tree.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.a11yFocus, _ = n.(*Node)
}

// MakeVisible implements tree.Host.
func (d *Document) MakeVisible(n tree.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if m, ok := n.(*Node); ok {
		d.visible = append(d.visible, m)
	}
}

// DoDefault implements tree.Host.
func (d *Document) DoDefault(n tree.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if m, ok := n.(*Node); ok {
		d.defaulted = append(d.defaulted, m)
	}
}

// SendKeyPress implements tree.Host.
func (d *Document) SendKeyPress(ev key.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keyPresses = append(d.keyPresses, ev)
}

// Selection implements tree.Host.
func (d *Document) Selection() (tree.Selection, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selection == nil {
		return tree.Selection{}, false
	}
	return *d.selection, true
}

// SetSelection implements tree.Host.
func (d *Document) SetSelection(sel tree.Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = &sel
}

// ClearSelection removes the live selection.
func (d *Document) ClearSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = nil
}

// SetSelectionEventsSuppressed implements tree.Host.
func (d *Document) SetSelectionEventsSuppressed(suppressed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.suppressed = suppressed
}

// AccessibilityFocus returns the node last given accessibility focus.
func (d *Document) AccessibilityFocus() *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.a11yFocus
}

// Visible returns the nodes made visible, in order.
func (d *Document) Visible() []*Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Node(nil), d.visible...)
}

// Defaulted returns the nodes whose default action ran, in order.
func (d *Document) Defaulted() []*Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Node(nil), d.defaulted...)
}

// KeyPresses returns the synthesized key presses, in order.
func (d *Document) KeyPresses() []key.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]key.Event(nil), d.keyPresses...)
}

// SelectionEventsSuppressed reports the current suppression flag.
func (d *Document) SelectionEventsSuppressed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.suppressed
}
