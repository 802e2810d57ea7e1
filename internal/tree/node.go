package tree

import (
	"strings"

	"github.com/dshills/voxnav/internal/input/key"
)

// Role is the accessibility role of a node.
type Role string

// Roles understood by the predicates and output.
const (
	RoleDesktop      Role = "desktop"
	RoleWindow       Role = "window"
	RoleRootWebArea  Role = "rootWebArea"
	RoleGeneric      Role = "genericContainer"
	RoleGroup        Role = "group"
	RoleParagraph    Role = "paragraph"
	RoleStaticText   Role = "staticText"
	RoleHeading      Role = "heading"
	RoleLink         Role = "link"
	RoleButton       Role = "button"
	RoleCheckBox     Role = "checkBox"
	RoleRadioButton  Role = "radioButton"
	RoleComboBox     Role = "comboBoxSelect"
	RoleTextField    Role = "textField"
	RoleSlider       Role = "slider"
	RoleImage        Role = "image"
	RoleList         Role = "list"
	RoleListItem     Role = "listItem"
	RoleTable        Role = "table"
	RoleRow          Role = "row"
	RoleCell         Role = "cell"
	RoleColumnHeader Role = "columnHeader"
	RoleRowHeader    Role = "rowHeader"
	RoleMain         Role = "main"
	RoleNavigation   Role = "navigation"
	RoleBanner       Role = "banner"
	RoleRegion       Role = "region"
	RoleContentInfo  Role = "contentInfo"
	RoleMath         Role = "math"
)

// State is a set of node state flags.
type State uint32

const (
	StateFocusable State = 1 << iota
	StateEditable
	StateMultiline
	StateVisited
	StateInvalid
	StateIgnored
	StateReadOnly
	StateChecked
)

// Has returns true if s contains all of the given flags.
func (s State) Has(flags State) bool {
	return s&flags == flags
}

var stateNames = map[string]State{
	"focusable": StateFocusable,
	"editable":  StateEditable,
	"multiline": StateMultiline,
	"visited":   StateVisited,
	"invalid":   StateInvalid,
	"ignored":   StateIgnored,
	"readonly":  StateReadOnly,
	"checked":   StateChecked,
}

// StateFromName returns the state flag for a lowercase name, or 0.
func StateFromName(name string) State {
	return stateNames[strings.ToLower(name)]
}

// Point is a screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an on-screen bounding box.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Node is a node in the external accessibility tree.
type Node interface {
	ID() string
	Role() Role
	Name() string
	Value() string
	Parent() Node
	Children() []Node

	// Valid reports whether the node is still attached to a live tree.
	Valid() bool

	State() State
	HeadingLevel() int
	Location() Rect

	// DocURL is the URL of a root web area or the target of a link; empty
	// for other nodes.
	DocURL() string
	Lang() string

	// TableCell returns the row and column indices of a table cell.
	TableCell() (row, col int, ok bool)

	// TextSelection returns the caret anchor and focus offsets of an
	// editable node.
	TextSelection() (anchor, focus int, ok bool)
}

// Selection is a host text selection between two node offsets.
type Selection struct {
	Anchor       Node
	AnchorOffset int
	Focus        Node
	FocusOffset  int
}

// Host is the side-effecting half of the external tree provider.
type Host interface {
	Desktop() Node

	// Focus returns the node with host (keyboard) focus, or nil.
	Focus() Node

	SetAccessibilityFocus(n Node)
	MakeVisible(n Node)
	DoDefault(n Node)

	// SendKeyPress synthesizes a native key press in the focused control.
	SendKeyPress(ev key.Event)

	// Selection returns the live document selection, if any.
	Selection() (Selection, bool)
	SetSelection(sel Selection)

	// SetSelectionEventsSuppressed stops the host from reporting its own
	// selection changes while the page selection mode drives them.
	SetSelectionEventsSuppressed(suppressed bool)
}
