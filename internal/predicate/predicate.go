// Package predicate is the closed set of node classifications used by
// navigation commands.
//
// A Predicate is a value, not a function: its Kind selects the rule and the
// remaining fields parameterize it. Match is the single evaluator, so every
// kind is handled in one exhaustive switch.
package predicate

import (
	"fmt"

	"github.com/dshills/voxnav/internal/tree"
)

// Kind identifies a predicate rule.
type Kind uint8

const (
	KindNone Kind = iota
	KindHeading
	KindHeadingLevel
	KindLink
	KindVisitedLink
	KindButton
	KindCheckbox
	KindComboBox
	KindEditText
	KindFormField
	KindGraphic
	KindLandmark
	KindList
	KindTable
	KindInvalidItem
	KindSameRole
	KindMath
	KindObject
	KindLeaf
	KindGroup
	KindTableCell
	KindRoot
	KindRootOrEditableRoot
)

var kindNames = [...]string{
	KindNone:               "none",
	KindHeading:            "heading",
	KindHeadingLevel:       "headingLevel",
	KindLink:               "link",
	KindVisitedLink:        "visitedLink",
	KindButton:             "button",
	KindCheckbox:           "checkbox",
	KindComboBox:           "comboBox",
	KindEditText:           "editText",
	KindFormField:          "formField",
	KindGraphic:            "graphic",
	KindLandmark:           "landmark",
	KindList:               "list",
	KindTable:              "table",
	KindInvalidItem:        "invalidItem",
	KindSameRole:           "sameRole",
	KindMath:               "math",
	KindObject:             "object",
	KindLeaf:               "leaf",
	KindGroup:              "group",
	KindTableCell:          "tableCell",
	KindRoot:               "root",
	KindRootOrEditableRoot: "rootOrEditableRoot",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// CellMove parameterizes table cell predicates.
type CellMove struct {
	// Row moves along a row (between columns of the same row).
	Row bool
	// Col moves along a column (between rows of the same column).
	Col bool
	// Dir is the movement direction.
	Dir tree.Dir
	// End jumps to the first or last cell of the row or column.
	End bool
}

// Predicate is a tagged node classification.
type Predicate struct {
	Kind  Kind
	Level int
	Role  tree.Role
	Cell  CellMove
}

// String describes the predicate for logs.
func (p Predicate) String() string {
	switch p.Kind {
	case KindHeadingLevel:
		return fmt.Sprintf("headingLevel(%d)", p.Level)
	case KindSameRole:
		return fmt.Sprintf("sameRole(%s)", p.Role)
	case KindTableCell:
		return fmt.Sprintf("tableCell{row:%t col:%t dir:%s end:%t}", p.Cell.Row, p.Cell.Col, p.Cell.Dir, p.Cell.End)
	default:
		return p.Kind.String()
	}
}

// IsZero reports whether p is the empty predicate.
func (p Predicate) IsZero() bool { return p.Kind == KindNone }

// Constructors for the parameterless kinds.
var (
	Heading            = Predicate{Kind: KindHeading}
	Link               = Predicate{Kind: KindLink}
	VisitedLink        = Predicate{Kind: KindVisitedLink}
	Button             = Predicate{Kind: KindButton}
	Checkbox           = Predicate{Kind: KindCheckbox}
	ComboBox           = Predicate{Kind: KindComboBox}
	EditText           = Predicate{Kind: KindEditText}
	FormField          = Predicate{Kind: KindFormField}
	Graphic            = Predicate{Kind: KindGraphic}
	Landmark           = Predicate{Kind: KindLandmark}
	List               = Predicate{Kind: KindList}
	Table              = Predicate{Kind: KindTable}
	InvalidItem        = Predicate{Kind: KindInvalidItem}
	Math               = Predicate{Kind: KindMath}
	Object             = Predicate{Kind: KindObject}
	Leaf               = Predicate{Kind: KindLeaf}
	Group              = Predicate{Kind: KindGroup}
	Root               = Predicate{Kind: KindRoot}
	RootOrEditableRoot = Predicate{Kind: KindRootOrEditableRoot}
)

// HeadingOfLevel matches headings of the given level.
func HeadingOfLevel(level int) Predicate {
	return Predicate{Kind: KindHeadingLevel, Level: level}
}

// SameRole matches nodes with the given role.
func SameRole(role tree.Role) Predicate {
	return Predicate{Kind: KindSameRole, Role: role}
}

// AnyCell matches every cell of the anchor's table.
var AnyCell = Predicate{Kind: KindTableCell}

// TableCell matches cells reachable by the given table movement.
func TableCell(move CellMove) Predicate {
	return Predicate{Kind: KindTableCell, Cell: move}
}
