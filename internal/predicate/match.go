package predicate

import (
	"github.com/dshills/voxnav/internal/tree"
)

var landmarkRoles = map[tree.Role]bool{
	tree.RoleMain:        true,
	tree.RoleNavigation:  true,
	tree.RoleBanner:      true,
	tree.RoleRegion:      true,
	tree.RoleContentInfo: true,
}

var formFieldRoles = map[tree.Role]bool{
	tree.RoleButton:      true,
	tree.RoleCheckBox:    true,
	tree.RoleRadioButton: true,
	tree.RoleComboBox:    true,
	tree.RoleTextField:   true,
	tree.RoleSlider:      true,
}

// objectRoles are roles that are read as a single object even when they
// have children.
var objectRoles = map[tree.Role]bool{
	tree.RoleButton:      true,
	tree.RoleCheckBox:    true,
	tree.RoleRadioButton: true,
	tree.RoleComboBox:    true,
	tree.RoleTextField:   true,
	tree.RoleSlider:      true,
	tree.RoleImage:       true,
	tree.RoleLink:        true,
	tree.RoleHeading:     true,
	tree.RoleMath:        true,
}

var groupRoles = map[tree.Role]bool{
	tree.RoleGroup:     true,
	tree.RoleList:      true,
	tree.RoleTable:     true,
	tree.RoleParagraph: true,
	tree.RoleHeading:   true,
}

var containerRoles = map[tree.Role]bool{
	tree.RoleDesktop:     true,
	tree.RoleWindow:      true,
	tree.RoleRootWebArea: true,
	tree.RoleGeneric:     true,
}

// Match evaluates p against n. anchor is the node navigation starts from;
// only table cell predicates use it.
func Match(p Predicate, n, anchor tree.Node) bool {
	if n == nil || !n.Valid() {
		return false
	}
	if n.State().Has(tree.StateIgnored) && p.Kind != KindRoot && p.Kind != KindRootOrEditableRoot {
		return false
	}

	role := n.Role()
	switch p.Kind {
	case KindNone:
		return false
	case KindHeading:
		return role == tree.RoleHeading
	case KindHeadingLevel:
		return role == tree.RoleHeading && n.HeadingLevel() == p.Level
	case KindLink:
		return role == tree.RoleLink
	case KindVisitedLink:
		return role == tree.RoleLink && n.State().Has(tree.StateVisited)
	case KindButton:
		return role == tree.RoleButton
	case KindCheckbox:
		return role == tree.RoleCheckBox
	case KindComboBox:
		return role == tree.RoleComboBox
	case KindEditText:
		return role == tree.RoleTextField || (n.State().Has(tree.StateEditable) && !isEditableDescendant(n))
	case KindFormField:
		return formFieldRoles[role]
	case KindGraphic:
		return role == tree.RoleImage
	case KindLandmark:
		return landmarkRoles[role]
	case KindList:
		return role == tree.RoleList
	case KindTable:
		return role == tree.RoleTable
	case KindInvalidItem:
		return n.State().Has(tree.StateInvalid)
	case KindSameRole:
		return role == p.Role
	case KindMath:
		return role == tree.RoleMath
	case KindObject:
		return isObject(n)
	case KindLeaf:
		return tree.IsLeaf(n)
	case KindGroup:
		return groupRoles[role]
	case KindTableCell:
		return matchCell(p.Cell, n, anchor)
	case KindRoot:
		return role == tree.RoleRootWebArea || role == tree.RoleDesktop
	case KindRootOrEditableRoot:
		return role == tree.RoleRootWebArea || role == tree.RoleDesktop ||
			(n.State().Has(tree.StateEditable) && !isEditableDescendant(n))
	default:
		return false
	}
}

// Func adapts p to a tree search callback.
func Func(p Predicate, anchor tree.Node) func(tree.Node) bool {
	return func(n tree.Node) bool { return Match(p, n, anchor) }
}

func isObject(n tree.Node) bool {
	role := n.Role()
	if containerRoles[role] {
		return false
	}
	if objectRoles[role] || n.State().Has(tree.StateFocusable) {
		return true
	}
	if isEditableDescendant(n) {
		return false
	}
	return tree.IsLeaf(n) && tree.Text(n) != ""
}

// isEditableDescendant reports whether n sits inside an editable root.
func isEditableDescendant(n tree.Node) bool {
	p := n.Parent()
	return p != nil && p.State().Has(tree.StateEditable)
}

// EnclosingRoot returns the nearest ancestor of n (n included) that satisfies
// p, or nil.
func EnclosingRoot(p Predicate, n tree.Node) tree.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if Match(p, cur, nil) {
			return cur
		}
	}
	return nil
}

// tableOf returns the nearest table ancestor of n.
func tableOf(n tree.Node) tree.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Role() == tree.RoleTable {
			return p
		}
	}
	return nil
}

// matchCell compares structural table ancestry: the candidate must be a cell
// of the same table, on the anchor's row (Row moves) or column (Col moves),
// strictly beyond the anchor in the movement direction. A move with no axis
// accepts every cell of the anchor's table. End moves only
// accept the outermost cell; adjacent moves accept the nearest one, which
// the directional search finds first.
func matchCell(move CellMove, n, anchor tree.Node) bool {
	row, col, ok := n.TableCell()
	if !ok || anchor == nil {
		return false
	}
	arow, acol, aok := anchor.TableCell()
	if !aok {
		return false
	}
	table := tableOf(n)
	if table == nil || table != tableOf(anchor) {
		return false
	}

	var pos, apos int
	switch {
	case move.Row:
		if row != arow {
			return false
		}
		pos, apos = col, acol
	case move.Col:
		if col != acol {
			return false
		}
		pos, apos = row, arow
	default:
		// No axis: any cell of the anchor's table.
		return true
	}

	if move.End {
		return isEndCell(move, table, n, pos)
	}
	if move.Dir == tree.Forward {
		return pos > apos
	}
	return pos < apos
}

// isEndCell reports whether n is the first (backward) or last (forward) cell
// along the movement axis.
func isEndCell(move CellMove, table, n tree.Node, pos int) bool {
	nr, nc, _ := n.TableCell()
	best := pos
	var walk func(tree.Node)
	walk = func(x tree.Node) {
		if r, c, ok := x.TableCell(); ok && x.Valid() {
			p, onAxis := 0, false
			switch {
			case move.Row && r == nr:
				p, onAxis = c, true
			case move.Col && c == nc:
				p, onAxis = r, true
			}
			if onAxis && move.Dir == tree.Forward && p > best {
				best = p
			}
			if onAxis && move.Dir == tree.Backward && p < best {
				best = p
			}
		}
		for _, child := range x.Children() {
			walk(child)
		}
	}
	walk(table)
	return best == pos
}
