package output

import "github.com/dshills/voxnav/internal/tree"

var roleMessages = map[tree.Role]MsgKey{
	tree.RoleButton:      MsgRoleButton,
	tree.RoleCheckBox:    MsgRoleCheckbox,
	tree.RoleRadioButton: MsgRoleRadio,
	tree.RoleComboBox:    MsgRoleComboBox,
	tree.RoleSlider:      MsgRoleSlider,
	tree.RoleImage:       MsgRoleImage,
	tree.RoleListItem:    MsgRoleListItem,
	tree.RoleMath:        MsgRoleMath,
	tree.RoleMain:        MsgRoleMain,
	tree.RoleNavigation:  MsgRoleNavigation,
	tree.RoleBanner:      MsgRoleBanner,
	tree.RoleRegion:      MsgRoleRegion,
	tree.RoleContentInfo: MsgRoleContentInfo,
	tree.RoleGroup:       MsgRoleGroup,
}

// contextRoles are announced when navigation enters them.
var contextRoles = map[tree.Role]bool{
	tree.RoleList:        true,
	tree.RoleTable:       true,
	tree.RoleMain:        true,
	tree.RoleNavigation:  true,
	tree.RoleBanner:      true,
	tree.RoleRegion:      true,
	tree.RoleContentInfo: true,
	tree.RoleMath:        true,
}

func (r *Renderer) roleText(n tree.Node) string {
	switch n.Role() {
	case tree.RoleHeading:
		return r.Message(MsgRoleHeading, max(n.HeadingLevel(), 1))
	case tree.RoleLink:
		if n.State().Has(tree.StateVisited) {
			return r.Message(MsgRoleVisitedLink)
		}
		return r.Message(MsgRoleLink)
	case tree.RoleTextField:
		if n.State().Has(tree.StateMultiline) {
			return r.Message(MsgRoleTextArea)
		}
		return r.Message(MsgRoleTextField)
	case tree.RoleCell, tree.RoleColumnHeader, tree.RoleRowHeader:
		if row, col, ok := n.TableCell(); ok {
			return r.Message(MsgRoleCell, row+1, col+1)
		}
		return ""
	case tree.RoleList:
		return r.Message(MsgRoleList, countRole(n, tree.RoleListItem))
	case tree.RoleTable:
		rows, cols := tableSize(n)
		return r.Message(MsgRoleTable, rows, cols)
	}
	if key, ok := roleMessages[n.Role()]; ok {
		return r.Message(key)
	}
	return ""
}

func (r *Renderer) stateText(n tree.Node) []string {
	var out []string
	s := n.State()
	switch n.Role() {
	case tree.RoleCheckBox, tree.RoleRadioButton:
		if s.Has(tree.StateChecked) {
			out = append(out, r.Message(MsgStateChecked))
		} else {
			out = append(out, r.Message(MsgStateNotChecked))
		}
	}
	if s.Has(tree.StateInvalid) {
		out = append(out, r.Message(MsgStateInvalid))
	}
	if s.Has(tree.StateReadOnly) {
		out = append(out, r.Message(MsgStateReadOnly))
	}
	return out
}

func (r *Renderer) hintText(n tree.Node) string {
	switch {
	case n.Role() == tree.RoleCheckBox || n.Role() == tree.RoleRadioButton:
		return r.Message(MsgHintToggle)
	case n.State().Has(tree.StateEditable):
		return r.Message(MsgHintEdit)
	case n.Role() == tree.RoleLink || n.Role() == tree.RoleButton || n.State().Has(tree.StateFocusable):
		return r.Message(MsgHintActivate)
	}
	return ""
}

func countRole(n tree.Node, role tree.Role) int {
	count := 0
	for _, c := range n.Children() {
		if c.Role() == role {
			count++
		}
	}
	return count
}

func tableSize(table tree.Node) (rows, cols int) {
	for cur := tree.Next(table, table); cur != nil; cur = tree.Next(cur, table) {
		if cur.Role() != tree.RoleRow {
			continue
		}
		rows++
		cols = max(cols, len(cur.Children()))
	}
	return rows, cols
}
