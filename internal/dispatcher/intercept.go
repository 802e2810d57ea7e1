package dispatcher

import (
	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/predicate"
	"github.com/dshills/voxnav/internal/prefs"
	"github.com/dshills/voxnav/internal/tree"
)

// editKeys are the native key presses that replace navigation commands
// inside a focused text field.
var editKeys = map[command.Command]key.Event{
	command.NextCharacter:     key.NewSpecialEvent(key.KeyRight, key.ModNone),
	command.PreviousCharacter: key.NewSpecialEvent(key.KeyLeft, key.ModNone),
	command.NextWord:          key.NewSpecialEvent(key.KeyRight, key.ModCtrl),
	command.PreviousWord:      key.NewSpecialEvent(key.KeyLeft, key.ModCtrl),
	command.NextLine:          key.NewSpecialEvent(key.KeyDown, key.ModNone),
	command.PreviousLine:      key.NewSpecialEvent(key.KeyUp, key.ModNone),
	command.NextObject:        key.NewSpecialEvent(key.KeyDown, key.ModNone),
	command.PreviousObject:    key.NewSpecialEvent(key.KeyUp, key.ModNone),
	command.JumpToTop:         key.NewSpecialEvent(key.KeyHome, key.ModCtrl),
	command.JumpToBottom:      key.NewSpecialEvent(key.KeyEnd, key.ModCtrl),
	command.GoToRowFirstCell:  key.NewSpecialEvent(key.KeyHome, key.ModNone),
	command.GoToRowLastCell:   key.NewSpecialEvent(key.KeyEnd, key.ModNone),
}

// intercept sends the native key press for cmd when the range is inside the
// focused text field. Line moves only stay in a multiline field while the
// caret is not already on its first (up) or last (down) line; otherwise
// navigation continues in the tree.
func (d *Dispatcher) intercept(cmd command.Command, cur cursor.Range) bool {
	ev, ok := editKeys[cmd]
	if !ok || !d.config.EditIntercepts {
		return false
	}
	if d.prefs.Bool(prefs.StickyMode) || d.prefs.Bool(prefs.ReadOnlyEditing) {
		return false
	}

	field := editableField(cur.Start.Node)
	if field == nil || field.State().Has(tree.StateReadOnly) {
		return false
	}
	focus := d.host.Focus()
	if focus == nil || (focus != field && !tree.IsAncestor(field, focus)) {
		return false
	}

	if ev.Key == key.KeyUp || ev.Key == key.KeyDown {
		if !field.State().Has(tree.StateMultiline) {
			return false
		}
		_, caret, ok := field.TextSelection()
		if !ok {
			caret = 0
		}
		line, count := cursor.LineIndex(field, caret)
		if ev.Key == key.KeyUp && line == 0 {
			return false
		}
		if ev.Key == key.KeyDown && line >= count-1 {
			return false
		}
	}

	d.state.IgnoreRangeChanges(true)
	d.host.SendKeyPress(ev)
	return true
}

// editableField returns the editable root containing n, or nil.
func editableField(n tree.Node) tree.Node {
	root := predicate.EnclosingRoot(predicate.RootOrEditableRoot, n)
	if root == nil || !root.State().Has(tree.StateEditable) {
		return nil
	}
	return root
}
