package app

import (
	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/tree"
)

// HandleKeyEvent accumulates single key presses into sequences. A press
// that starts or continues a multi-key binding is held and reported as
// consumed; otherwise the accumulated sequence goes to HandleKey. The close
// combination always stands alone.
func (app *Application) HandleKeyEvent(ev key.Event) bool {
	if app.closed.Load() {
		return true
	}

	single := key.NewSequenceFrom(ev)

	app.mu.Lock()
	seq := app.pendingKeys
	app.pendingKeys = nil
	if seq == nil || single.IsClose() {
		seq = single
	} else {
		seq.Add(ev)
	}
	if _, bound := app.keymap.Lookup(seq); !bound && app.keymap.HasPrefix(seq) {
		app.pendingKeys = seq
		app.mu.Unlock()
		app.logger.Debug("holding prefix %s", seq)
		return false
	}
	app.mu.Unlock()

	return app.HandleKey(seq)
}

// HandleKey handles a complete key sequence and reports whether the host
// should apply its own handling of the keys. An active guided flow sees the
// sequence first and may consume it.
func (app *Application) HandleKey(seq *key.Sequence) bool {
	if seq == nil || seq.IsEmpty() || app.closed.Load() {
		return true
	}

	flowActive := app.monitor.Active() != nil
	if !app.monitor.OnKeySequence(seq) {
		if flowActive && seq.IsClose() {
			app.out.Announce(output.MsgFlowClosed)
		}
		return false
	}

	cmd, ok := app.keymap.Lookup(seq)
	if !ok {
		return true
	}
	return app.dispatch(cmd, seq.String())
}

// HandleGesture handles a touch gesture such as "swipeRight1".
func (app *Application) HandleGesture(name string) bool {
	if name == "" || app.closed.Load() {
		return true
	}
	if !app.monitor.OnGesture(name) {
		return false
	}
	cmd, ok := app.keymap.Gesture(name)
	if !ok {
		return true
	}
	return app.dispatch(cmd, name)
}

// HandleBraille handles a braille display command such as "panRight".
func (app *Application) HandleBraille(name string) bool {
	if name == "" || app.closed.Load() {
		return true
	}
	if !app.monitor.OnBraille(name) {
		return false
	}
	cmd, ok := app.keymap.Braille(name)
	if !ok {
		return true
	}
	return app.dispatch(cmd, name)
}

func (app *Application) dispatch(cmd command.Command, input string) bool {
	app.logger.Debug("%s -> %s", input, cmd)
	app.palette.Record(cmd)
	return app.dispatcher.Dispatch(cmd)
}

// HandleFocusChange moves the current range to node after the host moved
// its focus there, and announces it. A focus change onto the node the range
// already starts on is ignored.
func (app *Application) HandleFocusChange(node tree.Node) {
	if node == nil || app.closed.Load() {
		return
	}
	prev := app.state.CurrentRange()
	if prev != nil && prev.Start.Node == node {
		return
	}
	r := cursor.FromNode(node)
	if !r.IsValid() {
		return
	}
	app.state.SetCurrentRange(&r, false)
	app.out.New().WithRichSpeechAndBraille(&r, prev, output.EventFocus).Go()
}

// ExecutePending executes the navigation deferred by the scroller, if any.
// Hosts call it once the settle channel from Dispatcher().Pending() closes.
func (app *Application) ExecutePending() bool {
	if app.closed.Load() {
		return false
	}
	return app.dispatcher.ExecutePending()
}
