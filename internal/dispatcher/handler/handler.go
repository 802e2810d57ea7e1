// Package handler provides the handler interface and types for command dispatch.
package handler

import (
	"time"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/logging"
	"github.com/dshills/voxnav/internal/navstate"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/prefs"
	"github.com/dshills/voxnav/internal/tree"
)

// Handler processes a command that does not navigate.
type Handler interface {
	// Handle executes the command and returns a result.
	Handle(ctx *Context) Result

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// Set is a group of handlers registered together, such as all preference
// commands.
type Set interface {
	Handler

	// Commands lists the commands the set handles.
	Commands() []command.Command
}

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc struct {
	fn   func(ctx *Context) Result
	prio int
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(ctx *Context) Result) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// NewHandlerFuncWithPriority creates a HandlerFunc with a specified priority.
func NewHandlerFuncWithPriority(fn func(ctx *Context) Result, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler.
func (f *HandlerFunc) Handle(ctx *Context) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(ctx)
}

// Priority implements Handler.
func (f *HandlerFunc) Priority() int {
	return f.prio
}

// BatteryReporter describes the battery state for announcements.
type BatteryReporter interface {
	BatteryDescription() (string, bool)
}

// PageOpener opens one of the screen reader's own pages (options, learn
// mode, log).
type PageOpener interface {
	OpenPage(name string)
}

// FlowCloser closes the active guided flow. It reports whether a flow was
// active.
type FlowCloser interface {
	CloseFlow() bool
}

// Services are optional collaborators of command handlers. Nil members are
// treated as unavailable.
type Services struct {
	Version string
	Now     func() time.Time
	Battery BatteryReporter
	Pages   PageOpener
	Flows   FlowCloser
}

// Context carries everything a handler may touch during one dispatch.
type Context struct {
	Command command.Command
	State   *navstate.State
	Output  *output.Renderer
	Prefs   *prefs.Prefs
	Host    tree.Host
	Logger  *logging.Logger

	// Range is the current range. It is nil for state-only commands, which
	// must not depend on it.
	Range *cursor.Range

	Services Services
}

// Now returns the current time from the configured clock.
func (c *Context) Now() time.Time {
	if c.Services.Now != nil {
		return c.Services.Now()
	}
	return time.Now()
}

// Announce speaks a catalog message.
func (c *Context) Announce(key output.MsgKey, args ...any) {
	c.Output.Announce(key, args...)
}
