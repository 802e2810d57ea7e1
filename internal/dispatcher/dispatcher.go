package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/dispatcher/handler"
	"github.com/dshills/voxnav/internal/dispatcher/handlers/actions"
	"github.com/dshills/voxnav/internal/dispatcher/handlers/settings"
	"github.com/dshills/voxnav/internal/logging"
	"github.com/dshills/voxnav/internal/navstate"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/prefs"
	"github.com/dshills/voxnav/internal/store"
	"github.com/dshills/voxnav/internal/tree"
)

// Scroller brings navigation targets into view.
type Scroller interface {
	// ScrollTo returns nil when target can be navigated to immediately, or
	// a channel that is closed once scrolling has settled.
	ScrollTo(target cursor.Range) <-chan struct{}
}

// Dispatcher turns commands into handler calls and navigation.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	config   Config
	metrics  *Metrics

	state    *navstate.State
	out      *output.Renderer
	prefs    *prefs.Prefs
	host     tree.Host
	logger   *logging.Logger
	scroller Scroller
	services handler.Services

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook

	pending *pendingPlan
}

type pendingPlan struct {
	plan   *Plan
	settle <-chan struct{}
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) { d.logger = l.WithComponent("dispatcher") }
}

// WithScroller sets the scroll collaborator.
func WithScroller(s Scroller) Option {
	return func(d *Dispatcher) { d.scroller = s }
}

// WithServices sets the optional collaborators passed to handlers.
func WithServices(s handler.Services) Option {
	return func(d *Dispatcher) { d.services = s }
}

// New creates a dispatcher over state. The built-in settings and range
// action handlers are registered. A nil p uses default preferences kept in
// memory.
func New(config Config, state *navstate.State, p *prefs.Prefs, opts ...Option) *Dispatcher {
	if p == nil {
		p = prefs.New(store.New())
	}
	d := &Dispatcher{
		registry: NewRegistry(),
		config:   config,
		state:    state,
		out:      state.Output(),
		prefs:    p,
		host:     state.Host(),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	d.registry.RegisterSet(settings.New())
	d.registry.RegisterSet(actions.New())
	return d
}

// Dispatch runs cmd. It reports whether the host should also apply its own
// default handling of the input that produced the command.
func (d *Dispatcher) Dispatch(cmd command.Command) bool {
	start := time.Now()

	if !cmd.Valid() {
		d.logger.Warn("ignoring unknown command %d", uint16(cmd))
		return true
	}

	ctx := d.newContext(cmd)
	var (
		result handler.Result
		missed bool
	)
	if !d.runPreHooks(cmd) {
		result = handler.Cancelled("denied by restriction policy")
	} else {
		result, missed = d.dispatch(ctx)
		d.state.IgnoreRangeChanges(false)
	}

	if result.IsError() {
		d.logger.Error("%s: %v", cmd, result.Error)
	}
	d.runPostHooks(cmd, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(cmd, time.Since(start), result.Status)
		if missed {
			d.metrics.RecordMiss(cmd)
		}
	}
	return result.Propagate()
}

// dispatch runs the tiers in order. missed is true when a navigation found
// no target.
func (d *Dispatcher) dispatch(ctx *handler.Context) (result handler.Result, missed bool) {
	cmd := ctx.Command
	d.dropPending()
	d.checkFocusLoss()

	if cmd.Tier() == command.TierStateOnly {
		return d.execute(ctx), false
	}

	cur := d.state.CurrentRange()
	if cur == nil {
		if !d.state.TalkBackEnabled() {
			d.out.Announce(output.MsgNoFocus)
		}
		return handler.Propagate().WithMessage("no current range"), false
	}
	ctx.Range = cur

	if d.intercept(cmd, *cur) {
		return handler.Success().WithMessage("sent native key press"), false
	}

	if d.registry.Has(cmd) {
		return d.execute(ctx), false
	}

	plan, outcome := d.plan(cmd, *cur)
	switch outcome {
	case OutcomeReady:
	case OutcomeNoTarget:
		return handler.NoOp().WithMessage("no target"), true
	default:
		d.logger.Warn("%v: %s", ErrNoHandler, cmd)
		return handler.Propagate(), false
	}

	if d.scroller != nil {
		if settle := d.scroller.ScrollTo(plan.Target); settle != nil {
			d.mu.Lock()
			d.pending = &pendingPlan{plan: plan, settle: settle}
			d.mu.Unlock()
			return handler.Pending(), false
		}
	}
	d.Execute(plan)
	return handler.Success(), false
}

// checkFocusLoss clears the range when the host has no focus at all, and
// resynchronizes an invalid range to the live host focus.
func (d *Dispatcher) checkFocusLoss() {
	raw := d.state.CurrentRangeWithoutRecovery()
	focus := d.host.Focus()
	if focus == nil || !focus.Valid() {
		if raw != nil {
			d.logger.Debug("no host focus, clearing range")
			d.state.SetCurrentRange(nil, false)
		}
		return
	}
	if raw == nil || raw.IsValid() {
		return
	}
	r := cursor.FromNode(focus)
	d.logger.Debug("resyncing range to focus %s", focus.ID())
	d.state.SetCurrentRange(&r, false)
}

func (d *Dispatcher) newContext(cmd command.Command) *handler.Context {
	return &handler.Context{
		Command:  cmd,
		State:    d.state,
		Output:   d.out,
		Prefs:    d.prefs,
		Host:     d.host,
		Logger:   d.logger,
		Services: d.services,
	}
}

func (d *Dispatcher) execute(ctx *handler.Context) handler.Result {
	h := d.registry.Get(ctx.Command)
	if h == nil {
		d.logger.Warn("%v: %s", ErrNoHandler, ctx.Command)
		return handler.Propagate()
	}
	if d.config.RecoverFromPanic {
		return d.executeWithRecovery(h, ctx)
	}
	return h.Handle(ctx)
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, ctx *handler.Context) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w for %s: %v\n%s", ErrPanic, ctx.Command, r, stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(ctx.Command)
			}
		}
	}()

	return h.Handle(ctx)
}

// Pending returns the plan waiting for scrolling to settle and the channel
// that is closed when it has. Both are nil when nothing is pending.
func (d *Dispatcher) Pending() (*Plan, <-chan struct{}) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.pending == nil {
		return nil, nil
	}
	return d.pending.plan, d.pending.settle
}

// ExecutePending executes the pending plan, if any, and clears it. The
// caller waits for the settle channel first.
func (d *Dispatcher) ExecutePending() bool {
	d.mu.Lock()
	p := d.pending
	d.pending = nil
	d.mu.Unlock()
	if p == nil {
		return false
	}
	defer d.state.IgnoreRangeChanges(false)
	return d.Execute(p.plan)
}

// dropPending discards a plan superseded by a new command.
func (d *Dispatcher) dropPending() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.logger.Debug("dropping pending %s", d.pending.plan.Command)
		d.pending = nil
	}
}

// RegisterHandler registers a handler for a command.
func (d *Dispatcher) RegisterHandler(cmd command.Command, h handler.Handler) {
	d.registry.Register(cmd, h)
}

// RegisterHandlerFunc registers a handler function for a command.
func (d *Dispatcher) RegisterHandlerFunc(cmd command.Command, fn func(*handler.Context) handler.Result) {
	d.registry.Register(cmd, handler.NewHandlerFunc(fn))
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// runPreHooks returns false if any hook denies the command.
func (d *Dispatcher) runPreHooks(cmd command.Command) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(cmd) {
			return false
		}
	}
	return true
}

func (d *Dispatcher) runPostHooks(cmd command.Command, ctx *handler.Context, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(cmd, ctx, result)
	}
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
