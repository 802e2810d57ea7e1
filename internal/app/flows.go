package app

import (
	"fmt"

	"github.com/dshills/voxnav/internal/gate"
	"github.com/dshills/voxnav/internal/output"
)

// FlowNames returns the loaded guided flows, sorted.
func (app *Application) FlowNames() []string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return gate.Names(app.flows)
}

// StartFlow starts the guided flow called name. Only one flow runs at a
// time; starting another while one is active fails with gate.ErrQueueActive.
func (app *Application) StartFlow(name string) error {
	if app.closed.Load() {
		return ErrShutdown
	}

	app.mu.RLock()
	script, ok := app.flows[name]
	app.mu.RUnlock()
	if !ok {
		app.out.Announce(output.MsgUnknownFlow, name)
		return fmt.Errorf("%w: %s", ErrFlowNotFound, name)
	}

	actions, err := script.ExpectedActions()
	if err != nil {
		return err
	}

	logger := app.logger.WithField("flow_name", name)
	q, err := app.monitor.Create(actions, gate.Hooks{
		Announce: func(msg string) {
			app.out.New().WithString(msg).Go()
		},
		Dispatch: app.dispatcher.Dispatch,
		Complete: func() {
			logger.Info("completed")
		},
		Close: func() {
			logger.Info("closed")
		},
	})
	if err != nil {
		return err
	}
	logger.Info("started flow %s with %d actions", q.ID(), q.Len())
	return nil
}

// FlowActive reports whether a guided flow is running.
func (app *Application) FlowActive() bool {
	return app.monitor.Active() != nil
}

// CancelFlow discards the active flow without running its close hooks, as
// when the host tears the flow's page down. It reports whether a flow was
// active.
func (app *Application) CancelFlow() bool {
	if app.monitor.Active() == nil {
		return false
	}
	app.monitor.Destroy()
	return true
}
