package gate

import (
	"sync"

	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/logging"
)

// Monitor owns the single active guided flow and decides whether input
// reaches normal handling while a flow runs.
type Monitor struct {
	logger *logging.Logger

	mu     sync.Mutex
	active *Queue
}

// NewMonitor creates a monitor with no active flow.
func NewMonitor(logger *logging.Logger) *Monitor {
	return &Monitor{
		logger: logger.WithComponent("gate"),
	}
}

// Create starts a flow over actions. It fails with ErrQueueActive while
// another flow is active. The flow leaves the slot when it completes or is
// closed; the hooks run after that.
func (m *Monitor) Create(actions []ExpectedAction, hooks Hooks) (*Queue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return nil, ErrQueueActive
	}

	var q *Queue
	wrapped := hooks
	wrapped.Complete = func() {
		m.release(q)
		if hooks.Complete != nil {
			hooks.Complete()
		}
	}
	wrapped.Close = func() {
		m.release(q)
		if hooks.Close != nil {
			hooks.Close()
		}
	}

	q, err := NewQueue(actions, wrapped, WithQueueLogger(m.logger))
	if err != nil {
		return nil, err
	}
	m.active = q
	return q, nil
}

// Destroy discards the active flow without running its hooks.
func (m *Monitor) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.logger.Debug("destroying flow %s at index %d", m.active.ID(), m.active.Index())
	}
	m.active = nil
}

// Active returns the active flow, or nil.
func (m *Monitor) Active() *Queue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// CloseFlow closes the active flow as the close combination would. It
// reports whether a flow was active.
func (m *Monitor) CloseFlow() bool {
	q := m.Active()
	if q == nil {
		return false
	}
	q.Close()
	return true
}

// OnKeySequence feeds seq to the active flow and reports whether it should
// also reach normal handling. Without a flow every input passes.
func (m *Monitor) OnKeySequence(seq *key.Sequence) bool {
	q := m.Active()
	if q == nil {
		return true
	}
	outcome, err := q.OnKeySequence(seq)
	return m.result(q, outcome, err)
}

// OnGesture is OnKeySequence for gestures.
func (m *Monitor) OnGesture(name string) bool {
	q := m.Active()
	if q == nil {
		return true
	}
	outcome, err := q.OnGesture(name)
	return m.result(q, outcome, err)
}

// OnBraille is OnKeySequence for braille input.
func (m *Monitor) OnBraille(name string) bool {
	q := m.Active()
	if q == nil {
		return true
	}
	outcome, err := q.OnBraille(name)
	return m.result(q, outcome, err)
}

func (m *Monitor) result(q *Queue, outcome Outcome, err error) bool {
	if err != nil {
		m.logger.Warn("flow %s: %v", q.ID(), err)
		m.release(q)
		return true
	}
	return outcome.Propagate()
}

// release empties the slot if q still holds it.
func (m *Monitor) release(q *Queue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == q {
		m.active = nil
	}
}
