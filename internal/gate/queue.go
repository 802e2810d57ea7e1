package gate

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/logging"
)

// Outcome is the result of submitting an input to a queue.
type Outcome uint8

const (
	// OutcomeMismatch means the input did not match; nothing changed.
	OutcomeMismatch Outcome = iota
	// OutcomeMatched means the current action matched and the queue advanced.
	OutcomeMatched
	// OutcomeMatchedPropagate is OutcomeMatched for an action that also
	// forwards its input to normal handling.
	OutcomeMatchedPropagate
	// OutcomeClose means the close combination was pressed.
	OutcomeClose
)

var outcomeNames = [...]string{
	OutcomeMismatch:         "mismatch",
	OutcomeMatched:          "matched",
	OutcomeMatchedPropagate: "matched+propagate",
	OutcomeClose:            "close",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", o)
}

// Matched reports whether the input advanced the queue.
func (o Outcome) Matched() bool {
	return o == OutcomeMatched || o == OutcomeMatchedPropagate
}

// Propagate reports whether the input should also reach normal handling.
func (o Outcome) Propagate() bool {
	return o == OutcomeMatchedPropagate
}

// Hooks are the side effects of a queue. Any of them may be nil.
type Hooks struct {
	// Announce speaks a before or after message.
	Announce func(msg string)

	// Dispatch runs an action's after command.
	Dispatch func(cmd command.Command) bool

	// Complete is called once when the last action matches.
	Complete func()

	// Close is called each time the close combination is pressed.
	Close func()
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueLogger sets the queue logger.
func WithQueueLogger(l *logging.Logger) QueueOption {
	return func(q *Queue) {
		q.logger = l
	}
}

// Queue is the state machine of one guided flow. Its index is always in
// [0, Len()]; Len() is the terminal state.
type Queue struct {
	id      string
	actions []ExpectedAction
	hooks   Hooks
	logger  *logging.Logger

	mu    sync.Mutex
	index int
}

// NewQueue creates a queue over actions and announces the before message of
// the first action.
func NewQueue(actions []ExpectedAction, hooks Hooks, opts ...QueueOption) (*Queue, error) {
	if len(actions) == 0 {
		return nil, ErrEmptyQueue
	}
	q := &Queue{
		id:      uuid.New().String(),
		actions: append([]ExpectedAction(nil), actions...),
		hooks:   hooks,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.logger = q.logger.WithComponent("gate").WithField("flow", q.id)
	q.logger.Debug("started with %d actions", len(q.actions))

	q.announce(q.actions[0].before)
	return q, nil
}

// ID returns the session id used in logs.
func (q *Queue) ID() string { return q.id }

// Len returns the number of actions.
func (q *Queue) Len() int { return len(q.actions) }

// Index returns the position of the action being waited for.
func (q *Queue) Index() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.index
}

// Done reports whether every action has matched.
func (q *Queue) Done() bool {
	return q.Index() == len(q.actions)
}

// Current returns the action being waited for. ok is false once done.
func (q *Queue) Current() (ExpectedAction, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.index >= len(q.actions) {
		return ExpectedAction{}, false
	}
	return q.actions[q.index], true
}

// OnKeySequence submits a key sequence. The close combination is checked
// first and succeeds in any state, including after completion.
func (q *Queue) OnKeySequence(seq *key.Sequence) (Outcome, error) {
	if seq.IsClose() {
		q.Close()
		return OutcomeClose, nil
	}
	return q.submit(func(a ExpectedAction) bool { return a.matchesSequence(seq) })
}

// OnGesture submits a gesture name.
func (q *Queue) OnGesture(name string) (Outcome, error) {
	return q.submit(func(a ExpectedAction) bool { return a.matchesName(Gesture, name) })
}

// OnBraille submits a braille input name.
func (q *Queue) OnBraille(name string) (Outcome, error) {
	return q.submit(func(a ExpectedAction) bool { return a.matchesName(BrailleInput, name) })
}

// Close runs the close hook. The index is left unchanged.
func (q *Queue) Close() {
	q.logger.Debug("closed at index %d", q.Index())
	if q.hooks.Close != nil {
		q.hooks.Close()
	}
}

func (q *Queue) submit(match func(ExpectedAction) bool) (Outcome, error) {
	q.mu.Lock()
	if q.index >= len(q.actions) {
		q.mu.Unlock()
		return OutcomeMismatch, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, q.index, len(q.actions))
	}
	cur := q.actions[q.index]
	if !match(cur) {
		q.mu.Unlock()
		return OutcomeMismatch, nil
	}
	q.index++
	index := q.index
	q.mu.Unlock()

	q.logger.Debug("matched %s, index %d", cur, index)
	q.announce(cur.after)
	if cur.afterCmd != command.Unknown && q.hooks.Dispatch != nil {
		q.hooks.Dispatch(cur.afterCmd)
	}

	if index == len(q.actions) {
		q.logger.Debug("completed")
		if q.hooks.Complete != nil {
			q.hooks.Complete()
		}
	} else {
		q.announce(q.actions[index].before)
	}

	if cur.propagate {
		return OutcomeMatchedPropagate, nil
	}
	return OutcomeMatched, nil
}

func (q *Queue) announce(msg string) {
	if msg != "" && q.hooks.Announce != nil {
		q.hooks.Announce(msg)
	}
}
