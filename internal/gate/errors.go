package gate

import (
	"errors"
	"fmt"
)

// Contract violations.
var (
	// ErrEmptyQueue is returned when a queue is built without actions.
	ErrEmptyQueue = errors.New("gate: queue has no actions")

	// ErrInvalidIndex is returned when input is submitted to a finished queue.
	ErrInvalidIndex = errors.New("gate: queue index out of range")

	// ErrPayloadType is returned when an action value does not fit its type.
	ErrPayloadType = errors.New("gate: action value has wrong type")

	// ErrUnknownType is returned for an unrecognized action type name.
	ErrUnknownType = errors.New("gate: unknown action type")

	// ErrQueueActive is returned when a flow is started while another is live.
	ErrQueueActive = errors.New("gate: a guided flow is already active")

	// ErrUnknownFlow is returned when a named flow does not exist.
	ErrUnknownFlow = errors.New("gate: unknown flow")
)

// ScriptError reports a malformed flow script.
type ScriptError struct {
	Path   string
	Action int // -1 when the error is not tied to an action
	Err    error
}

func (e *ScriptError) Error() string {
	if e.Action >= 0 {
		return fmt.Sprintf("gate: %s: action %d: %v", e.Path, e.Action, e.Err)
	}
	return fmt.Sprintf("gate: %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
