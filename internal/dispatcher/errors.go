package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for a command.
	ErrNoHandler = errors.New("dispatcher: no handler for command")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrUnknownRestriction indicates an unrecognized restriction mode name.
	ErrUnknownRestriction = errors.New("dispatcher: unknown restriction mode")
)
