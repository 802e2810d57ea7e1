package handler

import (
	"errors"
	"fmt"
)

// ResultStatus indicates the outcome of a command.
type ResultStatus uint8

const (
	// StatusOK indicates the command was handled.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the command had no effect but was consumed.
	StatusNoOp
	// StatusError indicates the handler failed. The command is still
	// consumed.
	StatusError
	// StatusPropagate asks the host to apply its own default handling.
	StatusPropagate
	// StatusPending indicates navigation is waiting for scrolling to settle.
	StatusPending
	// StatusCancelled indicates a hook denied the command.
	StatusCancelled
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusPropagate:
		return "propagate"
	case StatusPending:
		return "pending"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling a command.
type Result struct {
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for logs.
	Message string
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Propagate reports whether the host should also handle the input.
func (r Result) Propagate() bool {
	return r.Status == StatusPropagate || r.Status == StatusCancelled
}

// WithMessage returns a copy of the result with a message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// Success returns a handled result.
func Success() Result {
	return Result{Status: StatusOK}
}

// NoOp returns a consumed result without effect.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Propagate returns a result that hands the input back to the host.
func Propagate() Result {
	return Result{Status: StatusPropagate}
}

// Pending returns a result for navigation deferred until scrolling settles.
func Pending() Result {
	return Result{Status: StatusPending}
}

// Cancelled returns a result for a command denied by a hook.
func Cancelled(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// Error returns an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf returns an error result with a formatted error.
func Errorf(format string, args ...any) Result {
	if len(args) == 0 {
		return Result{Status: StatusError, Error: errors.New(format)}
	}
	return Result{Status: StatusError, Error: fmt.Errorf(format, args...)}
}
