package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoHost indicates Options.Host was not set.
	ErrNoHost = errors.New("no accessibility host")

	// ErrShutdown indicates the application has been shut down.
	ErrShutdown = errors.New("application shut down")

	// ErrFlowNotFound indicates no guided flow has the requested name.
	ErrFlowNotFound = errors.New("guided flow not found")
)

// InitError represents an error during component initialization.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
