package stream

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNoClient indicates a connection was built without an API client
	ErrNoClient = errors.New("stream: api client is required")
	// ErrNoParser indicates a connection was built without a message parser
	ErrNoParser = errors.New("stream: message parser is required")
	// ErrNoMatcher indicates a connection was built without a reply matcher
	ErrNoMatcher = errors.New("stream: reply matcher is required")
	// ErrNotOpen indicates a send on a connection that is not open
	ErrNotOpen = errors.New("stream: connection is not open")
	// ErrConsumed indicates a connect on a connection that already ran a cycle
	ErrConsumed = errors.New("stream: connection cycle already consumed")
	// ErrClosed indicates the connection completed while a wait was pending
	ErrClosed = errors.New("stream: connection closed")
)

// FaultError is the failure that terminated the receive loop. It reaches
// every subscriber through Err and fails every pending Request.
type FaultError struct {
	Err error
}

// Error implements the error interface
func (e *FaultError) Error() string {
	return fmt.Sprintf("stream fault: %v", e.Err)
}

// Unwrap returns the underlying loop error
func (e *FaultError) Unwrap() error {
	return e.Err
}
