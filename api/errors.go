package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrMissingBaseURL indicates a client was constructed without a base URL
	ErrMissingBaseURL = errors.New("api: base URL is required")
	// ErrUnknownRequestMode indicates an unrecognized request mode
	ErrUnknownRequestMode = errors.New("api: unknown request mode")
	// ErrDuplicateKey indicates a duplicate parameter key in a JSON body
	ErrDuplicateKey = errors.New("api: duplicate parameter key in json body")
	// ErrNoPage indicates a pagination relation the response did not carry
	ErrNoPage = errors.New("api: page link not present")
)

// Error is the failure produced by a non-2xx response. It carries the status
// code, the fully qualified URL that was requested, and the literal response
// body so callers can inspect provider-specific error payloads.
type Error struct {
	Status int
	URL    string
	Body   string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("api request to %s failed: status %d: %s", e.URL, e.Status, e.Body)
}

// IsNotFound checks if the error indicates a missing resource
func (e *Error) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsRateLimited checks if the error indicates request throttling
func (e *Error) IsRateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

// DecodeError is the failure produced when a 2xx response body does not match
// the shape the caller asked for. It is distinct from Error so callers can
// tell a server rejection from a succeeded call with a surprising payload.
type DecodeError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("api response from %s could not be decoded: %v", e.URL, e.Err)
}

// Unwrap returns the underlying decoder error
func (e *DecodeError) Unwrap() error {
	return e.Err
}
