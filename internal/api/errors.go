package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the backend rejected the token or the call
	// required auth with no token present. The owning view must force a
	// logout and send the user to login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers 404s, e.g. an invalid table short code.
	ErrNotFound = errors.New("not found")
)

// APIError is any other non-2xx backend response. Detail carries the
// backend's message verbatim for in-place display.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// NetworkError wraps a transport failure. The client never retries on
// its own; the user retries the triggering action.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a client-side required-field check that failed
// before anything was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
