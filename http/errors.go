// Package http posts JSON payloads to event receivers, retrying transient
// failures.
package http

import (
	"errors"
	"fmt"
)

// Sentinel errors for delivery failures.
var (
	// ErrRejected indicates the receiver refused the payload (4xx).
	ErrRejected = errors.New("payload rejected")

	// ErrRateLimited indicates the receiver asked us to slow down.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServerError indicates a server-side error occurred.
	ErrServerError = errors.New("server error")
)

// StatusError reports a non-success response from a receiver.
type StatusError struct {
	// Service names the receiver (e.g., "webhook").
	Service string

	// StatusCode is the HTTP status code returned.
	StatusCode int

	// Message is the error message from the response body, if any.
	Message string

	// URL is the address that was called.
	URL string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d from %s: %s", e.Service, e.StatusCode, e.URL, e.Message)
}

// Unwrap returns the sentinel matching the status code.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == 429:
		return ErrRateLimited
	case e.StatusCode >= 500:
		return ErrServerError
	default:
		return ErrRejected
	}
}

// IsRetryable reports whether the error is transient and should be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServerError)
}
