package client

import (
	"errors"
	"fmt"
)

// The client surfaces every failure as one of the typed errors below.
// Nothing is retried or suppressed internally; callers branch on error
// kind with errors.As or the Is* helpers instead of string matching.

// AuthenticationError is returned when the backend rejects the credential
// (HTTP 401).
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// RateLimitError is returned when the backend reports HTTP 429.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string { return e.Message }

// ValidationError is returned for HTTP 400 and 422 responses. Detail holds
// the structured error payload when the backend provides one.
type ValidationError struct {
	Message string
	Detail  map[string]interface{}
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError is returned when a referenced resource does not exist.
// Resource names the kind ("memory", "chunk", ...).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// APIError covers every other non-success status. ErrorBody carries the
// parsed error payload, or an empty map when the body was not JSON.
type APIError struct {
	StatusCode int
	Message    string
	ErrorBody  map[string]interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// ClientError covers failures that happen before a structured API response
// exists: network errors, timeouts, and malformed calls. Timeout is set when
// the configured per-call timeout elapsed.
type ClientError struct {
	Message string
	Timeout bool
	Err     error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a client-side error caused by the
// per-call timeout elapsing.
func IsTimeout(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Timeout
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRateLimited reports whether err is a RateLimitError.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// notFoundOr converts a 404 APIError into a NotFoundError for the given
// resource, passing every other error through unchanged.
func notFoundOr(err error, resource, id string) error {
	var ae *APIError
	if errors.As(err, &ae) && ae.StatusCode == 404 {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
