package companieshouse

import (
	"errors"
	"fmt"
)

// AuthError indicates a missing or rejected API key (HTTP 401/403). It is
// fatal to the whole operation and is never retried.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("companies house auth failed (HTTP %d): %s", e.StatusCode, e.Message)
}

// RateLimitError indicates the registry rejected a request with HTTP 429
// after the single retry was exhausted.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return "companies house rate limit exceeded: " + e.Message
}

// NotFoundError indicates the requested resource does not exist, or a search
// matched nothing.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// TransportError wraps a network-level failure or timeout.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the registry returned a body that could
// not be decoded into the expected shape.
type MalformedResponseError struct {
	Endpoint string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// APIError represents any other non-2xx response from the registry.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

// IsRateLimit reports whether err is a RateLimitError.
func IsRateLimit(err error) bool {
	var e *RateLimitError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

// IsMalformed reports whether err is a MalformedResponseError.
func IsMalformed(err error) bool {
	var e *MalformedResponseError
	return errors.As(err, &e)
}
