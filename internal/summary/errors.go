package summary

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by summarization clients.
var (
	// ErrUpstream is returned when the summarization API call fails for a
	// non-timeout reason. The request boundary maps it to 502.
	ErrUpstream = errors.New("summarization request failed")

	// ErrAuthFailed is returned when the upstream rejects the configured
	// API key (HTTP 401).
	ErrAuthFailed = fmt.Errorf("%w: authentication failed", ErrUpstream)

	// ErrRateLimited is returned when the upstream reports rate limiting
	// (HTTP 429).
	ErrRateLimited = fmt.Errorf("%w: rate limit exceeded", ErrUpstream)

	// ErrServerError is returned when the upstream reports a server-side
	// failure (HTTP 5xx).
	ErrServerError = fmt.Errorf("%w: upstream server error", ErrUpstream)

	// ErrNetwork is returned when the request never yielded an HTTP
	// response. Unlike status-mapped errors, network errors are retried.
	ErrNetwork = fmt.Errorf("%w: network error", ErrUpstream)

	// ErrUpstreamTimeout is returned when a summarization request exceeds
	// the configured timeout. The request boundary maps it to 504.
	ErrUpstreamTimeout = errors.New("summarization request timed out")
)

// TimeoutError reports that a request to the named service exceeded the
// configured timeout. It wraps ErrUpstreamTimeout for errors.Is checks.
type TimeoutError struct {
	Service string
	Timeout time.Duration
}

// Error implements the error interface for TimeoutError.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.Service, e.Timeout)
}

// Unwrap returns ErrUpstreamTimeout to support errors.Is.
func (e *TimeoutError) Unwrap() error {
	return ErrUpstreamTimeout
}

// UpstreamError carries the service name and underlying cause of a failed
// upstream call. It wraps one of the sentinel errors above.
type UpstreamError struct {
	Service string
	Cause   string
	Err     error
}

// Error implements the error interface for UpstreamError.
func (e *UpstreamError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("%v (%s): %s", e.Err, e.Service, e.Cause)
	}
	return fmt.Sprintf("%v (%s)", e.Err, e.Service)
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsSuppressible reports whether the error is one of the summarization
// transport conditions that the client absorbs rather than propagates.
func IsSuppressible(err error) bool {
	return errors.Is(err, ErrUpstream) || errors.Is(err, ErrUpstreamTimeout)
}
