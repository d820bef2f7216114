package fcp

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ClientError is implemented by every error type returned by the FCP
// client. Callers can catch broadly with IsClientError / errors.As on
// this interface, or narrowly with errors.As on a concrete type.
//
// The client never surfaces a raw transport error: transport failures
// are wrapped in *ConnectionError once the retry budget is exhausted.
type ClientError interface {
	error
	clientError()
}

// IsClientError reports whether err (or anything it wraps) is one of
// the FCP client error types.
func IsClientError(err error) bool {
	var ce ClientError
	return errors.As(err, &ce)
}

// ConnectionError indicates a transport-level failure (DNS, TCP,
// timeout) that persisted through the whole retry budget. Cause holds
// the last underlying error and is exposed via Unwrap.
type ConnectionError struct {
	Path    string
	Retries int
	Cause   error
}

func (e *ConnectionError) clientError() {}

func (e *ConnectionError) Error() string {
	if isTimeout(e.Cause) {
		return fmt.Sprintf("request to %s timed out after %d retries: %v", e.Path, e.Retries, e.Cause)
	}
	return fmt.Sprintf("request to %s failed after %d retries: %v", e.Path, e.Retries, e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// isTimeout reports whether err is a timeout at any level of wrapping.
func isTimeout(err error) bool {
	if errors.Is(err, errAttemptTimeout) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ServerError indicates an HTTP >=500 response.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) clientError() {}

func (e *ServerError) Error() string {
	return fmt.Sprintf("Server error (HTTP %d)", e.StatusCode)
}

// NotFoundError indicates an HTTP 404 response. Resource is the URL
// that was requested.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) clientError() {}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Resource)
}

// AuthError indicates an HTTP 401 or 403 response.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) clientError() {}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (HTTP %d)", e.StatusCode)
}

// RateLimitError indicates an HTTP 429 response. RetryAfter is the
// Retry-After header value in seconds, or 0 when the header was absent
// or not a valid non-negative integer.
type RateLimitError struct {
	RetryAfter int
}

func (e *RateLimitError) clientError() {}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded, retry after %ds", e.RetryAfter)
	}
	return "rate limit exceeded"
}

// ResponseTooLargeError indicates a response body exceeding the
// configured size cap. Size and MaxSize are in bytes.
type ResponseTooLargeError struct {
	Size    int64
	MaxSize int64
}

func (e *ResponseTooLargeError) clientError() {}

func (e *ResponseTooLargeError) Error() string {
	return fmt.Sprintf("response size %.1f MB exceeds limit of %d MB",
		float64(e.Size)/(1<<20), e.MaxSize/(1<<20))
}

// HTTPError is the pass-through for client-error statuses that have no
// dedicated type (400, 409, 422, ...). Body holds a truncated copy of
// the response body for user-facing messages.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) clientError() {}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// UnexpectedError signals that the retry loop exited without a result
// or a captured error. This is an invariant violation, not a normal
// failure path: a correct request loop always returns or records the
// error that stopped it.
type UnexpectedError struct {
	Method string
	Path   string
}

func (e *UnexpectedError) clientError() {}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected client state: no response and no error for %s %s", e.Method, e.Path)
}
