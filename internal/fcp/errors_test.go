package fcp_test

// Coverage Notes:
// - Exercises the public error surface: message formats the command
//   layer prints, broad vs narrow catching, and cause unwrapping.

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-fcp/internal/fcp"
)

func TestServerErrorMessage(t *testing.T) {
	t.Parallel()

	err := &fcp.ServerError{StatusCode: 503}
	msg := err.Error()

	if !strings.Contains(msg, "Server error") {
		t.Errorf("message = %q, want it to contain %q", msg, "Server error")
	}
	if !strings.Contains(msg, "HTTP 503") {
		t.Errorf("message = %q, want it to contain %q", msg, "HTTP 503")
	}
}

func TestRateLimitErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("zero retry-after omits the hint", func(t *testing.T) {
		t.Parallel()

		msg := (&fcp.RateLimitError{RetryAfter: 0}).Error()
		if strings.Contains(msg, "retry after") {
			t.Errorf("message = %q, want no retry-after hint when unset", msg)
		}
	})

	t.Run("positive retry-after is included", func(t *testing.T) {
		t.Parallel()

		msg := (&fcp.RateLimitError{RetryAfter: 60}).Error()
		if !strings.Contains(msg, "retry after 60s") {
			t.Errorf("message = %q, want it to contain %q", msg, "retry after 60s")
		}
	})
}

func TestResponseTooLargeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int64
		maxSize int64
		want    string
	}{
		{"twelve over ten", 12 << 20, 10 << 20, "12.0 MB exceeds limit of 10 MB"},
		{"fractional size", 15_728_640 + 524_288, 10 << 20, "15.5 MB exceeds limit of 10 MB"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := &fcp.ResponseTooLargeError{Size: tt.size, MaxSize: tt.maxSize}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("message = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestConnectionErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")
	err := &fcp.ConnectionError{Path: "/health/", Retries: 2, Cause: cause}
	msg := err.Error()

	for _, want := range []string{"/health/", "after 2 retries", "connection refused"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message = %q, want it to contain %q", msg, want)
		}
	}
	if !errors.Is(err, cause) {
		t.Error("ConnectionError must unwrap to its cause")
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	t.Parallel()

	err := &fcp.NotFoundError{Resource: "http://localhost:8080/foods/xyz"}
	if !strings.Contains(err.Error(), "/foods/xyz") {
		t.Errorf("message = %q, want it to contain the resource", err.Error())
	}
}

func TestAuthErrorMessage(t *testing.T) {
	t.Parallel()

	err := &fcp.AuthError{StatusCode: 401}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("message = %q, want it to contain the status code", err.Error())
	}
}

func TestIsClientError(t *testing.T) {
	t.Parallel()

	clientErrors := []error{
		&fcp.ConnectionError{Path: "/x", Retries: 1, Cause: errors.New("boom")},
		&fcp.ServerError{StatusCode: 500},
		&fcp.NotFoundError{Resource: "/x"},
		&fcp.AuthError{StatusCode: 403},
		&fcp.RateLimitError{},
		&fcp.ResponseTooLargeError{Size: 1, MaxSize: 1},
		&fcp.HTTPError{StatusCode: 400},
		&fcp.UnexpectedError{Method: "GET", Path: "/x"},
	}

	for _, err := range clientErrors {
		if !fcp.IsClientError(err) {
			t.Errorf("IsClientError(%T) = false, want true", err)
		}
		// Wrapped errors are still caught broadly.
		wrapped := fmt.Errorf("listing pantry: %w", err)
		if !fcp.IsClientError(wrapped) {
			t.Errorf("IsClientError(wrapped %T) = false, want true", err)
		}
	}

	if fcp.IsClientError(errors.New("plain")) {
		t.Error("IsClientError(plain error) = true, want false")
	}
	if fcp.IsClientError(nil) {
		t.Error("IsClientError(nil) = true, want false")
	}
}

func TestNarrowCatch(t *testing.T) {
	t.Parallel()

	var err error = fmt.Errorf("fetching food: %w", &fcp.ServerError{StatusCode: 502})

	var serverErr *fcp.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatal("errors.As failed to catch *ServerError through wrapping")
	}
	if serverErr.StatusCode != 502 {
		t.Errorf("StatusCode = %d, want 502", serverErr.StatusCode)
	}

	var authErr *fcp.AuthError
	if errors.As(err, &authErr) {
		t.Error("errors.As must not match a different taxonomy member")
	}
}
