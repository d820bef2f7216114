// Package fcp implements the HTTP client for the FCP meal-tracking
// API. The heart of the package is Client.Request: a single request
// primitive with bounded retry, exponential backoff with jitter,
// Retry-After honoring, response-size enforcement, and a typed error
// taxonomy (errors.go). The domain endpoint wrappers (endpoints.go)
// are thin adapters over Request.
package fcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default configuration values.
const (
	DefaultTimeout           = 30 * time.Second
	DefaultMaxRetries        = 3
	DefaultRetryDelay        = 1 * time.Second
	DefaultBackoffMultiplier = 2.0

	// DefaultMaxResponseSize caps response bodies at 10 MiB.
	DefaultMaxResponseSize = 10 << 20
)

// Connection pool limits for the lazily created transport.
const (
	maxConnsPerHost = 10
	maxIdleConns    = 5
	idleConnTimeout = 30 * time.Second
)

// Headers sent on every request.
const (
	userAgent        = "go-fcp/1.0"
	clientTypeHeader = "X-FCP-Client"
	clientTypeValue  = "cli"
)

// jitterFraction is the upper bound of the uniform random addition to
// a backoff wait: wait = delay + uniform(0, jitterFraction) * delay.
// Jitter is additive only, never subtracted.
const jitterFraction = 0.1

// errAttemptTimeout marks a per-attempt timeout so ConnectionError can
// report "timed out" even after wrapping.
var errAttemptTimeout = errors.New("request timeout")

// Config holds the immutable configuration of a Client. Set once at
// construction, read on every request.
//
// Invalid values are normalized:
//   - MaxRetries < 0 becomes 0 (single attempt)
//   - RetryDelay <= 0 becomes DefaultRetryDelay
//   - BackoffMultiplier <= 0 becomes DefaultBackoffMultiplier
//   - Timeout <= 0 becomes DefaultTimeout
//   - MaxResponseSize < 0 becomes 0 (cap disabled)
type Config struct {
	// BaseURL is the server root; a trailing slash is stripped.
	BaseURL string

	// UserID identifies the acting user, sent as the X-FCP-User header.
	UserID string

	// AuthToken, when set, is sent as a bearer Authorization header.
	AuthToken string

	// Timeout bounds each individual attempt, not the whole retry
	// sequence.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt, so
	// the engine performs at most MaxRetries+1 attempts.
	MaxRetries int

	// RetryDelay is the backoff delay before the first retry. It grows
	// by BackoffMultiplier after every wait, with no upper bound.
	RetryDelay time.Duration

	// BackoffMultiplier scales the delay after each retry wait.
	BackoffMultiplier float64

	// MaxResponseSize is the response body cap in bytes. 0 disables
	// the check.
	MaxResponseSize int64

	// AutoClose tears the connection handle down after every logical
	// request instead of keeping it for reuse.
	AutoClose bool

	// RateLimit, when > 0, enables a client-side token bucket of that
	// many requests per second. RateBurst defaults to 1.
	RateLimit float64
	RateBurst int

	// Logger receives retry warnings. Nil discards them.
	Logger *slog.Logger
}

// normalize ensures all Config fields have valid values.
func (c *Config) normalize() {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.BackoffMultiplier <= 0 {
		c.BackoffMultiplier = DefaultBackoffMultiplier
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxResponseSize < 0 {
		c.MaxResponseSize = 0
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 1
	}
}

// DefaultConfig returns a Config with the documented defaults for the
// given server. Callers override individual fields before New.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:           baseURL,
		Timeout:           DefaultTimeout,
		MaxRetries:        DefaultMaxRetries,
		RetryDelay:        DefaultRetryDelay,
		BackoffMultiplier: DefaultBackoffMultiplier,
		MaxResponseSize:   DefaultMaxResponseSize,
	}
}

// Client is a resilient HTTP client for the FCP API. It owns at most
// one pooled connection handle, created lazily on first use and
// recreated after Close. Safe for concurrent use; retries for a single
// logical request are strictly sequential.
type Client struct {
	cfg     Config
	baseURL string
	logger  *slog.Logger
	limiter *rate.Limiter

	mu   sync.Mutex
	conn *http.Client

	// Replaced in tests to observe waits without sleeping.
	sleep     func(ctx context.Context, d time.Duration) error
	randFloat func() float64
}

// New creates a Client from cfg. Invalid fields are normalized (see
// Config documentation).
func New(cfg Config) *Client {
	cfg.normalize()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	return &Client{
		cfg:       cfg,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		logger:    logger,
		limiter:   limiter,
		sleep:     sleepContext,
		randFloat: rand.Float64,
	}
}

// BaseURL returns the normalized server root.
func (c *Client) BaseURL() string { return c.baseURL }

// handle returns the pooled connection handle, creating it if absent
// or previously closed. Redundant creation under concurrent first use
// is prevented by the mutex; a redundant handle would be harmless
// anyway since the transport is stateless until connections are made.
func (c *Client) handle() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		c.conn = &http.Client{
			Transport: &http.Transport{
				MaxConnsPerHost:     maxConnsPerHost,
				MaxIdleConnsPerHost: maxIdleConns,
				IdleConnTimeout:     idleConnTimeout,
				ForceAttemptHTTP2:   true,
			},
		}
	}
	return c.conn
}

// Close tears down the connection handle and its idle connections.
// Idempotent; the next request recreates the handle.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		if transport, ok := c.conn.Transport.(*http.Transport); ok {
			transport.CloseIdleConnections()
		}
		c.conn = nil
	}
}

// Request executes method against path (appended to the base URL) with
// an optional JSON-serializable body and optional query parameters,
// returning the raw JSON response body.
//
// The engine performs up to MaxRetries+1 sequential attempts:
//   - 429 responses wait the Retry-After header value when it is a
//     valid non-negative integer, otherwise the current backoff delay
//     (unjittered), then retry.
//   - 502/503/504 responses wait the current backoff delay plus
//     jitter, then retry.
//   - Transport errors and per-attempt timeouts wait the current
//     backoff delay plus jitter, then retry; once the budget is
//     exhausted the last error is wrapped in *ConnectionError.
//   - Any other >=400 status (and a retryable status on the final
//     attempt) is classified into the error taxonomy immediately.
//
// After every wait the delay is multiplied by BackoffMultiplier. A
// successful response larger than MaxResponseSize raises
// *ResponseTooLargeError without retrying. Cancelling ctx aborts both
// in-flight attempts and backoff sleeps; the connection handle stays
// valid for reuse.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	if c.cfg.AutoClose {
		defer c.Close()
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		payload = encoded
	}

	attempts := c.cfg.MaxRetries + 1
	delay := c.cfg.RetryDelay
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		raw, status, header, err := c.attempt(ctx, method, requestURL, payload)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if attempt < attempts-1 {
				wait := c.addJitter(delay)
				c.logger.Warn("request failed, retrying",
					"path", path, "error", err,
					"attempt", attempt+1, "max_attempts", attempts, "wait", wait)
				if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
					return nil, sleepErr
				}
				delay = c.nextDelay(delay)
			}
			continue
		}

		if status >= 400 {
			if retryableStatus(status) && attempt < attempts-1 {
				var wait time.Duration
				if status == http.StatusTooManyRequests {
					if retryAfter, ok := parseRetryAfter(header.Get("Retry-After")); ok {
						wait = retryAfter
					} else {
						wait = delay
					}
				} else {
					wait = c.addJitter(delay)
				}
				c.logger.Warn("retryable status, backing off",
					"path", path, "status", status,
					"attempt", attempt+1, "max_attempts", attempts, "wait", wait)
				if sleepErr := c.sleep(ctx, wait); sleepErr != nil {
					return nil, sleepErr
				}
				delay = c.nextDelay(delay)
				continue
			}
			return nil, classifyStatus(status, requestURL, header.Get("Retry-After"), raw)
		}

		if c.cfg.MaxResponseSize > 0 && int64(len(raw)) > c.cfg.MaxResponseSize {
			return nil, &ResponseTooLargeError{Size: int64(len(raw)), MaxSize: c.cfg.MaxResponseSize}
		}
		return json.RawMessage(raw), nil
	}

	if lastErr != nil {
		return nil, &ConnectionError{Path: path, Retries: c.cfg.MaxRetries, Cause: lastErr}
	}

	// The loop above either returns or records lastErr on every path,
	// so this is unreachable under normal operation. Kept as a safety
	// net rather than a silent nil return.
	return nil, &UnexpectedError{Method: method, Path: path}
}

// attempt performs a single HTTP call bounded by the per-request
// timeout and reads the full response body.
func (c *Client) attempt(ctx context.Context, method, requestURL string, payload []byte) ([]byte, int, http.Header, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, requestURL, bodyReader)
	if err != nil {
		return nil, 0, nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(clientTypeHeader, clientTypeValue)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.UserID != "" {
		req.Header.Set("X-FCP-User", c.cfg.UserID)
	}
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}

	resp, err := c.handle().Do(req)
	if err != nil {
		if attemptCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, 0, nil, fmt.Errorf("%w after %s: %v", errAttemptTimeout, c.cfg.Timeout, err)
		}
		return nil, 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("reading response body: %w", err)
	}
	return raw, resp.StatusCode, resp.Header, nil
}

// addJitter returns d plus a uniform random addition of up to 10% of d.
func (c *Client) addJitter(d time.Duration) time.Duration {
	return d + time.Duration(c.randFloat()*jitterFraction*float64(d))
}

// nextDelay grows the backoff delay. Growth is multiplicative and
// unbounded across the retry budget.
func (c *Client) nextDelay(d time.Duration) time.Duration {
	return time.Duration(float64(d) * c.cfg.BackoffMultiplier)
}

// retryableStatus reports whether the engine retries rather than
// failing immediately for the given status.
func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// parseRetryAfter parses a Retry-After header value as a non-negative
// integer number of seconds.
func parseRetryAfter(value string) (time.Duration, bool) {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// classifyStatus maps a non-retryable (or retries-exhausted) status
// code to its error taxonomy member.
func classifyStatus(status int, resource, retryAfter string, body []byte) error {
	switch {
	case status == http.StatusNotFound:
		return &NotFoundError{Resource: resource}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{StatusCode: status}
	case status == http.StatusTooManyRequests:
		seconds := 0
		if n, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && n >= 0 {
			seconds = n
		}
		return &RateLimitError{RetryAfter: seconds}
	case status >= 500:
		return &ServerError{StatusCode: status}
	default:
		return &HTTPError{StatusCode: status, Body: truncateBody(body)}
	}
}

// truncateBody trims a response body for inclusion in an error message.
func truncateBody(body []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

// sleepContext waits for d or until ctx is cancelled, whichever comes
// first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
