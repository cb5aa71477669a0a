package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

// Header names set by [Client].
const (
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
)

var (
	// ErrNotFound is returned when a resource doesn't exist on the backend.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrRejected is returned when the backend refuses a request (4xx other
	// than 401, 403, 404 and 429).
	ErrRejected = errors.New("request rejected")
)

// NewHTTPClient creates an HTTP client with the given timeout.
// A non-positive timeout selects the 10 second default.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = httpTimeout
	}
	return &http.Client{Timeout: timeout}
}

// JoinURL joins a base URL and a path, keeping exactly one slash between
// them, and appends query when non-empty.
func JoinURL(base, path string, query url.Values) string {
	u := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// parseRetryAfter reads a Retry-After header given in seconds or as an
// HTTP date. It returns 0 when the header is absent or unparseable.
func parseRetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}
