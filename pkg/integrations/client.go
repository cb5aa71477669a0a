package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	errs "github.com/matzehuels/cattree/pkg/errors"
	"github.com/matzehuels/cattree/pkg/httputil"
	"github.com/matzehuels/cattree/pkg/observability"
)

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Options configures a [Client]. The zero value is usable.
type Options struct {
	// Headers are applied to all requests made through the client.
	Headers map[string]string
	// Timeout is the per-attempt HTTP timeout (default 10s).
	Timeout time.Duration
	// RateLimit caps outgoing requests per second; 0 disables limiting.
	RateLimit float64
	// Burst is the limiter burst size (default 1).
	Burst int
	// Retry overrides [httputil.DefaultPolicy].
	Retry *httputil.Policy
	// HTTPClient replaces the default client (tests).
	HTTPClient *http.Client
}

// Client provides shared HTTP functionality for backend API clients.
// It handles JSON encoding, retry logic, rate limiting, request ids and
// status-code mapping.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string
	limiter *rate.Limiter
	retry   httputil.Policy
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts Options) *Client {
	c := &Client{
		http:    opts.HTTPClient,
		baseURL: baseURL,
		headers: opts.Headers,
		retry:   httputil.DefaultPolicy,
	}
	if c.http == nil {
		c.http = NewHTTPClient(opts.Timeout)
	}
	if opts.Retry != nil {
		c.retry = *opts.Retry
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.Burst, 1))
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any               // JSON-encoded when non-nil
	Headers map[string]string // override client defaults
}

// idempotent reports whether the request may be retried safely. POST is
// retried only when it carries an idempotency key.
func (r Request) idempotent() bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	case http.MethodPost:
		return r.Headers[HeaderIdempotencyKey] != ""
	}
	return false
}

// Do performs the request and JSON-decodes a successful response into out
// (ignored when nil). Transient failures are retried for idempotent
// requests.
//
// Errors carry a code from pkg/errors:
//   - NOT_FOUND (wrapping [ErrNotFound]) for 404
//   - UNAUTHORIZED, FORBIDDEN for 401, 403
//   - RATE_LIMITED for 429
//   - INVALID_INPUT (wrapping [ErrRejected]) for other 4xx, with the
//     backend's message when it sent one
//   - NETWORK_ERROR (wrapping [ErrNetwork]) for 5xx and transport failures
//   - TIMEOUT when the context deadline expires
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var payload []byte
	if req.Body != nil {
		var err error
		if payload, err = json.Marshal(req.Body); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "encode request body")
		}
	}

	attempt := func() error { return c.do(ctx, req, payload, out) }
	var err error
	if req.idempotent() {
		err = httputil.Retry(ctx, c.retry, attempt)
	} else {
		err = attempt()
	}
	return classify(err)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post performs a POST request with a fresh idempotency key, so it can be
// retried safely.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{
		Method:  http.MethodPost,
		Path:    path,
		Body:    body,
		Headers: map[string]string{HeaderIdempotencyKey: uuid.NewString()},
	}, out)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *Client) do(ctx context.Context, r Request, payload []byte, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	target := JoinURL(c.baseURL, r.Path, r.Query)
	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderRequestID, uuid.NewString())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, r.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, r.Method, req.URL.Host, req.URL.Path, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, r.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "decode %s %s response", r.Method, r.Path)
	}
	return nil
}

// errorBody is the subset of the backend envelope used for error messages.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}

	msg := http.StatusText(code)
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb errorBody
	if json.Unmarshal(data, &eb) == nil {
		if eb.Message != "" {
			msg = eb.Message
		} else if eb.Error != "" {
			msg = eb.Error
		}
	}

	switch {
	case code == http.StatusNotFound:
		return errs.Wrap(errs.ErrCodeNotFound, ErrNotFound, "%s", msg)
	case code == http.StatusUnauthorized:
		return errs.New(errs.ErrCodeUnauthorized, "%s", msg)
	case code == http.StatusForbidden:
		return errs.New(errs.ErrCodeForbidden, "%s", msg)
	case code == http.StatusTooManyRequests:
		after := parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
		rl := &errs.RateLimitedError{RetryAfter: int(after / time.Second), Message: msg}
		return &httputil.RetryableError{Err: errs.Wrap(errs.ErrCodeRateLimited, rl, "%s", msg), After: after}
	case code >= 500:
		return &httputil.RetryableError{Err: errs.Wrap(errs.ErrCodeNetwork, fmt.Errorf("%w: status %d", ErrNetwork, code), "%s", msg)}
	default:
		return errs.Wrap(errs.ErrCodeInvalidInput, fmt.Errorf("%w: status %d", ErrRejected, code), "%s", msg)
	}
}

// classify strips retry wrappers and gives context and transport errors a
// code.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var re *httputil.RetryableError
	if errors.As(err, &re) {
		err = re.Err
	}
	if errs.GetCode(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errs.Wrap(errs.ErrCodeTimeout, err, "request timed out")
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, ErrNetwork):
		return errs.Wrap(errs.ErrCodeNetwork, err, "backend unreachable")
	}
	return err
}
