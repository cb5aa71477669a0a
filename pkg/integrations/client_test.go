package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/cattree/pkg/errors"
	"github.com/matzehuels/cattree/pkg/httputil"
)

var fastRetry = &httputil.Policy{Attempts: 3, Delay: time.Millisecond}

func newTestClient(t *testing.T, h http.HandlerFunc, headers map[string]string) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/api", Options{
		Headers:    headers,
		Retry:      fastRetry,
		HTTPClient: server.Client(),
	})
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://example.com", Options{Headers: map[string]string{"Authorization": "Bearer token"}})

	assert.NotNil(t, client.http)
	assert.Equal(t, "Bearer token", client.headers["Authorization"])
	assert.Nil(t, client.limiter, "no rate limit by default")
	assert.Equal(t, httputil.DefaultPolicy, client.retry)

	limited := NewClient("http://example.com", Options{RateLimit: 5})
	require.NotNil(t, limited.limiter)
	assert.Equal(t, 1, limited.limiter.Burst())
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/categories", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}, nil)

	var resp response
	err := client.Get(context.Background(), "/categories", map[string][]string{"page": {"2"}}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Message)
}

func TestClientHeaders(t *testing.T) {
	var got http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}, map[string]string{"Authorization": "Bearer token", "X-Override": "default"})

	err := client.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "x",
		Headers: map[string]string{"X-Override": "overridden"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer token", got.Get("Authorization"))
	assert.Equal(t, "overridden", got.Get("X-Override"))
	assert.NotEmpty(t, got.Get(HeaderRequestID))
}

func TestClientPostSendsJSONAndIdempotencyKey(t *testing.T) {
	var body map[string]string
	var key, contentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get(HeaderIdempotencyKey)
		contentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"success"}`))
	}, nil)

	var out map[string]string
	require.NoError(t, client.Post(context.Background(), "/categories", map[string]string{"name": "Books"}, &out))
	assert.Equal(t, "Books", body["name"])
	assert.NotEmpty(t, key, "Idempotency-Key")
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "success", out["status"])
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode errs.Code
		wantMsg  string
		sentinel error
	}{
		{"NotFound", http.StatusNotFound, `{"status":"error","message":"Category not found"}`, errs.ErrCodeNotFound, "Category not found", ErrNotFound},
		{"Unauthorized", http.StatusUnauthorized, ``, errs.ErrCodeUnauthorized, "Unauthorized", nil},
		{"Forbidden", http.StatusForbidden, `{"error":"nope"}`, errs.ErrCodeForbidden, "nope", nil},
		{"BadRequest", http.StatusBadRequest, `{"message":"Name is required"}`, errs.ErrCodeInvalidInput, "Name is required", ErrRejected},
		{"Conflict", http.StatusConflict, `not json`, errs.ErrCodeInvalidInput, "Conflict", ErrRejected},
		{"ServerError", http.StatusInternalServerError, ``, errs.ErrCodeNetwork, "Internal Server Error", ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, nil)

			err := client.Get(context.Background(), "/x", nil, nil)
			require.Error(t, err)
			require.Equal(t, tt.wantCode, errs.GetCode(err))
			assert.Equal(t, tt.wantMsg, errs.UserMessage(err))
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			assert.False(t, httputil.IsRetryable(err), "returned errors carry no retry wrapper")
		})
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}, nil)

	require.NoError(t, client.Get(context.Background(), "/x", nil, &map[string]any{}))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	require.NoError(t, client.Get(context.Background(), "/x", nil, nil))
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientRateLimitExhausted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	err := client.Get(context.Background(), "/x", nil, nil)
	require.Equal(t, errs.ErrCodeRateLimited, errs.GetCode(err))
	var rl *errs.RateLimitedError
	assert.ErrorAs(t, err, &rl)
}

func TestClientDoesNotRetryPlainPost(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, nil)

	err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "/x"}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}, nil)

	_ = client.Put(context.Background(), "/x", map[string]string{}, nil)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.Get(ctx, "/slow", nil, nil)
	assert.Equal(t, errs.ErrCodeTimeout, errs.GetCode(err), "err %v", err)
}

func TestClientNetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", Options{Retry: &httputil.Policy{Attempts: 1}})

	err := client.Get(context.Background(), "/x", nil, nil)
	assert.Equal(t, errs.ErrCodeNetwork, errs.GetCode(err))
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClientDecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"broken`))
	}, nil)

	var out map[string]any
	assert.Error(t, client.Get(context.Background(), "/x", nil, &out))
}
