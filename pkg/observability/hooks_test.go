package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	d := NoopDashboardHooks{}
	d.OnFetch(ctx, 1, 10, time.Second, nil)
	d.OnLayout(ctx, "TB", 10, time.Millisecond)
	d.OnRender(ctx, "svg", 1024, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "list")
	c.OnCacheMiss(ctx, "list")
	c.OnCacheSet(ctx, "list", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.example.com", "/categories")
	h.OnResponse(ctx, "GET", "api.example.com", "/categories", 200, time.Second)
	h.OnError(ctx, "GET", "api.example.com", "/categories", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	assert.IsType(t, NoopDashboardHooks{}, Dashboard())
	assert.IsType(t, NoopCacheHooks{}, Cache())
	assert.IsType(t, NoopHTTPHooks{}, HTTP())

	customDashboard := &testDashboardHooks{}
	SetDashboardHooks(customDashboard)
	assert.Same(t, customDashboard, Dashboard())

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	assert.Same(t, customCache, Cache())

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	assert.Same(t, customHTTP, HTTP())

	Reset()
	assert.IsType(t, NoopDashboardHooks{}, Dashboard(), "Reset restores the no-op hooks")
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testDashboardHooks{}
	SetDashboardHooks(custom)
	SetDashboardHooks(nil)

	assert.Same(t, custom, Dashboard(), "nil hooks are ignored")
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	NewLogHooks(logger).Install()

	ctx := context.Background()
	HTTP().OnRequest(ctx, "GET", "api.example.com", "/categories")
	Cache().OnCacheHit(ctx, "list")
	Dashboard().OnFetch(ctx, 2, 15, time.Millisecond, nil)
	Dashboard().OnRender(ctx, "svg", 0, 0, errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"request", "/categories", "cache hit", "fetched categories", "render failed", "boom"} {
		assert.Contains(t, out, want)
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))

	h.OnCacheMiss(context.Background(), "list")

	assert.Empty(t, buf.String(), "no output at info level")
}

type testDashboardHooks struct{ NoopDashboardHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
