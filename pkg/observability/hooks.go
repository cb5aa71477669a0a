// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about dashboard views, cache operations, and backend calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The CLI installs [LogHooks] when --verbose is set; everything else runs
// with the no-op hooks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDashboardHooks(&myDashboardHooks{})
//	    observability.SetHTTPHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Dashboard().OnFetch(ctx, pages, count, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Dashboard Hooks
// =============================================================================

// DashboardHooks receives events from view construction.
type DashboardHooks interface {
	// OnFetch records a completed fetch of one or more list pages.
	OnFetch(ctx context.Context, pages, categories int, duration time.Duration, err error)

	// OnLayout records a completed graph layout.
	OnLayout(ctx context.Context, direction string, nodeCount int, duration time.Duration)

	// OnRender records a completed render to an output format.
	OnRender(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDashboardHooks is a no-op implementation of DashboardHooks.
type NoopDashboardHooks struct{}

func (NoopDashboardHooks) OnFetch(context.Context, int, int, time.Duration, error)     {}
func (NoopDashboardHooks) OnLayout(context.Context, string, int, time.Duration)        {}
func (NoopDashboardHooks) OnRender(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dashboardHooks DashboardHooks = NoopDashboardHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetDashboardHooks registers custom dashboard hooks.
// This should be called once at application startup before any views are built.
func SetDashboardHooks(h DashboardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dashboardHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Dashboard returns the registered dashboard hooks.
func Dashboard() DashboardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dashboardHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dashboardHooks = NoopDashboardHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
