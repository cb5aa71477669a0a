package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. The CLI installs
// them under --verbose.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks logging to l (log.Default when nil).
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

// Install registers h as dashboard, cache and HTTP hooks.
func (h *LogHooks) Install() {
	SetDashboardHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnFetch(_ context.Context, pages, categories int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("fetch failed", "pages", pages, "duration", d, "error", err)
		return
	}
	h.Logger.Debug("fetched categories", "pages", pages, "roots", categories, "duration", d)
}

func (h *LogHooks) OnLayout(_ context.Context, direction string, nodes int, d time.Duration) {
	h.Logger.Debug("computed layout", "direction", direction, "nodes", nodes, "duration", d)
}

func (h *LogHooks) OnRender(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "format", format, "error", err)
		return
	}
	h.Logger.Debug("rendered", "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("request failed", "method", method, "host", host, "path", path, "error", err)
}

var (
	_ DashboardHooks = (*LogHooks)(nil)
	_ CacheHooks     = (*LogHooks)(nil)
	_ HTTPHooks      = (*LogHooks)(nil)
)
