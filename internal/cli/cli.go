package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cattree/pkg/cache"
	"github.com/matzehuels/cattree/pkg/config"
	"github.com/matzehuels/cattree/pkg/dashboard"
	"github.com/matzehuels/cattree/pkg/integrations"
	"github.com/matzehuels/cattree/pkg/integrations/catalog"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cattree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flags.
	configPath string
	baseURL    string
	noCache    bool

	// in answers confirmation prompts.
	in io.Reader
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		in:     os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetInput replaces the reader confirmation prompts read from.
func (c *CLI) SetInput(r io.Reader) {
	c.in = r
}

// =============================================================================
// Session Factory
// =============================================================================

// session bundles what a command needs to talk to the backend.
type session struct {
	cfg    config.Config
	cache  cache.Cache
	runner *dashboard.Runner
}

// Close releases the cache.
func (s *session) Close() error {
	return s.cache.Close()
}

// loadConfig reads the config file and applies the global flags on top.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	if c.noCache {
		cfg.Cache.Backend = cache.BackendNone
	}
	return cfg, cfg.Validate()
}

// open creates a dashboard runner for CLI use. An unavailable cache is
// reported and replaced by a NullCache.
func (c *CLI) open(ctx context.Context) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := cfg.OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "error", err)
		store = cache.NewNullCache()
	}

	api := integrations.NewClient(cfg.BaseURL, cfg.ClientOptions())
	client := catalog.NewClient(api,
		catalog.WithCache(store, cfg.Cache.TTL.Duration),
		catalog.WithLogger(c.Logger))

	return &session{
		cfg:    cfg,
		cache:  store,
		runner: dashboard.NewRunner(client, c.Logger),
	}, nil
}
