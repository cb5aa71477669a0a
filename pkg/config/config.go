// Package config loads cattree settings from a TOML or YAML file and the
// environment.
//
// Precedence, lowest first: [Default], the config file, CATTREE_*
// environment variables, then command-line flags (applied by the caller).
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	client := integrations.NewClient(cfg.BaseURL, cfg.ClientOptions())
package config

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cattree/pkg/cache"
	errs "github.com/matzehuels/cattree/pkg/errors"
	"github.com/matzehuels/cattree/pkg/integrations"
	"github.com/matzehuels/cattree/pkg/integrations/catalog"
	"github.com/matzehuels/cattree/pkg/layout"
)

// Environment variables that override file values.
const (
	EnvBaseURL   = "CATTREE_BASE_URL"
	EnvToken     = "CATTREE_TOKEN"
	EnvCache     = "CATTREE_CACHE"
	EnvRedisAddr = "CATTREE_REDIS_ADDR"
	EnvConfig    = "CATTREE_CONFIG"
)

// Defaults.
const (
	DefaultBaseURL    = "http://localhost:5000/api"
	DefaultTimeout    = 10 * time.Second
	DefaultServerAddr = ":8080"
	DefaultRedisAddr  = "localhost:6379"
)

// Duration is a time.Duration that decodes from strings like "30s" in both
// TOML and YAML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler (used by TOML).
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML decodes a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Config holds every setting the CLI and server read.
type Config struct {
	BaseURL   string       `toml:"base_url" yaml:"base_url"`
	Token     string       `toml:"token" yaml:"token"`
	Timeout   Duration     `toml:"timeout" yaml:"timeout"`
	PageLimit int          `toml:"page_limit" yaml:"page_limit"`
	RateLimit float64      `toml:"rate_limit" yaml:"rate_limit"`
	Cache     CacheConfig  `toml:"cache" yaml:"cache"`
	Layout    LayoutConfig `toml:"layout" yaml:"layout"`
	Server    ServerConfig `toml:"server" yaml:"server"`
}

// CacheConfig selects the response cache.
type CacheConfig struct {
	Backend   string   `toml:"backend" yaml:"backend"`
	Dir       string   `toml:"dir" yaml:"dir"`
	TTL       Duration `toml:"ttl" yaml:"ttl"`
	RedisAddr string   `toml:"redis_addr" yaml:"redis_addr"`
	RedisDB   int      `toml:"redis_db" yaml:"redis_db"`
}

// LayoutConfig holds layout defaults.
type LayoutConfig struct {
	Direction string `toml:"direction" yaml:"direction"`
}

// ServerConfig configures `cattree serve`.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   Duration{DefaultTimeout},
		PageLimit: catalog.DefaultLimit,
		Cache: CacheConfig{
			Backend:   cache.BackendFile,
			Dir:       defaultCacheDir(),
			TTL:       Duration{cache.TTLList},
			RedisAddr: DefaultRedisAddr,
		},
		Layout: LayoutConfig{Direction: layout.TopBottom.String()},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/cattree/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cattree", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cattree", "config.toml")
	}
	return filepath.Join(home, ".config", "cattree", "config.toml")
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "cattree")
	}
	return filepath.Join(os.TempDir(), "cattree-cache")
}

// Load reads the configuration from path, or from $CATTREE_CONFIG and then
// [DefaultPath] when path is empty. A missing default file is not an error;
// a missing explicit file is. Environment overrides are applied and the
// result is validated.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		if path = os.Getenv(EnvConfig); path != "" {
			explicit = true
		} else {
			path = DefaultPath()
		}
	}

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile merges the file at path into c. The format is chosen by
// extension: .yaml and .yml are YAML, anything else is TOML.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = toml.Unmarshal(data, c)
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return nil
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvToken); ok {
		c.Token = v
	}
	if v, ok := lookup(EnvCache); ok && v != "" {
		c.Cache.Backend = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Cache.RedisAddr = v
	}
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "base_url must be an http(s) URL, got %q", c.BaseURL)
	}
	if c.Timeout.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "timeout must not be negative")
	}
	if c.PageLimit < 1 || c.PageLimit > catalog.MaxLimit {
		return errs.New(errs.ErrCodeInvalidConfig, "page_limit must be between 1 and %d, got %d", catalog.MaxLimit, c.PageLimit)
	}
	if c.RateLimit < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "rate_limit must not be negative")
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendFile && c.Cache.Dir == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
	}
	if c.Cache.Backend == cache.BackendRedis && c.Cache.RedisAddr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.RedisDB < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_db must not be negative")
	}
	if _, err := layout.ParseDirection(c.Layout.Direction); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "layout.direction")
	}
	return nil
}

// Direction returns the configured layout direction.
func (c Config) Direction() layout.Direction {
	d, err := layout.ParseDirection(c.Layout.Direction)
	if err != nil {
		return layout.TopBottom
	}
	return d
}

// ClientOptions returns the backend client options. A token becomes a
// bearer Authorization header.
func (c Config) ClientOptions() integrations.Options {
	opts := integrations.Options{
		Timeout:   c.Timeout.Duration,
		RateLimit: c.RateLimit,
	}
	if c.Token != "" {
		opts.Headers = map[string]string{"Authorization": "Bearer " + c.Token}
	}
	return opts
}

// CacheOptions returns the options for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:   c.Cache.Backend,
		Dir:       c.Cache.Dir,
		RedisAddr: c.Cache.RedisAddr,
		RedisDB:   c.Cache.RedisDB,
	}
}

// OpenCache opens the configured cache backend.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	return cache.Open(ctx, c.CacheOptions())
}

// String renders the configuration as TOML with the token masked.
func (c Config) String() string {
	masked := c
	if masked.Token != "" {
		masked.Token = "****"
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(masked); err != nil {
		return "base_url = " + strconv.Quote(c.BaseURL) + "\n"
	}
	return b.String()
}
