package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cattree/pkg/cache"
	"github.com/matzehuels/cattree/pkg/category"
	errs "github.com/matzehuels/cattree/pkg/errors"
	"github.com/matzehuels/cattree/pkg/integrations"
	"github.com/matzehuels/cattree/pkg/observability"
)

// Pagination bounds.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const categoriesPath = "/categories"

// Envelope is the backend's response wrapper.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// Page is one page of the category forest.
type Page struct {
	Categories []category.Category `json:"categories"`
	Pagination category.Pagination `json:"pagination"`
}

// Client provides access to the category backend.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	maxDepth int
	logger   *log.Logger
}

// Option customizes a [Client].
type Option func(*Client)

// WithCache enables response caching with the given TTL (<= 0 selects
// [cache.TTLList]).
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		if c != nil {
			cl.cache = c
		}
		if ttl > 0 {
			cl.ttl = ttl
		}
	}
}

// WithMaxDepth sets the nesting limit enforced on fetched forests.
func WithMaxDepth(depth int) Option {
	return func(cl *Client) { cl.maxDepth = depth }
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a catalog client on top of a shared API client.
// Without [WithCache], nothing is cached.
func NewClient(api *integrations.Client, opts ...Option) *Client {
	c := &Client{
		Client:   api,
		cache:    cache.NewNullCache(),
		ttl:      cache.TTLList,
		maxDepth: category.DefaultMaxDepth,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cache.BackendScope(api.BaseURL()))
	return c
}

// ClampPage normalizes pagination parameters: page is at least 1, limit is
// [DefaultLimit] when non-positive and at most [MaxLimit].
func ClampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return page, limit
}

// List fetches one page of the category forest.
//
// If refresh is false, a cached page from the current generation is
// returned when available. The returned forest has passed
// category.CheckForest.
func (c *Client) List(ctx context.Context, page, limit int, refresh bool) (*Page, bool, error) {
	page, limit = ClampPage(page, limit)
	key := c.keyer.ListKey(c.generation(ctx), page, limit)

	if !refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			var p Page
			if err := json.Unmarshal(data, &p); err == nil {
				observability.Cache().OnCacheHit(ctx, "list")
				return &p, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "list")
	}

	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var env Envelope[Page]
	if err := c.Get(ctx, categoriesPath, query, &env); err != nil {
		return nil, false, err
	}
	if err := checkEnvelope(env.Status, env.Message); err != nil {
		return nil, false, err
	}
	if err := category.CheckForest(env.Data.Categories, c.maxDepth); err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(env.Data); err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Debug("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "list", len(data))
		}
	}
	return &env.Data, false, nil
}

// Create adds a category.
func (c *Client) Create(ctx context.Context, req category.CreateRequest) (*category.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var env Envelope[json.RawMessage]
	if err := c.Post(ctx, categoriesPath, req, &env); err != nil {
		return nil, err
	}
	return c.afterMutation(ctx, env)
}

// Update changes the given fields of a category.
func (c *Client) Update(ctx context.Context, id string, req category.UpdateRequest) (*category.Category, error) {
	if err := errs.ValidateID(id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var env Envelope[json.RawMessage]
	if err := c.Put(ctx, categoriesPath+"/"+url.PathEscape(id), req, &env); err != nil {
		return nil, err
	}
	return c.afterMutation(ctx, env)
}

// Delete removes a category.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := errs.ValidateID(id); err != nil {
		return err
	}
	var env Envelope[json.RawMessage]
	if err := c.Client.Delete(ctx, categoriesPath+"/"+url.PathEscape(id), &env); err != nil {
		return err
	}
	_, err := c.afterMutation(ctx, env)
	return err
}

// Invalidate starts a new cache generation, making every cached page stale.
func (c *Client) Invalidate(ctx context.Context) error {
	return c.cache.Set(ctx, c.keyer.GenerationKey(), []byte(uuid.NewString()), 0)
}

// afterMutation checks the envelope, invalidates cached reads and decodes
// the returned category when the backend sent one.
func (c *Client) afterMutation(ctx context.Context, env Envelope[json.RawMessage]) (*category.Category, error) {
	if err := checkEnvelope(env.Status, env.Message); err != nil {
		return nil, err
	}
	if err := c.Invalidate(ctx); err != nil {
		c.logger.Warn("cache invalidation failed", "error", err)
	}
	return decodeCategory(env.Data), nil
}

// generation returns the current cache generation, creating one on first
// use. Cache failures yield a throwaway generation so reads miss.
func (c *Client) generation(ctx context.Context) string {
	key := c.keyer.GenerationKey()
	if data, hit, err := c.cache.Get(ctx, key); err == nil && hit && len(data) > 0 {
		return string(data)
	}
	gen := uuid.NewString()
	if err := c.cache.Set(ctx, key, []byte(gen), 0); err != nil {
		c.logger.Debug("cache generation write failed", "error", err)
	}
	return gen
}

func checkEnvelope(status, message string) error {
	if status != StatusError {
		return nil
	}
	if message == "" {
		message = "backend reported an error"
	}
	return errs.New(errs.ErrCodeInvalidInput, "%s", message)
}

// decodeCategory accepts the category either directly as data or nested as
// data.category. It returns nil when neither shape matches.
func decodeCategory(raw json.RawMessage) *category.Category {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var nested struct {
		Category *category.Category `json:"category"`
	}
	if json.Unmarshal(raw, &nested) == nil && nested.Category != nil {
		return nested.Category
	}
	var c category.Category
	if json.Unmarshal(raw, &c) == nil && c.ID != "" {
		return &c
	}
	return nil
}
