// Package cache stores backend responses so repeated views do not refetch.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis database (server deployments)
//   - [NullCache]: stores nothing
//
// # Keys and Invalidation
//
// Cached reads are never deleted one by one. Instead every read key embeds
// the current collection generation ([Keyer.GenerationKey] holds it) and a
// successful mutation replaces the generation, so all older entries become
// unreachable and age out through their TTL.
package cache

import (
	"context"
	"time"
)

// TTLList is the default lifetime of a cached list page.
const TTLList = 5 * time.Minute

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the stored value. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Keyer generates cache keys.
type Keyer interface {
	// GenerationKey is the key holding the current collection generation.
	GenerationKey() string
	// ListKey is the key of one page of the category list.
	ListKey(generation string, page, limit int) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GenerationKey returns "categories:generation".
func (DefaultKeyer) GenerationKey() string { return "categories:generation" }

// ListKey hashes the generation and page parameters.
func (DefaultKeyer) ListKey(generation string, page, limit int) string {
	return hashKey("categories:list", generation, page, limit)
}
