package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend       string
	Dir           string // file backend
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open creates the cache selected by opts.Backend. An empty backend means
// [BackendFile].
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory")
		}
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return ConnectRedis(ctx, RedisOptions{Addr: opts.RedisAddr, Password: opts.RedisPassword, DB: opts.RedisDB})
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
}
