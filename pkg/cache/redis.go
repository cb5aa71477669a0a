package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisNamespace prefixes every key written by [RedisCache].
const RedisNamespace = "cattree:"

// RedisCache stores entries in Redis (or a compatible server such as
// Valkey). Expiry is delegated to the server.
type RedisCache struct {
	client *redis.Client
}

// RedisOptions configures [ConnectRedis].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// ConnectRedis creates a Redis client and verifies the connection with a ping.
func ConnectRedis(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return NewRedisCache(client), nil
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, RedisNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in Redis.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, RedisNamespace+key, data, ttl).Err()
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, RedisNamespace+key).Err()
}

// Clear deletes every key under [RedisNamespace].
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	count := 0
	iter := c.client.Scan(ctx, 0, RedisNamespace+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			n, err := c.client.Del(ctx, batch...).Result()
			if err != nil {
				return count, err
			}
			count += int(n)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return count, err
	}
	if len(batch) > 0 {
		n, err := c.client.Del(ctx, batch...).Result()
		if err != nil {
			return count, err
		}
		count += int(n)
	}
	return count, nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache and Clearer.
var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
