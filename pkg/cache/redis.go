package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix is prepended to every key written by Redis.
const DefaultRedisPrefix = "vango-ssr:render:"

// Redis is a cache backed by a Redis server. It is suitable for multiple
// server instances sharing rendered output.
type Redis struct {
	client redis.UniversalClient
	prefix string
	closed atomic.Bool
}

// RedisOption configures Redis.
type RedisOption func(*redisConfig)

type redisConfig struct {
	prefix string
}

// WithPrefix sets the key prefix. Default: DefaultRedisPrefix.
func WithPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		c.prefix = prefix
	}
}

// NewRedis creates a Redis cache over client.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	cfg := &redisConfig{prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Redis{client: client, prefix: cfg.prefix}
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

// Get returns the cached value for key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r.closed.Load() {
		return nil, false, ErrClosed{}
	}

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores value under key.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r.closed.Load() {
		return ErrClosed{}
	}
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, r.key(key), value, ttl).Err()
}

// Delete removes key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.closed.Load() {
		return ErrClosed{}
	}
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close marks the cache closed. The client is not closed since it may be
// shared.
func (r *Redis) Close() error {
	r.closed.Store(true)
	return nil
}

// Prefix returns the key prefix.
func (r *Redis) Prefix() string {
	return r.prefix
}
