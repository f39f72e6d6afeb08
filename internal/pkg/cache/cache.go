// Package cache provides a small Redis-backed JSON cache used for derived
// data that is expensive to recompute, such as instructor rating roll-ups.
// The cache is best-effort: every method degrades to a miss on failure.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ctecscope/ctecscope/internal/pkg/logger"
)

// Client wraps a Redis connection with JSON marshaling and a default TTL.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// Options configures the cache connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, opts Options) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	if opts.TTL <= 0 {
		opts.TTL = 15 * time.Minute
	}
	return &Client{rdb: rdb, ttl: opts.TTL}, nil
}

// GetJSON loads the value stored under key into v. Returns false on a miss
// or on any failure; cache errors are logged, never propagated.
func (c *Client) GetJSON(ctx context.Context, key string, v interface{}) bool {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn().Err(err).Str("key", key).Msg("Cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache entry unmarshal failed")
		return false
	}
	return true
}

// SetJSON stores v under key with the default TTL.
func (c *Client) SetJSON(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache entry marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache set failed")
	}
}

// Delete removes keys, ignoring misses.
func (c *Client) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Strs("keys", keys).Msg("Cache delete failed")
	}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
