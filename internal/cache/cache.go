// Package cache provides the response cache that wraps rendered
// output. It stores complete responses keyed by request identity so
// repeated hits skip the store fetches and ranking entirely.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is one cached response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// Cache interface defines the response cache operations. Implementations
// must never fail a request: a broken cache behaves like an empty one.
type Cache interface {
	// Get returns the cached entry for key, or false on a miss.
	Get(ctx context.Context, key string) (*Entry, bool)

	// Set stores the entry under key for the given TTL.
	Set(ctx context.Context, key string, e *Entry, ttl time.Duration)

	// Close closes the cache connection.
	Close() error
}

// noop is a no-op implementation of Cache for when Redis is not
// configured. Every lookup misses and every store is dropped, so the
// service still works, just without response reuse.
type noop struct{}

// NewNoop returns a cache that never hits.
func NewNoop() Cache { return &noop{} }

func (n *noop) Get(ctx context.Context, key string) (*Entry, bool)               { return nil, false }
func (n *noop) Set(ctx context.Context, key string, e *Entry, ttl time.Duration) {}
func (n *noop) Close() error                                                     { return nil }

// redisCache is the Redis implementation of Cache.
type redisCache struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewRedis creates a Redis-backed response cache. A failed ping falls
// back to the no-op cache rather than blocking startup.
func NewRedis(addr, password string, log *slog.Logger) Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, response cache disabled", "addr", addr, "error", err)
		rdb.Close()
		return &noop{}
	}

	log.Info("response cache connected", "addr", addr)
	return &redisCache{rdb: rdb, log: log}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Entry, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.log.Warn("cache entry corrupt, dropping", "key", key, "error", err)
		c.rdb.Del(ctx, key)
		return nil, false
	}
	return &e, true
}

func (c *redisCache) Set(ctx context.Context, key string, e *Entry, ttl time.Duration) {
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *redisCache) Close() error { return c.rdb.Close() }
