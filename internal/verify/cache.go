package verify

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a best-effort redis cache for upstream verification responses.
// Lookups against the registries are slow and rate-limited, so identical
// requests within the TTL are served from cache. All cache errors are
// swallowed; a broken cache degrades to uncached lookups.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache creates a redis-backed response cache.
func NewCache(addr, password string, db int, ttl time.Duration) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Get returns the cached payload for a key, if present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, "verify:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a payload under a key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil {
		return
	}
	c.rdb.Set(ctx, "verify:"+key, payload, c.ttl)
}

// Close releases the underlying redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
