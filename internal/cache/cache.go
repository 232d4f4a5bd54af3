// Package cache implements the cache-aside protocol that keeps fast reads
// consistent with the authoritative store: read-through population on
// miss, key-based invalidation on write.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is the key-value backend.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Get never errors; it returns (nil, false) on miss or expiry.
// - Delete and DeleteByPrefix are idempotent.
type Cache interface {
	// Get retrieves a cached value. Returns (nil, false) on miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the given TTL. TTL<=0 means no caching.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ReadThrough looks up key and returns the cached value on a hit. On a
// miss, or on any cache or decode failure, it invokes load against the
// authoritative store, writes the result back with ttl and returns it.
// Caching is strictly best-effort: a failed write never fails the read.
func ReadThrough[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if data, ok := c.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// Undecodable entry, treat as a miss
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if data, err := json.Marshal(value); err == nil {
		_ = c.Set(ctx, key, data, ttl)
	}
	return value, nil
}
