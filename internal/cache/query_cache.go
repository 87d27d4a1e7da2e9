package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the subset of cache operations the query cache needs. Client
// satisfies it; tests substitute an in-memory implementation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

var _ Store = (*Client)(nil)

// QueryCache layers get-or-fetch semantics with a short freshness window on
// top of a Store. Mutations invalidate keys explicitly; a stale entry is
// simply refetched on the next read.
type QueryCache struct {
	store Store
	ttl   time.Duration
}

// NewQueryCache creates a query cache with the given freshness window.
func NewQueryCache(store Store, ttl time.Duration) *QueryCache {
	return &QueryCache{store: store, ttl: ttl}
}

// GetOrFetch fills dest from cache when fresh, otherwise invokes fetch,
// stores the result, and fills dest from it. Cache failures degrade to a
// plain fetch.
func (q *QueryCache) GetOrFetch(ctx context.Context, key string, dest interface{}, fetch func(ctx context.Context) (interface{}, error)) error {
	if data, _ := q.store.Get(ctx, key); data != nil {
		if err := json.Unmarshal(data, dest); err == nil {
			return nil
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_ = q.store.Set(ctx, key, payload, q.ttl)

	return json.Unmarshal(payload, dest)
}

// Invalidate drops the given keys.
func (q *QueryCache) Invalidate(ctx context.Context, keys ...string) error {
	return q.store.Delete(ctx, keys...)
}
