package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// flakyStore is an in-memory Store whose operations can be forced to fail.
type flakyStore struct {
	data map[string][]byte
	fail bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{data: map[string][]byte{}}
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.fail {
		return nil, errors.New("store down")
	}
	return s.data[key], nil
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.fail {
		return errors.New("store down")
	}
	s.data[key] = value
	return nil
}

func (s *flakyStore) Delete(ctx context.Context, keys ...string) error {
	if s.fail {
		return errors.New("store down")
	}
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

type profilePayload struct {
	Name string `json:"name"`
}

func TestQueryCache_GetOrFetch_FetchesOnMiss(t *testing.T) {
	store := newFlakyStore()
	cache := NewQueryCache(store, time.Minute)
	fetches := 0

	var got profilePayload
	err := cache.GetOrFetch(context.Background(), "profile:alice", &got, func(ctx context.Context) (interface{}, error) {
		fetches++
		return profilePayload{Name: "Alice"}, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, 1, fetches)
	assert.Contains(t, store.data, "profile:alice")
}

func TestQueryCache_GetOrFetch_ServesCachedValue(t *testing.T) {
	store := newFlakyStore()
	cache := NewQueryCache(store, time.Minute)
	fetches := 0
	fetch := func(ctx context.Context) (interface{}, error) {
		fetches++
		return profilePayload{Name: "Alice"}, nil
	}

	var first, second profilePayload
	assert.NoError(t, cache.GetOrFetch(context.Background(), "profile:alice", &first, fetch))
	assert.NoError(t, cache.GetOrFetch(context.Background(), "profile:alice", &second, fetch))

	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestQueryCache_GetOrFetch_DegradesWhenStoreFails(t *testing.T) {
	store := newFlakyStore()
	store.fail = true
	cache := NewQueryCache(store, time.Minute)

	var got profilePayload
	err := cache.GetOrFetch(context.Background(), "profile:alice", &got, func(ctx context.Context) (interface{}, error) {
		return profilePayload{Name: "Alice"}, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestQueryCache_GetOrFetch_PropagatesFetchError(t *testing.T) {
	cache := NewQueryCache(newFlakyStore(), time.Minute)
	fetchErr := errors.New("backend unavailable")

	var got profilePayload
	err := cache.GetOrFetch(context.Background(), "profile:alice", &got, func(ctx context.Context) (interface{}, error) {
		return nil, fetchErr
	})

	assert.ErrorIs(t, err, fetchErr)
}

func TestQueryCache_Invalidate_ForcesRefetch(t *testing.T) {
	store := newFlakyStore()
	cache := NewQueryCache(store, time.Minute)
	fetches := 0
	fetch := func(ctx context.Context) (interface{}, error) {
		fetches++
		return profilePayload{Name: "Alice"}, nil
	}

	var got profilePayload
	assert.NoError(t, cache.GetOrFetch(context.Background(), "profile:alice", &got, fetch))
	assert.NoError(t, cache.Invalidate(context.Background(), "profile:alice"))
	assert.NoError(t, cache.GetOrFetch(context.Background(), "profile:alice", &got, fetch))

	assert.Equal(t, 2, fetches)
}
