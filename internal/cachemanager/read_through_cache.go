package cachemanager

import (
	"context"
	"sync/atomic"
	"time"
)

// Loader computes the value for input on a cache miss.
type Loader[V any, I any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache answers lookups from a CacheManager and falls back to a
// Loader, storing what it loads. Errors are returned and never cached.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache  CacheManager[K, V]
	load   Loader[V, I]
	bypass bool

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats counts lookups answered from the cache and lookups that ran the
// loader.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// NewReadThroughCache wraps cache with load. With bypass set every lookup
// runs load and nothing is stored.
func NewReadThroughCache[K comparable, V any, I any](cache CacheManager[K, V], load Loader[V, I], bypass bool) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, load: load, bypass: bypass}
}

// Get returns the cached value for key or loads it from input.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	return r.through(ctx, key, input, ttl, func() (V, bool) { return r.cache.Get(ctx, key) })
}

// GetWithRefresh is Get, except that a hit restarts the entry's ttl.
func (r *ReadThroughCache[K, V, I]) GetWithRefresh(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	return r.through(ctx, key, input, ttl, func() (V, bool) { return r.cache.GetWithRefresh(ctx, key, ttl) })
}

func (r *ReadThroughCache[K, V, I]) through(ctx context.Context, key K, input I, ttl time.Duration, lookup func() (V, bool)) (V, error) {
	if !r.bypass {
		if v, ok := lookup(); ok {
			r.hits.Add(1)
			return v, nil
		}
	}
	r.misses.Add(1)

	v, err := r.load(ctx, input)
	if err != nil || r.bypass {
		return v, err
	}
	r.cache.Set(ctx, key, v, ttl)
	return v, nil
}

// Stats returns the hit and miss counters.
func (r *ReadThroughCache[K, V, I]) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load()}
}
