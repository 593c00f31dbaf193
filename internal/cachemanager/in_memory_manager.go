package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/retrolex/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// InMemoryCacheManager is a CacheManager over go-cache. Keys are any string
// type so callers can keep their own key type.
type InMemoryCacheManager[K ~string, V any] struct {
	name  string
	items *gocache.Cache
}

var _ CacheManager[string, int] = (*InMemoryCacheManager[string, int])(nil)

// NewInMemoryCacheManager creates an empty cache. name identifies it in log
// lines.
func NewInMemoryCacheManager[K ~string, V any](name string, expiration, cleanup time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{name: name, items: gocache.New(expiration, cleanup)}
}

func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	raw, ok := c.items.Get(string(key))
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "Cached value has wrong type", "cache", c.name, "key", key)
		c.items.Delete(string(key))
	}
	return v, ok
}

// GetWithRefresh is Get that stores a hit again so its ttl starts over.
func (c *InMemoryCacheManager[K, V]) GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	v, ok := c.Get(ctx, key)
	if ok {
		c.items.Set(string(key), v, ttl)
	}
	return v, ok
}

func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V, ttl time.Duration) {
	c.items.Set(string(key), value, ttl)
}

func (c *InMemoryCacheManager[K, V]) Delete(_ context.Context, keys ...K) error {
	for _, k := range keys {
		c.items.Delete(string(k))
	}
	return nil
}

func (c *InMemoryCacheManager[K, V]) Flush(_ context.Context) error {
	log.Debug(log.CatCache, "Flushing cache", "cache", c.name, "items", c.items.ItemCount())
	c.items.Flush()
	return nil
}

// Len counts items, including expired ones the janitor has not removed yet.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.items.ItemCount()
}
