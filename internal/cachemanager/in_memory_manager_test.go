package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type lineKey string

type lineResult struct {
	Spans int
	Open  bool
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[lineKey, lineResult]("lines", DefaultExpiration, DefaultCleanupInterval)

	want := lineResult{Spans: 7}
	cache.Set(ctx, "asm6502|0|LDA #1", want, DefaultExpiration)

	got, ok := cache.Get(ctx, "asm6502|0|LDA #1")
	require.True(t, ok)
	require.Equal(t, want, got)
	require.Equal(t, 1, cache.Len())
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	cache := NewInMemoryCacheManager[lineKey, lineResult]("lines", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "basic|0|10 END")
	require.False(t, ok)
	require.Zero(t, got)
}

func TestInMemoryCacheManager_WrongType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, lineResult]("lines", DefaultExpiration, DefaultCleanupInterval)
	cache.items.Set("k", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "k")
	require.False(t, ok)
	require.Zero(t, got)
	require.Zero(t, cache.Len(), "mistyped entry is dropped")
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("lines", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "short", 1, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := cache.Get(ctx, "short")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("lines", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "k", 3, 50*time.Millisecond)
	got, ok := cache.GetWithRefresh(ctx, "k", time.Hour)
	require.True(t, ok)
	require.Equal(t, 3, got)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(ctx, "k")
	require.True(t, ok, "refresh should have extended the ttl")

	_, ok = cache.GetWithRefresh(ctx, "missing", time.Hour)
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("lines", DefaultExpiration, DefaultCleanupInterval)

	cache.Set(ctx, "a", 1, DefaultExpiration)
	cache.Set(ctx, "b", 2, DefaultExpiration)
	cache.Set(ctx, "c", 3, DefaultExpiration)

	require.NoError(t, cache.Delete(ctx, "a", "b"))
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	require.Equal(t, 1, cache.Len())

	require.NoError(t, cache.Delete(ctx))
	require.NoError(t, cache.Flush(ctx))
	require.Equal(t, 0, cache.Len())
}
