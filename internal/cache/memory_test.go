package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/equitylearn/entitlements/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemorySetGet(t *testing.T) {
	store := cache.NewMemory(time.Minute)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", cachedValue{Name: "acme", Count: 3}, time.Minute))

	var got cachedValue
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedValue{Name: "acme", Count: 3}, got)
}

func TestMemoryMiss(t *testing.T) {
	store := cache.NewMemory(time.Minute)
	defer store.Close()

	var got cachedValue
	found, err := store.Get(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryExpiry(t *testing.T) {
	store := cache.NewMemory(time.Minute)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", cachedValue{Name: "acme"}, 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	var got cachedValue
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryInvalidate(t *testing.T) {
	store := cache.NewMemory(time.Minute)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", cachedValue{Name: "acme"}, time.Minute))
	require.NoError(t, store.Invalidate(ctx, "k"))

	var got cachedValue
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryValuesDoNotAlias(t *testing.T) {
	store := cache.NewMemory(time.Minute)
	defer store.Close()
	ctx := context.Background()

	original := cachedValue{Name: "acme", Count: 1}
	require.NoError(t, store.Set(ctx, "k", original, time.Minute))
	original.Count = 99

	var got cachedValue
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, got.Count)
}
