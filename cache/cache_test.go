package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyIsDeterministic(t *testing.T) {
	type payload struct {
		A string
		B int
	}

	k1, err := Key(payload{A: "x", B: 1})
	require.NoError(t, err)
	k2, err := Key(payload{A: "x", B: 1})
	require.NoError(t, err)
	require.Equal(t, k1, k2)
	require.Len(t, k1, 64)

	k3, err := Key(payload{A: "y", B: 1})
	require.NoError(t, err)
	require.NotEqual(t, k1, k3)
}

func TestMemoryRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(time.Minute)

	_, ok := store.Get(ctx, "missing")
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte("pdf-bytes")))
	data, ok := store.Get(ctx, "k")
	require.True(t, ok)
	require.Equal(t, []byte("pdf-bytes"), data)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(time.Millisecond)

	require.NoError(t, store.Set(ctx, "k", []byte("pdf-bytes")))
	time.Sleep(5 * time.Millisecond)

	_, ok := store.Get(ctx, "k")
	require.False(t, ok)
}

func TestMemoryStaysBounded(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(time.Hour)

	for i := 0; i < maxMemoryEntries+10; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("k%d", i), []byte("pdf-bytes")))
	}

	require.LessOrEqual(t, len(store.items), maxMemoryEntries)
	_, ok := store.Get(ctx, fmt.Sprintf("k%d", maxMemoryEntries+9))
	require.True(t, ok, "the most recent entry survives eviction")
}

func TestMemorySetSweepsExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(time.Millisecond)

	for i := 0; i < maxMemoryEntries; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("k%d", i), []byte("pdf-bytes")))
	}
	time.Sleep(5 * time.Millisecond)

	require.NoError(t, store.Set(ctx, "fresh", []byte("pdf-bytes")))
	require.Len(t, store.items, 1, "expired entries are swept, not retained")
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-url", time.Minute, "boards")
	require.Error(t, err)
}
