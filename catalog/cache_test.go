package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpiresWithClock(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "musc", Resolution{EAN: "7350109270035"}))

	got, ok, err := cache.Get(ctx, "musc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "7350109270035", got.EAN)

	now = now.Add(61 * time.Second)
	_, ok, err = cache.Get(ctx, "musc")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestRedisCacheRoundTripAndTTL(t *testing.T) {
	t.Parallel()

	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	cache := NewRedisCache(client, "test:", 10*time.Minute)
	defer cache.Close()
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	want := Resolution{EAN: "7350109270011", FunctionalName: "Ghost of Tom 100ml"}
	require.NoError(t, cache.Set(ctx, "ghost", want))
	assert.True(t, server.Exists("test:ghost"))

	got, ok, err := cache.Get(ctx, "ghost")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	server.FastForward(11 * time.Minute)
	_, ok, err = cache.Get(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenRedisCacheRejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := OpenRedisCache(context.Background(), "not a url", time.Minute)
	assert.Error(t, err)
}

func TestRetryBackoffIsCapped(t *testing.T) {
	t.Parallel()

	retry := Retry{Attempts: 10, Delay: time.Second, MaxDelay: 3 * time.Second}
	assert.Equal(t, time.Second, retry.backoff(1))
	assert.Equal(t, 2*time.Second, retry.backoff(2))
	assert.Equal(t, 3*time.Second, retry.backoff(3))
	assert.Equal(t, 3*time.Second, retry.backoff(9))
}
