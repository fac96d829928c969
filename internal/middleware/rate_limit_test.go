package middleware

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimitStore_Key(t *testing.T) {
	logger := zerolog.Nop()
	store := NewRedisRateLimitStore(nil, 10, time.Minute, &logger)

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	first := store.key("10.0.0.1")

	store.now = func() time.Time { return fixed.Add(30 * time.Second) }
	assert.Equal(t, first, store.key("10.0.0.1"), "same window")

	store.now = func() time.Time { return fixed.Add(time.Minute) }
	assert.NotEqual(t, first, store.key("10.0.0.1"), "next window")

	assert.Contains(t, first, rateLimitKeyPrefix+"10.0.0.1:")
}

func TestRedisRateLimitStore_FailsOpen(t *testing.T) {
	logger := zerolog.Nop()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 20 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisRateLimitStore(client, 1, time.Minute, &logger)

	for range 3 {
		allowed, err := store.Allow("10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

// Runs against a real Redis when JOD_TEST_REDIS_ADDR is set.
func TestRedisRateLimitStore_Allow(t *testing.T) {
	addr := os.Getenv("JOD_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("JOD_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Ping(t.Context()).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	logger := zerolog.Nop()
	store := NewRedisRateLimitStore(client, 2, time.Minute, &logger)
	id := "test-" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { _ = client.Del(context.Background(), store.key(id)).Err() })

	for i, want := range []bool{true, true, false} {
		allowed, err := store.Allow(id)
		require.NoError(t, err)
		assert.Equal(t, want, allowed, "request %d", i+1)
	}

	ttl, err := client.TTL(t.Context(), store.key(id)).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0, "key must expire")
}
