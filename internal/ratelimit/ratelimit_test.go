package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestRedisLimiter(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	limiter := NewRedisLimiterWithClient(client, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed, "fourth request should be limited")

	t.Run("keys are independent", func(t *testing.T) {
		allowed, err := limiter.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestRedisLimiter_InvalidURL(t *testing.T) {
	_, err := NewRedisLimiter("not-a-url", 10, time.Minute)
	require.Error(t, err)
}

func TestMemoryLimiter(t *testing.T) {
	limiter := NewMemoryLimiter(2, 100*time.Millisecond)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "client")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, _ = limiter.Allow(ctx, "client")
	assert.True(t, allowed)

	allowed, _ = limiter.Allow(ctx, "client")
	assert.False(t, allowed)

	// Window slides: old entries expire and the client recovers.
	time.Sleep(150 * time.Millisecond)
	allowed, _ = limiter.Allow(ctx, "client")
	assert.True(t, allowed)
}

func TestNoOpLimiter(t *testing.T) {
	limiter := &NoOpLimiter{}
	for i := 0; i < 100; i++ {
		allowed, err := limiter.Allow(context.Background(), "anyone")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	assert.NoError(t, limiter.Close())
}
