package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int, window time.Duration) (*RedisLoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter := NewRedisLoginLimiter(client, max, window, nil)
	require.NotNil(t, limiter)
	return limiter, mr
}

func TestRedisLoginLimiterWindow(t *testing.T) {
	ctx := context.Background()
	limiter, mr := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, allowed, "attempt %d", i+1)
	}
	allowed, err := limiter.Allow(ctx, "A@X.com ")
	require.NoError(t, err)
	assert.False(t, allowed, "email is normalized for the counter key")

	assert.True(t, mr.TTL(loginAttemptsKey("a@x.com")) > 0)

	mr.FastForward(time.Minute + time.Second)
	allowed, err = limiter.Allow(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLoginLimiterReset(t *testing.T) {
	ctx := context.Background()
	limiter, mr := newTestLimiter(t, 1, time.Minute)

	allowed, _ := limiter.Allow(ctx, "b@x.com")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "b@x.com")
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "b@x.com"))
	assert.False(t, mr.Exists(loginAttemptsKey("b@x.com")))

	allowed, _ = limiter.Allow(ctx, "b@x.com")
	assert.True(t, allowed)
}

func TestRedisLoginLimiterFailsOpen(t *testing.T) {
	ctx := context.Background()
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "c@x.com")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestNewRedisLoginLimiterDisabled(t *testing.T) {
	assert.Nil(t, NewRedisLoginLimiter(nil, 5, time.Minute, nil))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	assert.Nil(t, NewRedisLoginLimiter(client, 0, time.Minute, nil))
	assert.Nil(t, NewRedisLoginLimiter(client, 5, 0, nil))

	var disabled *RedisLoginLimiter
	allowed, err := disabled.Allow(context.Background(), "d@x.com")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, disabled.Reset(context.Background(), "d@x.com"))
}
