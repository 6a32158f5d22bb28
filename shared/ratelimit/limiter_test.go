package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	pool := NewPool(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = pool.Close() })

	return NewRedisLimiter(pool, "test", limit, window), mr
}

func TestRedisLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ok, err := limiter.Allow(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d should be allowed", i)
	}

	ok, err := limiter.Allow(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = limiter.Allow(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, ok, "keys are counted independently")
}

func TestRedisLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	ok, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	mr.FastForward(time.Minute + time.Second)

	ok, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_WindowIsNotExtended(t *testing.T) {
	limiter, mr := newTestLimiter(t, 5, time.Minute)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(20 * time.Second)

	_, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 40*time.Second, mr.TTL("test:k"))
}

func TestRedisLimiter_RestoresMissingTTL(t *testing.T) {
	limiter, mr := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	// A counter over the limit that lost its expiry.
	require.NoError(t, mr.Set("test:alice@example.com", "5"))
	require.Zero(t, mr.TTL("test:alice@example.com"))

	ok, err := limiter.Allow(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("test:alice@example.com"))

	mr.FastForward(time.Minute + time.Second)

	ok, err = limiter.Allow(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_Reset(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, mr.Exists("test:k"))

	require.NoError(t, limiter.Reset(ctx, "k"))
	assert.False(t, mr.Exists("test:k"))

	ok, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_ConnectionError(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var l Limiter = Noop{}

	for range 100 {
		ok, err := l.Allow(context.Background(), "k")
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.NoError(t, l.Reset(context.Background(), "k"))
}
