package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilmonegov/Blog/pkg/blog/ratelimit"
)

func TestInMemoryLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewInMemory(time.Minute).WithClock(func() time.Time { return now })
	key := "comment:u1"

	first := limiter.Allow(ctx, key, 2)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Count)
	assert.Equal(t, 1, first.Remaining)

	second := limiter.Allow(ctx, key, 2)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third := limiter.Allow(ctx, key, 2)
	assert.False(t, third.Allowed)
	assert.Equal(t, 3, third.Count)
	assert.Equal(t, time.Minute, third.RetryAfter(now))

	now = now.Add(time.Minute)
	reset := limiter.Allow(ctx, key, 2)
	assert.True(t, reset.Allowed)
	assert.Equal(t, 1, reset.Count)
}

func TestInMemoryLimiter_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := ratelimit.NewInMemory(time.Minute)

	assert.True(t, limiter.Allow(ctx, "a", 1).Allowed)
	assert.False(t, limiter.Allow(ctx, "a", 1).Allowed)
	assert.True(t, limiter.Allow(ctx, "b", 1).Allowed)
}

func TestInMemoryLimiter_LimitFloor(t *testing.T) {
	d := ratelimit.NewInMemory(0).Allow(context.Background(), "k", 0)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Limit)
}

func TestNewRedisDefaults(t *testing.T) {
	lim := ratelimit.NewRedis(nil, 0)
	assert.Equal(t, time.Minute, lim.Window)
	assert.Equal(t, "rl:", lim.Prefix)
	require.NotNil(t, lim.Fallback)

	d := lim.Allow(context.Background(), "k", 1)
	assert.True(t, d.Allowed)
	assert.False(t, lim.Allow(context.Background(), "k", 1).Allowed, "fallback should count")
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	limiter := ratelimit.NewRedis(client, time.Minute)

	for i := 1; i <= 10; i++ {
		d := limiter.Allow(ctx, "comment:u1", 10)
		require.True(t, d.Allowed, "hit %d", i)
		assert.Equal(t, i, d.Count)
	}
	blocked := limiter.Allow(ctx, "comment:u1", 10)
	assert.False(t, blocked.Allowed)
	assert.Equal(t, 11, blocked.Count)
	assert.True(t, blocked.ResetAt.After(time.Now()))

	assert.True(t, mr.Exists("rl:comment:u1"))

	mr.FastForward(time.Minute + time.Second)
	assert.True(t, limiter.Allow(ctx, "comment:u1", 10).Allowed)
}

func TestRedisLimiter_FallsBackWhenUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	limiter := ratelimit.NewRedis(client, time.Minute)
	limiter.Timeout = 200 * time.Millisecond

	ctx := context.Background()
	assert.True(t, limiter.Allow(ctx, "k", 1).Allowed)
	assert.False(t, limiter.Allow(ctx, "k", 1).Allowed)
}
