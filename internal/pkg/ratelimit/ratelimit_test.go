package ratelimit_test

import (
	"context"
	"court-booking-service/internal/pkg/ratelimit"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T, clock ratelimit.Clock) ratelimit.Limiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return ratelimit.NewRedisLimiter(client, ratelimit.Config{
		Prefix: "ratelimit",
		Limit:  3,
		Window: time.Minute,
		Clock:  clock,
	})
}

func TestRedisLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("blocks after limit within window", func(t *testing.T) {
		clock := newMockClock()
		limiter := newLimiter(t, clock)

		for i := 0; i < 3; i++ {
			res, err := limiter.Allow(ctx, "user:u-1")
			require.NoError(t, err)
			assert.True(t, res.Allowed)
			assert.Equal(t, 2-i, res.Remaining)
			clock.Advance(10 * time.Second)
		}

		res, err := limiter.Allow(ctx, "user:u-1")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		// oldest request was 30s ago, so it leaves the window in 30s
		assert.Equal(t, 30*time.Second, res.RetryAfter)
	})

	t.Run("window slides", func(t *testing.T) {
		clock := newMockClock()
		limiter := newLimiter(t, clock)

		for i := 0; i < 3; i++ {
			_, err := limiter.Allow(ctx, "ip:10.0.0.1")
			require.NoError(t, err)
		}
		clock.Advance(61 * time.Second)

		res, err := limiter.Allow(ctx, "ip:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		clock := newMockClock()
		limiter := newLimiter(t, clock)

		for i := 0; i < 3; i++ {
			_, err := limiter.Allow(ctx, "user:a")
			require.NoError(t, err)
		}
		res, err := limiter.Allow(ctx, "user:b")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})
}
