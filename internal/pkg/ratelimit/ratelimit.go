package ratelimit

import (
	"context"
	"court-booking-service/internal/pkg/errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits at most a fixed number of requests per key within a
// sliding window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

type Config struct {
	Prefix string
	Limit  int
	Window time.Duration
	Clock  Clock
}

// slidingWindow keeps one sorted-set member per admitted request, scored by
// its timestamp in milliseconds.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local window_ms = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local member = ARGV[4]

	redis.call('ZREMRANGEBYSCORE', key, 0, now_ms - window_ms)
	local count = redis.call('ZCARD', key)

	if count < limit then
		redis.call('ZADD', key, now_ms, member)
		redis.call('PEXPIRE', key, window_ms)
		return { 1, limit - count - 1, 0 }
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local retry_ms = window_ms
	if oldest[2] then
		retry_ms = tonumber(oldest[2]) + window_ms - now_ms
	end
	return { 0, 0, retry_ms }
`)

type redisLimiter struct {
	client redis.Scripter
	cfg    Config
	clock  Clock
}

func NewRedisLimiter(client redis.Scripter, cfg Config) Limiter {
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &redisLimiter{client: client, cfg: cfg, clock: clock}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.clock.Now()
	vals, err := slidingWindow.Run(ctx, l.client,
		[]string{fmt.Sprintf("%s:%s", l.cfg.Prefix, key)},
		now.UnixMilli(),
		l.cfg.Window.Milliseconds(),
		l.cfg.Limit,
		fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	).Int64Slice()
	if err != nil {
		return Result{}, errors.Wrap(err, "error evaluate rate limit")
	}
	if len(vals) != 3 {
		return Result{}, errors.InternalServerError("unexpected rate limit result")
	}

	return Result{
		Allowed:    vals[0] == 1,
		Limit:      l.cfg.Limit,
		Remaining:  int(vals[1]),
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}
