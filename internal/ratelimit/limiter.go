package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter per key stored in Redis.
//
// The first request in a window creates the counter with the window as its
// TTL; every request increments it. Once the counter passes maxRequests the
// key is refused until Redis expires it.
type Limiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
	prefix      string
	now         func() time.Time
}

// NewLimiter allows maxRequests per window for each key
func NewLimiter(client *redis.Client, maxRequests int, window time.Duration) *Limiter {
	return &Limiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
		prefix:      "ratelimit:console",
		now:         time.Now,
	}
}

func (l *Limiter) key(k string) string {
	return fmt.Sprintf("%s:%s", l.prefix, k)
}

// Allow counts one request for key.
// Returns (allowed, remaining, resetTime, error).
func (l *Limiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey := l.key(key)

	var (
		incr *redis.IntCmd
		pttl *redis.DurationCmd
	)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.window)
		pttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	return l.decide(incr.Val(), pttl.Val())
}

// decide turns the window counter and its TTL into a verdict
func (l *Limiter) decide(count int64, ttl time.Duration) (bool, int, time.Time, error) {
	if ttl < 0 {
		// key without expiry (should not happen after ExpireNX); treat as fresh window
		ttl = l.window
	}
	reset := l.now().Add(ttl)

	remaining := l.maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(l.maxRequests), remaining, reset, nil
}

// Reset clears the window for key
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

// MaxRequests returns the maximum number of requests per window
func (l *Limiter) MaxRequests() int {
	return l.maxRequests
}
