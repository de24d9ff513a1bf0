package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhinay-x/note-maker/domain"
)

// RedisLimiterImpl implements domain.RateLimiter as a fixed window counter.
// The first hit in a window creates the key and sets its expiry; the window
// resets when the key expires.
type RedisLimiterImpl struct {
	client redis.Cmdable
	prefix string
}

// NewRedisLimiter creates a new redis-backed limiter
func NewRedisLimiter(client redis.Cmdable) domain.RateLimiter {
	return &RedisLimiterImpl{client: client, prefix: "ratelimit:"}
}

// Allow implements domain.RateLimiter. The returned duration is the time
// left in the current window.
func (l *RedisLimiterImpl) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	k := l.prefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to count hit: %w", err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		// new key, or one left without expiry
		if err := l.client.PExpire(ctx, k, window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set window: %w", err)
		}
		remaining = window
	}

	return incr.Val() <= int64(limit), remaining, nil
}
