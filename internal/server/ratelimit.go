package server

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter is a redis-backed fixed-window counter. A nil receiver or a
// limiter with no client allows everything, so the server runs fine without
// redis.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter connects to redis at redisURL. An empty URL or a failing
// connection yields a disabled limiter, never an error: rate limiting is an
// optional protection, not a dependency.
func NewRateLimiter(redisURL string, limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{limit: limit, window: window}
	if redisURL == "" {
		return rl
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("warning: invalid REDIS_URL, rate limiting disabled: %v", err)
		return rl
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("warning: redis unreachable, rate limiting disabled: %v", err)
		return rl
	}
	rl.client = client
	return rl
}

// Allow reports whether another request under key fits in the current window.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if rl == nil || rl.client == nil {
		return true, nil
	}
	k := "ratelimit:" + key
	n, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		return true, err
	}
	if n == 1 {
		// First hit opens the window.
		if err := rl.client.Expire(ctx, k, rl.window).Err(); err != nil {
			return true, err
		}
	}
	return n <= int64(rl.limit), nil
}
