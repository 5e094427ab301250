// Package ratelimiter limits how often a client may call an endpoint.
package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RateLimiterInterface reports whether one more call for key fits the quota.
type RateLimiterInterface interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimiter counts calls per key in fixed windows stored in Redis, so
// every server instance shares the same quota.
type RateLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter allows limit calls per key in each window.
func NewRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) (*RateLimiter, error) {
	if rdb == nil {
		return nil, errors.New("rate limiter requires a redis client")
	}
	if limit <= 0 || window < time.Millisecond {
		return nil, errors.New("rate limiter requires a positive limit and window")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RateLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window, now: time.Now}, nil
}

// Allow counts the call and reports whether it is within the quota.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}
	windowMs := rl.window.Milliseconds()
	slot := rl.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", rl.prefix, key, slot)

	count, err := fixedWindowScript.Run(ctx, rl.rdb, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit check: %w", err)
	}
	return count <= int64(rl.limit), nil
}

// Middleware rejects callers over the quota with 429, keyed by client IP.
// A nil limiter lets everything through. When the store fails the request is
// let through and the error logged.
func Middleware(limiter RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err, "remote_addr", c.ClientIP())
			c.Next()
			return
		}
		if !ok {
			slog.Warn("rate limit exceeded", "path", c.FullPath(), "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests. Please try again later."})
			return
		}
		c.Next()
	}
}
