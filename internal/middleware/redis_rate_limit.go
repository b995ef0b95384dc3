package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisRateLimitConfig holds configuration for the shared rate limiter
type RedisRateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
	KeyPrefix         string
}

// rateLimitScript counts requests per key in a one-minute window.
// ARGV[2] is the window end. Returns {allowed, remaining, reset_unix}.
var rateLimitScript = redis.NewScript(`
	local count_key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local reset_time = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', count_key) or "0")
	if current >= limit then
		return {0, 0, reset_time}
	end

	current = redis.call('INCR', count_key)
	if current == 1 then
		redis.call('EXPIRE', count_key, 60)
	end

	return {1, limit - current, reset_time}
`)

// RedisRateLimit limits requests per client IP across server instances
func RedisRateLimit(redisClient *redis.Client, config RedisRateLimitConfig, logger *zap.Logger) gin.HandlerFunc {
	limit := config.RequestsPerMinute
	if config.BurstSize > limit {
		limit = config.BurstSize
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		now := time.Now()

		allowed, remaining, resetTime, err := checkRateLimit(c.Request.Context(), redisClient, config.KeyPrefix+clientIP, limit, now)
		if err != nil {
			logger.Error("Rate limit check failed", zap.Error(err), zap.String("client_ip", clientIP))
			c.Next() // Continue on error
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime, 10))

		if !allowed {
			c.Header("Retry-After", strconv.FormatInt(resetTime-now.Unix(), 10))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// windowReset returns the end of the one-minute window holding now. It is
// always strictly after now, so Retry-After is at least one second.
func windowReset(now time.Time) int64 {
	return now.Unix()/60*60 + 60
}

func checkRateLimit(ctx context.Context, redisClient *redis.Client, key string, limit int, now time.Time) (bool, int, int64, error) {
	countKey := fmt.Sprintf("ratelimit:%s:%d", key, now.Unix()/60)

	result, err := rateLimitScript.Run(ctx, redisClient, []string{countKey}, limit, windowReset(now)).Result()
	if err != nil {
		return false, 0, 0, err
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return false, 0, 0, fmt.Errorf("unexpected rate limit result: %v", result)
	}
	allowed, _ := values[0].(int64)
	remaining, _ := values[1].(int64)
	resetTime, _ := values[2].(int64)

	return allowed == 1, int(remaining), resetTime, nil
}
