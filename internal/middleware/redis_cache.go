package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheConfig holds configuration for the cache middleware
type CacheConfig struct {
	Duration  time.Duration
	PrefixKey string
}

// ResponseCache caches successful GET responses in Redis by path and query.
// Only mount it on routes whose output does not depend on the session.
type ResponseCache struct {
	redisClient *redis.Client
	config      CacheConfig
	logger      *zap.Logger
}

// NewResponseCache creates a new response cache
func NewResponseCache(redisClient *redis.Client, config CacheConfig, logger *zap.Logger) *ResponseCache {
	return &ResponseCache{
		redisClient: redisClient,
		config:      config,
		logger:      logger,
	}
}

// Handler returns the caching middleware
func (rc *ResponseCache) Handler() gin.HandlerFunc {
	redisClient, config, logger := rc.redisClient, rc.config, rc.logger

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		cacheKey := generateCacheKey(c.Request, config.PrefixKey)
		ctx := c.Request.Context()

		cached, err := redisClient.HGetAll(ctx, cacheKey).Result()
		if err == nil && cached["body"] != "" {
			logger.Debug("Cache hit",
				zap.String("path", c.Request.URL.Path),
				zap.String("cache_key", cacheKey))

			contentType := cached["content_type"]
			if contentType == "" {
				contentType = "application/json; charset=utf-8"
			}
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, contentType, []byte(cached["body"]))
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		// Only cache successful responses
		if writer.Status() != http.StatusOK {
			return
		}

		pipe := redisClient.TxPipeline()
		pipe.HSet(ctx, cacheKey, "body", writer.body.Bytes(), "content_type", writer.Header().Get("Content-Type"))
		pipe.Expire(ctx, cacheKey, config.Duration)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Error("Failed to set cache",
				zap.Error(err),
				zap.String("cache_key", cacheKey))
			return
		}
		logger.Debug("Cache set",
			zap.String("path", c.Request.URL.Path),
			zap.String("cache_key", cacheKey),
			zap.Duration("duration", config.Duration))
	}
}

// responseWriter captures the response body for caching
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// generateCacheKey hashes the path and query of a request
func generateCacheKey(r *http.Request, prefix string) string {
	hash := sha256.New()
	io.WriteString(hash, r.URL.Path)
	if r.URL.RawQuery != "" {
		io.WriteString(hash, "?"+r.URL.RawQuery)
	}
	return prefix + ":" + hex.EncodeToString(hash.Sum(nil))
}

// Flush clears every cached response
func (rc *ResponseCache) Flush(ctx context.Context) error {
	redisClient := rc.redisClient
	iter := redisClient.Scan(ctx, 0, rc.config.PrefixKey+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return redisClient.Del(ctx, keys...).Err()
}
