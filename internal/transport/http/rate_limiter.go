package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter counts requests per client IP, method and route in fixed
// Redis windows. A nil client disables limiting.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{client: client, limit: limit, window: window, logger: logger}
}

// Middleware rejects requests over the limit with 429. Redis failures let
// the request through.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.client == nil || l.limit <= 0 {
			c.Next()
			return
		}

		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()

		var incr *redis.IntCmd
		var ttl *redis.DurationCmd
		_, err := l.client.TxPipelined(c.Request.Context(), func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(c.Request.Context(), key)
			pipe.ExpireNX(c.Request.Context(), key, l.window)
			ttl = pipe.TTL(c.Request.Context(), key)
			return nil
		})
		if err != nil {
			l.logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		count := int(incr.Val())
		reset := ttl.Val()
		if reset < 0 {
			reset = l.window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, l.limit-count)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(reset.Seconds())))

		if count > l.limit {
			c.Header("Retry-After", strconv.Itoa(max(1, int(reset.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
			return
		}

		c.Next()
	}
}
