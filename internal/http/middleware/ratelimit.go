package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/edulearn/edulearn-backend/internal/http/response"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type RateLimiter struct {
	log    *logger.Logger
	client *goredis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(baseLog *logger.Logger, client *goredis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		log:    baseLog.With("middleware", "RateLimiter"),
		client: client,
		limit:  limit,
		window: window,
	}
}

// Limit enforces a fixed-window per-client cap. When redis is not
// configured or unreachable the request passes through.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		window := time.Now().Unix() / int64(rl.window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window)

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			rl.log.Warn("rate limit check failed", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window)
		}

		remaining := int64(rl.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.limit) {
			response.Error(c, apierr.New(429, "rate_limited", errors.New("too many requests")))
			c.Abort()
			return
		}
		c.Next()
	}
}
