package app

import (
	goredis "github.com/redis/go-redis/v9"

	"github.com/edulearn/edulearn-backend/internal/http/middleware"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type Middleware struct {
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services, redisClient *goredis.Client) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:        middleware.NewAuthMiddleware(log, services.Auth),
		RateLimiter: middleware.NewRateLimiter(log, redisClient, cfg.RateLimit, cfg.RateLimitWindow),
	}
}
