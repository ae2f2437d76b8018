package redisdb

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/edulearn/edulearn-backend/internal/platform/envutil"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

// New connects to redis using REDIS_ADDR/REDIS_PASSWORD/REDIS_DB. Returns
// nil without error when REDIS_ADDR is unset so callers can run without a
// rate limiter in development.
func New(log *logger.Logger) (*goredis.Client, error) {
	addr := envutil.Str("REDIS_ADDR", "")
	if addr == "" {
		log.Warn("REDIS_ADDR not set; redis-backed features disabled")
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    envutil.Str("REDIS_PASSWORD", ""),
		DB:          envutil.Int("REDIS_DB", 0),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
