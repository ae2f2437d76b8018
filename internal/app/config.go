package app

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/edulearn/edulearn-backend/internal/platform/envutil"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type Config struct {
	ServiceName     string
	Environment     string
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RateLimit       int
	RateLimitWindow time.Duration
	TracingEnabled  bool
}

func LoadConfig(log *logger.Logger) Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "error", err)
	}
	return Config{
		ServiceName:     envutil.Str("SERVICE_NAME", "edulearn-backend"),
		Environment:     envutil.Str("ENVIRONMENT", "development"),
		Port:            envutil.Str("PORT", "8080"),
		JWTSecretKey:    envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 86400)) * time.Second,
		RateLimit:       envutil.Int("RATE_LIMIT", 300),
		RateLimitWindow: time.Duration(envutil.Int("RATE_LIMIT_WINDOW", 60)) * time.Second,
		TracingEnabled:  envutil.Bool("OTEL_ENABLED", false),
	}
}
