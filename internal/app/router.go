package app

import (
	internalhttp "github.com/edulearn/edulearn-backend/internal/http"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *internalhttp.Server {
	return internalhttp.NewServer(internalhttp.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		TracingEnabled: cfg.TracingEnabled,

		AuthMiddleware: middleware.Auth,
		RateLimiter:    middleware.RateLimiter,

		AuthHandler:        handlers.Auth,
		UserHandler:        handlers.User,
		CourseHandler:      handlers.Course,
		ResourceHandler:    handlers.Resource,
		EnrollmentHandler:  handlers.Enrollment,
		CertificateHandler: handlers.Certificate,
		RatingHandler:      handlers.Rating,
		AnalyticsHandler:   handlers.Analytics,
		AdminHandler:       handlers.Admin,
		HealthHandler:      handlers.Health,
	})
}
