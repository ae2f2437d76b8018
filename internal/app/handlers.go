package app

import (
	"gorm.io/gorm"

	"github.com/edulearn/edulearn-backend/internal/http/handlers"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Course      *handlers.CourseHandler
	Resource    *handlers.ResourceHandler
	Enrollment  *handlers.EnrollmentHandler
	Certificate *handlers.CertificateHandler
	Rating      *handlers.RatingHandler
	Analytics   *handlers.AnalyticsHandler
	Admin       *handlers.AdminHandler
	Health      *handlers.HealthHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:        handlers.NewAuthHandler(services.Auth),
		User:        handlers.NewUserHandler(services.User),
		Course:      handlers.NewCourseHandler(services.Course),
		Resource:    handlers.NewResourceHandler(services.Resource),
		Enrollment:  handlers.NewEnrollmentHandler(services.Enrollment),
		Certificate: handlers.NewCertificateHandler(services.Certificate),
		Rating:      handlers.NewRatingHandler(services.Rating),
		Analytics:   handlers.NewAnalyticsHandler(services.Analytics),
		Admin:       handlers.NewAdminHandler(services.Admin),
		Health:      handlers.NewHealthHandler(db),
	}
}
