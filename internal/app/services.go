package app

import (
	"gorm.io/gorm"

	"github.com/edulearn/edulearn-backend/internal/platform/logger"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Course      services.CourseService
	Resource    services.ResourceService
	Enrollment  services.EnrollmentService
	Certificate services.CertificateService
	Rating      services.RatingService
	Analytics   services.AnalyticsService
	Admin       services.AdminService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:        services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:        services.NewUserService(db, log, repos.User, repos.Enrollment),
		Course:      services.NewCourseService(db, log, repos.Course),
		Resource:    services.NewResourceService(db, log, repos.Course, repos.Resource),
		Enrollment:  services.NewEnrollmentService(db, log, repos.Enrollment, repos.Course, repos.Resource),
		Certificate: services.NewCertificateService(db, log, repos.Enrollment),
		Rating:      services.NewRatingService(db, log, repos.Rating, repos.Enrollment, repos.Course),
		Analytics:   services.NewAnalyticsService(db, log, repos.User, repos.Course, repos.Enrollment, repos.Rating),
		Admin:       services.NewAdminService(db, log, repos.User, repos.Course, repos.Enrollment, repos.Rating),
	}
}
