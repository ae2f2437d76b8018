package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	httpH "github.com/edulearn/edulearn-backend/internal/http/handlers"
	httpMW "github.com/edulearn/edulearn-backend/internal/http/middleware"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	TracingEnabled bool

	AuthMiddleware *httpMW.AuthMiddleware
	RateLimiter    *httpMW.RateLimiter

	AuthHandler        *httpH.AuthHandler
	UserHandler        *httpH.UserHandler
	CourseHandler      *httpH.CourseHandler
	ResourceHandler    *httpH.ResourceHandler
	EnrollmentHandler  *httpH.EnrollmentHandler
	CertificateHandler *httpH.CertificateHandler
	RatingHandler      *httpH.RatingHandler
	AnalyticsHandler   *httpH.AnalyticsHandler
	AdminHandler       *httpH.AdminHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit())
	}

	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/users/register", cfg.AuthHandler.Register)
			api.POST("/users/login", cfg.AuthHandler.Login)
		}
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.List)
			api.GET("/courses/:id", cfg.CourseHandler.Get)
		}
		if cfg.RatingHandler != nil {
			api.GET("/ratings/course/:courseId", cfg.RatingHandler.ListByCourse)
		}
		if cfg.ResourceHandler != nil && cfg.AuthMiddleware != nil {
			api.GET("/resources/course/:courseId", cfg.AuthMiddleware.OptionalAuth(), cfg.ResourceHandler.ListByCourse)
		}
	}

	protected := api.Group("")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.UserHandler != nil {
			protected.GET("/users/profile", cfg.UserHandler.GetProfile)
			protected.PUT("/users/profile", cfg.UserHandler.UpdateProfile)
			protected.GET("/users/:userId/courses", cfg.UserHandler.GetUserCourses)
		}

		if cfg.EnrollmentHandler != nil {
			protected.POST("/enrollments", cfg.EnrollmentHandler.Enroll)
			protected.GET("/enrollments/user", cfg.EnrollmentHandler.List)
			protected.GET("/enrollments/course/:courseId", cfg.EnrollmentHandler.GetByCourse)
			protected.GET("/enrollments/:id", cfg.EnrollmentHandler.Get)
			protected.PUT("/enrollments/:id/progress", cfg.EnrollmentHandler.UpdateProgress)
			protected.PUT("/enrollments/course/:courseId/progress", cfg.EnrollmentHandler.UpdateProgressByCourse)
			protected.PUT("/enrollments/course/:courseId/lesson", cfg.EnrollmentHandler.MarkResourceComplete)
		}

		if cfg.CertificateHandler != nil {
			protected.POST("/certificates/course/:courseId", cfg.CertificateHandler.Issue)
			protected.GET("/certificates/course/:courseId", cfg.CertificateHandler.Get)
			protected.GET("/certificates/user", cfg.CertificateHandler.List)
		}

		if cfg.RatingHandler != nil {
			protected.POST("/ratings/course/:courseId", cfg.RatingHandler.AddOrUpdate)
			protected.DELETE("/ratings/course/:courseId", cfg.RatingHandler.Delete)
			protected.GET("/ratings/course/:courseId/user", cfg.RatingHandler.GetMine)
		}
	}

	staff := protected.Group("")
	{
		if cfg.AuthMiddleware != nil {
			staff.Use(cfg.AuthMiddleware.RequireRole(types.RoleInstructor, types.RoleAdmin))
		}
		if cfg.CourseHandler != nil {
			staff.GET("/courses/instructor", cfg.CourseHandler.ListMine)
			staff.POST("/courses", cfg.CourseHandler.Create)
			staff.PUT("/courses/:id", cfg.CourseHandler.Update)
			staff.DELETE("/courses/:id", cfg.CourseHandler.Delete)
		}
		if cfg.ResourceHandler != nil {
			staff.POST("/resources", cfg.ResourceHandler.Create)
			staff.PUT("/resources/:id", cfg.ResourceHandler.Update)
			staff.DELETE("/resources/:id", cfg.ResourceHandler.Delete)
		}
		if cfg.AnalyticsHandler != nil {
			staff.GET("/analytics/instructor", cfg.AnalyticsHandler.InstructorDashboard)
			staff.GET("/analytics/course/:courseId", cfg.AnalyticsHandler.CourseAnalytics)
		}
	}

	admin := protected.Group("")
	{
		if cfg.AuthMiddleware != nil {
			admin.Use(cfg.AuthMiddleware.RequireRole(types.RoleAdmin))
		}
		if cfg.AnalyticsHandler != nil {
			admin.GET("/analytics/admin", cfg.AnalyticsHandler.PlatformStats)
			admin.GET("/admin/stats", cfg.AnalyticsHandler.PlatformStats)
		}
		if cfg.AdminHandler != nil {
			admin.GET("/admin/users", cfg.AdminHandler.ListUsers)
			admin.GET("/admin/courses", cfg.AdminHandler.ListCourses)
			admin.PUT("/admin/users/:userId/status", cfg.AdminHandler.SetUserActive)
			admin.PUT("/admin/users/:userId/role", cfg.AdminHandler.SetUserRole)
			admin.DELETE("/admin/users/:userId", cfg.AdminHandler.DeleteUser)
		}
	}

	return r
}
