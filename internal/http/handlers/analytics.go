package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/http/response"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (ah *AnalyticsHandler) InstructorDashboard(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	dashboard, err := ah.analyticsService.InstructorDashboard(c.Request.Context(), actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dashboard)
}

func (ah *AnalyticsHandler) CourseAnalytics(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	courseID, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	analytics, err := ah.analyticsService.CourseAnalytics(c.Request.Context(), actor, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, analytics)
}

func (ah *AnalyticsHandler) PlatformStats(c *gin.Context) {
	stats, err := ah.analyticsService.PlatformStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
