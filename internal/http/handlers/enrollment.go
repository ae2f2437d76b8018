package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edulearn/edulearn-backend/internal/http/response"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type EnrollmentHandler struct {
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

func (eh *EnrollmentHandler) Enroll(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req struct {
		CourseID string `json:"courseId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.CourseID == "" {
		response.ValidationError(c, "courseId is required")
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		response.ValidationError(c, "courseId must be a valid id")
		return
	}
	enrollment, err := eh.enrollmentService.Enroll(c.Request.Context(), actor.UserID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

func (eh *EnrollmentHandler) Get(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollmentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollment, err := eh.enrollmentService.GetByID(c.Request.Context(), actor, enrollmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollment)
}

func (eh *EnrollmentHandler) GetByCourse(c *gin.Context) {
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
	enrollment, err := eh.enrollmentService.Get(c.Request.Context(), actor.UserID, courseID)
	if err != nil {
		// Staff browse courses they never enrolled in; absence is not an
		// error for them.
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound && actor.Role.CanManageCourses() {
			response.OK(c, nil)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, enrollment)
}

func (eh *EnrollmentHandler) List(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollments, err := eh.enrollmentService.ListByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}

func (eh *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollmentID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req struct {
		Progress   *float64 `json:"progress"`
		ResourceID string   `json:"resourceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Progress == nil {
		response.ValidationError(c, "progress is required")
		return
	}
	var resourceID *uuid.UUID
	if req.ResourceID != "" {
		parsed, err := uuid.Parse(req.ResourceID)
		if err != nil {
			response.ValidationError(c, "resourceId must be a valid id")
			return
		}
		resourceID = &parsed
	}
	enrollment, err := eh.enrollmentService.UpdateProgressByID(c.Request.Context(), actor, enrollmentID, *req.Progress, resourceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "progress updated", enrollment)
}

func (eh *EnrollmentHandler) UpdateProgressByCourse(c *gin.Context) {
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
	progress, ok := bindProgress(c)
	if !ok {
		return
	}
	enrollment, err := eh.enrollmentService.UpdateProgress(c.Request.Context(), actor.UserID, courseID, progress)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "progress updated", enrollment)
}

func (eh *EnrollmentHandler) MarkResourceComplete(c *gin.Context) {
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
	var req struct {
		LessonID   string `json:"lessonId"`
		ResourceID string `json:"resourceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "lessonId is required")
		return
	}
	raw := req.LessonID
	if raw == "" {
		raw = req.ResourceID
	}
	if raw == "" {
		response.ValidationError(c, "lessonId is required")
		return
	}
	resourceID, err := uuid.Parse(raw)
	if err != nil {
		response.ValidationError(c, "lessonId must be a valid id")
		return
	}
	enrollment, err := eh.enrollmentService.MarkResourceComplete(c.Request.Context(), actor.UserID, courseID, resourceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "lesson marked complete", enrollment)
}

func bindProgress(c *gin.Context) (float64, bool) {
	var req struct {
		Progress *float64 `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Progress == nil {
		response.ValidationError(c, "progress is required")
		return 0, false
	}
	return *req.Progress, true
}
