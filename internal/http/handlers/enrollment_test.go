package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/http/response"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/ctxutil"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type stubEnrollmentService struct {
	enrollment *types.Enrollment
	err        error
}

func (s *stubEnrollmentService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	return s.enrollment, s.err
}

func (s *stubEnrollmentService) Get(ctx context.Context, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	return s.enrollment, s.err
}

func (s *stubEnrollmentService) GetByID(ctx context.Context, actor services.Identity, enrollmentID uuid.UUID) (*types.Enrollment, error) {
	return s.enrollment, s.err
}

func (s *stubEnrollmentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Enrollment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*types.Enrollment{s.enrollment}, nil
}

func (s *stubEnrollmentService) UpdateProgress(ctx context.Context, userID, courseID uuid.UUID, progress float64) (*types.Enrollment, error) {
	return s.enrollment, s.err
}

func (s *stubEnrollmentService) UpdateProgressByID(ctx context.Context, actor services.Identity, enrollmentID uuid.UUID, progress float64, resourceID *uuid.UUID) (*types.Enrollment, error) {
	return s.enrollment, s.err
}

func (s *stubEnrollmentService) MarkResourceComplete(ctx context.Context, userID, courseID, resourceID uuid.UUID) (*types.Enrollment, error) {
	return s.enrollment, s.err
}

func authedContext(w *httptest.ResponseRecorder, req *http.Request, userID uuid.UUID, role types.Role) (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, r := gin.CreateTestContext(w)
	ctx := ctxutil.WithRequestData(req.Context(), &ctxutil.RequestData{UserID: userID, Role: role})
	c.Request = req.WithContext(ctx)
	return c, r
}

func enrollBody(courseID string) *strings.Reader {
	return strings.NewReader(`{"courseId":"` + courseID + `"}`)
}

func TestEnrollHandlerSuccess(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	stub := &stubEnrollmentService{
		enrollment: &types.Enrollment{ID: uuid.New(), UserID: userID, CourseID: courseID},
	}
	handler := NewEnrollmentHandler(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/enrollments", enrollBody(courseID.String()))
	req.Header.Set("Content-Type", "application/json")
	c, _ := authedContext(w, req, userID, types.RoleStudent)

	handler.Enroll(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var env response.Envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
}

func TestEnrollHandlerConflict(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	stub := &stubEnrollmentService{
		err: apierr.Conflict("already_enrolled", errors.New("user is already enrolled in this course")),
	}
	handler := NewEnrollmentHandler(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/enrollments", enrollBody(courseID.String()))
	req.Header.Set("Content-Type", "application/json")
	c, _ := authedContext(w, req, userID, types.RoleStudent)

	handler.Enroll(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var env response.Envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "already_enrolled", env.Code)
}

func TestEnrollHandlerBadCourseID(t *testing.T) {
	handler := NewEnrollmentHandler(&stubEnrollmentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/enrollments", enrollBody("not-a-uuid"))
	req.Header.Set("Content-Type", "application/json")
	c, _ := authedContext(w, req, uuid.New(), types.RoleStudent)

	handler.Enroll(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollHandlerUnauthenticated(t *testing.T) {
	handler := NewEnrollmentHandler(&stubEnrollmentService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/api/enrollments", enrollBody(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Enroll(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProgressRequiresBody(t *testing.T) {
	handler := NewEnrollmentHandler(&stubEnrollmentService{enrollment: &types.Enrollment{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/enrollments/"+uuid.NewString()+"/progress", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	c, _ := authedContext(w, req, uuid.New(), types.RoleStudent)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	handler.UpdateProgress(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkResourceCompleteRequiresResourceID(t *testing.T) {
	handler := NewEnrollmentHandler(&stubEnrollmentService{enrollment: &types.Enrollment{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/enrollments/course/"+uuid.NewString()+"/lesson", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	c, _ := authedContext(w, req, uuid.New(), types.RoleStudent)
	c.Params = gin.Params{{Key: "courseId", Value: uuid.NewString()}}

	handler.MarkResourceComplete(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

var _ services.EnrollmentService = (*stubEnrollmentService)(nil)
