package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type stubAuthService struct {
	identity services.Identity
	err      error
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string, role types.Role) (*types.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	return nil, "", nil
}

func (s *stubAuthService) IdentityFromToken(ctx context.Context, tokenString string) (services.Identity, error) {
	return s.identity, s.err
}

func (s *stubAuthService) AccessTTL() time.Duration { return time.Hour }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func newRouter(t *testing.T, auth services.AuthService, roles ...types.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	am := NewAuthMiddleware(testLogger(t), auth)
	r := gin.New()
	group := r.Group("/", am.RequireAuth())
	if len(roles) > 0 {
		group.Use(am.RequireRole(roles...))
	}
	group.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRequireAuthMissingToken(t *testing.T) {
	r := newRouter(t, &stubAuthService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := newRouter(t, &stubAuthService{err: apierr.Unauthorized("invalid_token", nil)})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthPassesIdentity(t *testing.T) {
	stub := &stubAuthService{identity: services.Identity{UserID: uuid.New(), Role: types.RoleStudent}}
	r := newRouter(t, stub)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsStudent(t *testing.T) {
	stub := &stubAuthService{identity: services.Identity{UserID: uuid.New(), Role: types.RoleStudent}}
	r := newRouter(t, stub, types.RoleAdmin)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	stub := &stubAuthService{identity: services.Identity{UserID: uuid.New(), Role: types.RoleAdmin}}
	r := newRouter(t, stub, types.RoleInstructor, types.RoleAdmin)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

var _ services.AuthService = (*stubAuthService)(nil)
