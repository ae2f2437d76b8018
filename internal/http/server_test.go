package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpH "github.com/edulearn/edulearn-backend/internal/http/handlers"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

func TestServerServesRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	require.NoError(t, err)

	server := NewServer(RouterConfig{
		Log:           log,
		HealthHandler: httpH.NewHealthHandler(nil),
	})
	require.NotNil(t, server.Engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.Engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServerShutdownBeforeRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	require.NoError(t, err)

	server := NewServer(RouterConfig{Log: log})
	assert.NoError(t, server.Shutdown(context.Background()))
}
