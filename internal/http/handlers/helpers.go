package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/ctxutil"
	"github.com/edulearn/edulearn-backend/internal/services"
)

// identity pulls the authenticated caller from the request context.
func identity(c *gin.Context) (services.Identity, error) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return services.Identity{}, apierr.Unauthorized("missing_token", errors.New("authentication required"))
	}
	return services.Identity{UserID: rd.UserID, Role: rd.Role}, nil
}

// optionalIdentity returns nil for anonymous requests.
func optionalIdentity(c *gin.Context) *services.Identity {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return nil
	}
	return &services.Identity{UserID: rd.UserID, Role: rd.Role}
}

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apierr.Validation("invalid_id", fmt.Errorf("invalid %s: %w", name, err))
	}
	return id, nil
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
