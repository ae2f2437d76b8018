package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/http/response"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (ah *AdminHandler) ListUsers(c *gin.Context) {
	users, err := ah.adminService.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

func (ah *AdminHandler) SetUserActive(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		response.ValidationError(c, "active is required")
		return
	}
	user, err := ah.adminService.SetUserActive(c.Request.Context(), actor, userID, *req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "user updated", user)
}

func (ah *AdminHandler) SetUserRole(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	user, err := ah.adminService.SetUserRole(c.Request.Context(), actor, userID, types.Role(req.Role))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "role updated", user)
}

func (ah *AdminHandler) DeleteUser(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := ah.adminService.DeleteUser(c.Request.Context(), actor, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "user deleted", nil)
}

func (ah *AdminHandler) ListCourses(c *gin.Context) {
	courses, err := ah.adminService.ListCourses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}
