package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/http/response"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type ResourceHandler struct {
	resourceService services.ResourceService
}

func NewResourceHandler(resourceService services.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

type resourceRequest struct {
	CourseID string `json:"courseId"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
	Pages    *int   `json:"pages"`
	Order    *int   `json:"order"`
	IsActive *bool  `json:"isActive"`
}

func (r resourceRequest) toInput() services.ResourceInput {
	return services.ResourceInput{
		Title:    r.Title,
		Type:     types.ResourceType(r.Type),
		URL:      r.URL,
		Duration: r.Duration,
		Pages:    r.Pages,
		Order:    r.Order,
		IsActive: r.IsActive,
	}
}

func (rh *ResourceHandler) ListByCourse(c *gin.Context) {
	courseID, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	resources, err := rh.resourceService.ListByCourse(c.Request.Context(), optionalIdentity(c), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resources)
}

func (rh *ResourceHandler) Create(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if req.CourseID == "" {
		response.ValidationError(c, "courseId is required")
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		response.ValidationError(c, "courseId must be a valid id")
		return
	}
	resource, err := rh.resourceService.Create(c.Request.Context(), actor, courseID, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resource)
}

func (rh *ResourceHandler) Update(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	resourceID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	resource, err := rh.resourceService.Update(c.Request.Context(), actor, resourceID, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "resource updated", resource)
}

func (rh *ResourceHandler) Delete(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	resourceID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := rh.resourceService.Delete(c.Request.Context(), actor, resourceID); err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "resource deleted", nil)
}
