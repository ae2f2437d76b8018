package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogrepo "github.com/edulearn/edulearn-backend/internal/data/repos/catalog"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/http/response"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type CourseHandler struct {
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

type courseRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Duration     string          `json:"duration"`
	Price        *float64        `json:"price"`
	Category     string          `json:"category"`
	Level        string          `json:"level"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Objectives   json.RawMessage `json:"objectives"`
	Requirements json.RawMessage `json:"requirements"`
	Modules      json.RawMessage `json:"modules"`
}

func (r courseRequest) toInput() services.CourseInput {
	return services.CourseInput{
		Title:        r.Title,
		Description:  r.Description,
		Duration:     r.Duration,
		Price:        r.Price,
		Category:     types.Category(r.Category),
		Level:        types.Level(r.Level),
		ThumbnailURL: r.ThumbnailURL,
		Objectives:   r.Objectives,
		Requirements: r.Requirements,
		Modules:      r.Modules,
	}
}

func (ch *CourseHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	filter := catalogrepo.CourseFilter{
		Search:   c.Query("search"),
		Category: types.Category(c.Query("category")),
		Level:    types.Level(c.Query("level")),
		Page:     page,
		Limit:    limit,
	}
	if raw := c.Query("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	courses, total, err := ch.courseService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, courses, response.NewPagination(page, limit, total))
}

func (ch *CourseHandler) Get(c *gin.Context) {
	courseID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	course, err := ch.courseService.Get(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, course)
}

func (ch *CourseHandler) Create(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	course, err := ch.courseService.Create(c.Request.Context(), actor, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

func (ch *CourseHandler) Update(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	courseID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	course, err := ch.courseService.Update(c.Request.Context(), actor, courseID, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "course updated", course)
}

func (ch *CourseHandler) Delete(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	courseID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := ch.courseService.Delete(c.Request.Context(), actor, courseID); err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "course deleted", nil)
}

func (ch *CourseHandler) ListMine(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	courses, err := ch.courseService.ListOwned(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}
