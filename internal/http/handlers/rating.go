package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/http/response"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (rh *RatingHandler) AddOrUpdate(c *gin.Context) {
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
		Rating *int   `json:"rating"`
		Review string `json:"review"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating == nil {
		response.ValidationError(c, "rating is required")
		return
	}
	rating, err := rh.ratingService.AddOrUpdate(c.Request.Context(), actor.UserID, courseID, *req.Rating, req.Review)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "rating saved", rating)
}

func (rh *RatingHandler) Delete(c *gin.Context) {
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
	if err := rh.ratingService.Delete(c.Request.Context(), actor.UserID, courseID); err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "rating deleted", nil)
}

func (rh *RatingHandler) ListByCourse(c *gin.Context) {
	courseID, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, limit := pageParams(c)
	ratings, err := rh.ratingService.ListByCourse(c.Request.Context(), courseID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, ratings, response.NewPagination(page, limit, ratings.Total))
}

func (rh *RatingHandler) GetMine(c *gin.Context) {
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
	rating, err := rh.ratingService.GetUserRating(c.Request.Context(), actor.UserID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rating)
}
