package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/http/response"
	"github.com/edulearn/edulearn-backend/internal/services"
)

type CertificateHandler struct {
	certificateService services.CertificateService
}

func NewCertificateHandler(certificateService services.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

func (ch *CertificateHandler) Issue(c *gin.Context) {
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
	enrollment, err := ch.certificateService.Issue(c.Request.Context(), actor.UserID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKMessage(c, "certificate issued", enrollment)
}

func (ch *CertificateHandler) Get(c *gin.Context) {
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
	enrollment, err := ch.certificateService.Get(c.Request.Context(), actor.UserID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollment)
}

func (ch *CertificateHandler) List(c *gin.Context) {
	actor, err := identity(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollments, err := ch.certificateService.ListByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, enrollments)
}
