package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
)

// Envelope is the uniform JSON body every endpoint returns.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Code       string      `json:"code,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func NewPagination(page, limit int, total int64) *Pagination {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func Paged(c *gin.Context, data interface{}, pagination *Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination})
}

// Error maps any error onto the envelope, resolving status and code from
// the apierr chain. Unknown errors come back as a 500 without leaking the
// underlying message.
func Error(c *gin.Context, err error) {
	status := apierr.Status(err)
	code := apierr.Code(err)

	message := "internal server error"
	if status < http.StatusInternalServerError && err != nil {
		message = err.Error()
	}
	c.JSON(status, Envelope{Success: false, Message: message, Code: code})
}

// ValidationError reports field-level failures from request binding.
func ValidationError(c *gin.Context, errs interface{}) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "validation failed",
		Code:    "validation_failed",
		Errors:  errs,
	})
}
