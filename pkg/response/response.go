package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

// Envelope is the standard JSON response wrapper.
type Envelope struct {
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Meta       interface{} `json:"meta,omitempty"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// OK writes a 200 response with the given payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Data: data})
}

// Paginated writes a 200 response with pagination metadata.
func Paginated(c *gin.Context, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, Envelope{Data: data, Pagination: p})
}

// Error maps any error to the envelope format. Typed errors keep their
// status and code, everything else becomes a 500.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, Envelope{
		Error: &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
	})
}

// ValidationError writes a 400 response carrying field-level details.
func ValidationError(c *gin.Context, details interface{}) {
	c.JSON(http.StatusBadRequest, Envelope{
		Error: &ErrorBody{
			Code:    appErrors.ErrValidation.Code,
			Message: appErrors.ErrValidation.Message,
			Details: details,
		},
	})
}

// NewPagination computes derived pagination fields.
func NewPagination(page, perPage, total int) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
