package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/rta-dms/pta-archive-api/internal/dto"
	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

type hrLister interface {
	List(ctx context.Context, search string, unarchivedOnly bool, page, perPage int) ([]models.HREmployee, int, error)
	Get(ctx context.Context, empNo string) (*models.HREmployee, error)
}

// EmployeeHandler serves the HR master list.
type EmployeeHandler struct {
	employees hrLister
}

func NewEmployeeHandler(employees hrLister) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// List godoc
// @Summary     List HR employees with archive flags
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       search     query string false "employee number or name"
// @Param       unarchived query bool   false "only employees without an active archive"
// @Param       page       query int    false "page"
// @Param       per_page   query int    false "page size"
// @Success     200 {object} response.Envelope
// @Router      /hr/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var query dto.EmployeeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	employees, total, err := h.employees.List(c.Request.Context(), query.Search, query.Unarchived, query.Page, query.PerPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, employees, response.NewPagination(query.Page, query.PerPage, total))
}

// Get godoc
// @Summary     Get one HR employee
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       empno path string true "employee number"
// @Success     200 {object} response.Envelope
// @Failure     404 {object} response.Envelope
// @Router      /hr/employees/{empno} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employees.Get(c.Request.Context(), c.Param("empno"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, employee)
}
