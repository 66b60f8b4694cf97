package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

type dashboardCounter interface {
	Counts(ctx context.Context) (*models.DashboardCounts, error)
}

// DashboardHandler serves the landing page counters.
type DashboardHandler struct {
	dashboard dashboardCounter
}

func NewDashboardHandler(dashboard dashboardCounter) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Counts godoc
// @Summary     Archive summary counts
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} response.Envelope
// @Router      /dashboard/counts [get]
func (h *DashboardHandler) Counts(c *gin.Context) {
	counts, err := h.dashboard.Counts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}
