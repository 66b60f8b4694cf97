package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rta-dms/pta-archive-api/internal/service"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

// AuditHandler exposes the recent audit trail to editors.
type AuditHandler struct {
	audit *service.AuditService
}

func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, entries)
}
