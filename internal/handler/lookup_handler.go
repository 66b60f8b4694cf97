package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/rta-dms/pta-archive-api/internal/service"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

// LookupHandler serves the reference tables for the UI dropdowns.
type LookupHandler struct {
	lookups *service.LookupService
}

func NewLookupHandler(lookups *service.LookupService) *LookupHandler {
	return &LookupHandler{lookups: lookups}
}

func (h *LookupHandler) Statuses(c *gin.Context) {
	statuses, err := h.lookups.Statuses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, statuses)
}

func (h *LookupHandler) DocumentTypes(c *gin.Context) {
	types, err := h.lookups.DocumentTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, types)
}

func (h *LookupHandler) Legislations(c *gin.Context) {
	legislations, err := h.lookups.Legislations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, legislations)
}
