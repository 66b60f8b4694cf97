package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/internal/service"
	"github.com/rta-dms/pta-archive-api/pkg/middleware/requestid"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

type documentDownloader interface {
	Download(ctx context.Context, dst string, docNumber int64) (*models.StoredDocument, *models.Document, error)
}

// DocumentHandler streams stored documents back to the client.
type DocumentHandler struct {
	documents documentDownloader
	tokens    sessionTokens
	audit     *service.AuditService
	logger    *zap.Logger
}

func NewDocumentHandler(documents documentDownloader, tokens sessionTokens, audit *service.AuditService, logger *zap.Logger) *DocumentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentHandler{documents: documents, tokens: tokens, audit: audit, logger: logger}
}

// Download godoc
// @Summary     Download one archived document
// @Tags        documents
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       docNumber path int true "DMS document number"
// @Success     200
// @Failure     404 {object} response.Envelope
// @Router      /documents/{docNumber}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	claims, ok := claimsOrAbort(c)
	if !ok {
		return
	}
	dst, ok := dstOrAbort(c, h.tokens, claims)
	if !ok {
		return
	}

	docNumber, err := strconv.ParseInt(c.Param("docNumber"), 10, 64)
	if err != nil {
		response.ValidationError(c, "document number must be numeric")
		return
	}

	stored, _, err := h.documents.Download(c.Request.Context(), dst, docNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.audit != nil {
		h.audit.Record(c.Request.Context(), claims.Username, models.AuditActionDownload,
			"document", strconv.FormatInt(docNumber, 10), stored.FileName, requestid.Value(c))
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stored.FileName))
	c.Data(200, "application/octet-stream", stored.Content)
}
