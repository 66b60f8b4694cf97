package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/dto"
	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/internal/service"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
	"github.com/rta-dms/pta-archive-api/pkg/middleware/requestid"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

type bulkImporter interface {
	Import(ctx context.Context, username, fileName string, r io.Reader) (*dto.BulkImportResult, error)
}

// ImportHandler accepts spreadsheet uploads for bulk archive creation.
type ImportHandler struct {
	importer  bulkImporter
	audit     *service.AuditService
	dashboard dashboardInvalidator
	logger    *zap.Logger
}

func NewImportHandler(importer bulkImporter, audit *service.AuditService, dashboard dashboardInvalidator, logger *zap.Logger) *ImportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportHandler{importer: importer, audit: audit, dashboard: dashboard, logger: logger}
}

// BulkImport godoc
// @Summary     Bulk-create archives from a spreadsheet
// @Tags        archives
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "xlsx or csv file"
// @Success     200 {object} response.Envelope
// @Failure     422 {object} response.Envelope
// @Router      /archives/import [post]
func (h *ImportHandler) BulkImport(c *gin.Context) {
	claims, ok := claimsOrAbort(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing file field"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to open upload"))
		return
	}
	defer file.Close()

	result, err := h.importer.Import(c.Request.Context(), claims.Username, fileHeader.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	if len(result.Errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, response.Envelope{Data: result})
		return
	}

	if h.audit != nil {
		h.audit.Record(c.Request.Context(), claims.Username, models.AuditActionBulkImport,
			"archive", "", fmt.Sprintf("file=%s rows=%d", fileHeader.Filename, result.Imported),
			requestid.Value(c))
	}
	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}

	response.OK(c, result)
}
