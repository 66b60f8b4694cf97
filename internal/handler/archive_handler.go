package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/dto"
	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/internal/service"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
	"github.com/rta-dms/pta-archive-api/pkg/middleware/requestid"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

type archiver interface {
	List(ctx context.Context, filter models.ArchiveFilter) ([]models.Archive, int, error)
	Get(ctx context.Context, id int64) (*models.Archive, error)
	Create(ctx context.Context, dst, username string, req dto.CreateArchiveRequest) (*models.Archive, error)
	Update(ctx context.Context, dst, username string, id int64, req dto.UpdateArchiveRequest) (*models.Archive, error)
	Delete(ctx context.Context, username string, id int64) error
}

type dashboardInvalidator interface {
	Invalidate(ctx context.Context)
}

// ArchiveHandler serves the employee archive endpoints.
type ArchiveHandler struct {
	archives  archiver
	tokens    sessionTokens
	audit     *service.AuditService
	dashboard dashboardInvalidator
	logger    *zap.Logger
}

func NewArchiveHandler(
	archives archiver,
	tokens sessionTokens,
	audit *service.AuditService,
	dashboard dashboardInvalidator,
	logger *zap.Logger,
) *ArchiveHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveHandler{
		archives:  archives,
		tokens:    tokens,
		audit:     audit,
		dashboard: dashboard,
		logger:    logger,
	}
}

// List godoc
// @Summary     List employee archives
// @Tags        archives
// @Produce     json
// @Security    BearerAuth
// @Param       search         query string false "employee number or name"
// @Param       status_id      query int    false "status filter"
// @Param       card_status    query string false "judicial card filter: MISSING, EXPIRED, EXPIRING or VALID"
// @Param       warrant_status query string false "warrant filter: MISSING, EXPIRED, EXPIRING or VALID"
// @Param       page           query int    false "page"
// @Param       per_page       query int    false "page size"
// @Success     200 {object} response.Envelope
// @Router      /archives [get]
func (h *ArchiveHandler) List(c *gin.Context) {
	var query dto.ArchiveListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	archives, total, err := h.archives.List(c.Request.Context(), models.ArchiveFilter{
		Search:        query.Search,
		StatusID:      query.StatusID,
		CardStatus:    query.CardStatus,
		WarrantStatus: query.WarrantStatus,
		Page:          query.Page,
		PerPage:       query.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, archives, response.NewPagination(query.Page, query.PerPage, total))
}

// Get godoc
// @Summary     Get one archive with its documents
// @Tags        archives
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "archive id"
// @Success     200 {object} response.Envelope
// @Failure     404 {object} response.Envelope
// @Router      /archives/{id} [get]
func (h *ArchiveHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "archive id must be numeric")
		return
	}

	archive, err := h.archives.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, archive)
}

// Create godoc
// @Summary     Create an archive and upload its documents
// @Tags        archives
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       archive body dto.CreateArchiveRequest true "archive payload"
// @Success     201 {object} response.Envelope
// @Failure     409 {object} response.Envelope
// @Router      /archives [post]
func (h *ArchiveHandler) Create(c *gin.Context) {
	claims, ok := claimsOrAbort(c)
	if !ok {
		return
	}
	dst, ok := dstOrAbort(c, h.tokens, claims)
	if !ok {
		return
	}

	var req dto.CreateArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	archive, err := h.archives.Create(c.Request.Context(), dst, claims.Username, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.audit != nil {
		h.audit.Record(c.Request.Context(), claims.Username, models.AuditActionArchiveCreate,
			"archive", strconv.FormatInt(archive.SystemID, 10),
			fmt.Sprintf("empno=%s documents=%d", archive.EmpNo, len(archive.Documents)),
			requestid.Value(c))
	}
	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}

	response.Created(c, archive)
}

// Update godoc
// @Summary     Update an archive
// @Tags        archives
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                      true "archive id"
// @Param       archive body dto.UpdateArchiveRequest true "update payload"
// @Success     200 {object} response.Envelope
// @Failure     404 {object} response.Envelope
// @Router      /archives/{id} [put]
func (h *ArchiveHandler) Update(c *gin.Context) {
	claims, ok := claimsOrAbort(c)
	if !ok {
		return
	}
	dst, ok := dstOrAbort(c, h.tokens, claims)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "archive id must be numeric")
		return
	}

	var req dto.UpdateArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	archive, err := h.archives.Update(c.Request.Context(), dst, claims.Username, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.audit != nil {
		h.audit.Record(c.Request.Context(), claims.Username, models.AuditActionArchiveUpdate,
			"archive", strconv.FormatInt(id, 10),
			fmt.Sprintf("added=%d removed=%d", len(req.AddDocuments), len(req.RemoveDocumentIDs)),
			requestid.Value(c))
	}
	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}

	response.OK(c, archive)
}

// Delete godoc
// @Summary     Disable an archive and its documents
// @Tags        archives
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "archive id"
// @Success     200 {object} response.Envelope
// @Failure     404 {object} response.Envelope
// @Router      /archives/{id} [delete]
func (h *ArchiveHandler) Delete(c *gin.Context) {
	claims, ok := claimsOrAbort(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "archive id must be numeric")
		return
	}

	if err := h.archives.Delete(c.Request.Context(), claims.Username, id); err != nil {
		response.Error(c, err)
		return
	}

	if h.audit != nil {
		h.audit.Record(c.Request.Context(), claims.Username, models.AuditActionArchiveDelete,
			"archive", strconv.FormatInt(id, 10), "", requestid.Value(c))
	}
	if h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}

	response.OK(c, gin.H{"deleted": id})
}

type archiveExporter interface {
	CSV(ctx context.Context, filter models.ArchiveFilter) ([]byte, error)
	PDF(ctx context.Context, filter models.ArchiveFilter) ([]byte, error)
}

// ExportHandler renders archive listings as downloadable files.
type ExportHandler struct {
	exports archiveExporter
}

func NewExportHandler(exports archiveExporter) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary     Export the archive listing
// @Tags        archives
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       format    query string false "csv or pdf" default(csv)
// @Param       search    query string false "employee number or name"
// @Param       status_id query int    false "status filter"
// @Success     200
// @Router      /archives/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	var query dto.ArchiveListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	filter := models.ArchiveFilter{Search: query.Search, StatusID: query.StatusID}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		raw, err := h.exports.CSV(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="archives.csv"`)
		c.Data(200, "text/csv", raw)

	case "pdf":
		raw, err := h.exports.PDF(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="archives.pdf"`)
		c.Data(200, "application/pdf", raw)

	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
