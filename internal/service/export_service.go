package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rta-dms/pta-archive-api/internal/models"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
	"github.com/rta-dms/pta-archive-api/pkg/export"
)

// exportPageSize bounds one export to a sane upper limit.
const exportPageSize = 100000

var exportHeaders = []string{"Employee No", "Employee Name", "Status", "Hire Date", "Card Expiry", "Warrant Expiry", "Notes", "Created By", "Created Date"}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

type archiveLister interface {
	List(ctx context.Context, filter models.ArchiveFilter) ([]models.Archive, int, error)
}

// ExportService renders archive listings as CSV or PDF.
type ExportService struct {
	archives archiveLister
}

func NewExportService(archives archiveLister) *ExportService {
	return &ExportService{archives: archives}
}

func (s *ExportService) dataset(ctx context.Context, filter models.ArchiveFilter) (export.Dataset, error) {
	filter.Page = 1
	filter.PerPage = exportPageSize

	archives, _, err := s.archives.List(ctx, filter)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archives for export")
	}

	rows := make([]map[string]string, 0, len(archives))
	for _, archive := range archives {
		rows = append(rows, map[string]string{
			"Employee No":    archive.EmpNo,
			"Employee Name":  archive.EmpName,
			"Status":         archive.StatusName,
			"Hire Date":      formatDate(archive.HireDate),
			"Card Expiry":    formatDate(archive.CardExpiry),
			"Warrant Expiry": formatDate(archive.WarrantExpiry),
			"Notes":          archive.Notes,
			"Created By":     archive.CreatedBy,
			"Created Date":   archive.CreatedDate.Format(time.DateOnly),
		})
	}

	return export.Dataset{
		Title:   "Employee Archives (" + strconv.Itoa(len(rows)) + ")",
		Headers: exportHeaders,
		Rows:    rows,
	}, nil
}

func (s *ExportService) CSV(ctx context.Context, filter models.ArchiveFilter) ([]byte, error) {
	ds, err := s.dataset(ctx, filter)
	if err != nil {
		return nil, err
	}

	raw, err := export.ToCSV(ds)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render CSV")
	}

	return raw, nil
}

func (s *ExportService) PDF(ctx context.Context, filter models.ArchiveFilter) ([]byte, error) {
	ds, err := s.dataset(ctx, filter)
	if err != nil {
		return nil, err
	}

	raw, err := export.ToPDF(ds)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render PDF")
	}

	return raw, nil
}
