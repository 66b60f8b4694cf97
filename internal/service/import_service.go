package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/dto"
	"github.com/rta-dms/pta-archive-api/internal/models"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

const defaultImportStatus = "INACTIVE"

type statusResolver interface {
	Statuses(ctx context.Context) ([]models.EmployeeStatus, error)
}

type importHRStore interface {
	List(ctx context.Context, search string) ([]models.HREmployee, error)
	ArchivedEmpNos(ctx context.Context) (map[string]struct{}, error)
	UpdateProfileTx(ctx context.Context, tx *sqlx.Tx, empNo string, profile models.HRProfile) error
}

type importRecorder interface {
	RecordImportedRows(n int)
}

// ImportService bulk-creates archive records from a spreadsheet. The
// import is strictly all or nothing: a single bad row rejects the
// whole file with per-row errors, and nothing is written. Imported
// archives start without documents.
type ImportService struct {
	archives  archiveStore
	employees importHRStore
	lookups   statusResolver
	metrics   importRecorder
	maxRows   int
	logger    *zap.Logger
}

func NewImportService(
	archives archiveStore,
	employees importHRStore,
	lookups statusResolver,
	metrics importRecorder,
	maxRows int,
	logger *zap.Logger,
) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows <= 0 {
		maxRows = 5000
	}

	return &ImportService{
		archives:  archives,
		employees: employees,
		lookups:   lookups,
		metrics:   metrics,
		maxRows:   maxRows,
		logger:    logger,
	}
}

type importRow struct {
	empNo    string
	status   string
	notes    string
	hireDate string
	profile  models.HRProfile
}

type importEntry struct {
	archive *models.Archive
	profile models.HRProfile
}

// Import parses the uploaded file and creates one archive per row.
func (s *ImportService) Import(ctx context.Context, username, fileName string, r io.Reader) (*dto.BulkImportResult, error) {
	rows, err := s.parse(fileName, r)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file contains no data rows")
	}
	if len(rows) > s.maxRows {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("file exceeds the limit of %d rows", s.maxRows))
	}

	statusByName, err := s.statusMap(ctx)
	if err != nil {
		return nil, err
	}

	hrByEmpNo, err := s.hrMap(ctx)
	if err != nil {
		return nil, err
	}

	archived, err := s.employees.ArchivedEmpNos(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archived set")
	}

	var rowErrors []dto.ImportRowError
	seen := make(map[string]struct{}, len(rows))
	valid := make([]importEntry, 0, len(rows))

	for i, row := range rows {
		// The header is row one in the sheet, data starts at two.
		sheetRow := i + 2

		if row.empNo == "" {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: sheetRow, Message: "employee number is empty"})
			continue
		}
		if _, dup := seen[row.empNo]; dup {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: sheetRow, Message: fmt.Sprintf("employee %s appears more than once", row.empNo)})
			continue
		}
		seen[row.empNo] = struct{}{}

		employee, ok := hrByEmpNo[row.empNo]
		if !ok {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: sheetRow, Message: fmt.Sprintf("employee %s not found in HR list", row.empNo)})
			continue
		}
		if _, already := archived[row.empNo]; already {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: sheetRow, Message: fmt.Sprintf("employee %s is already archived", row.empNo)})
			continue
		}

		// Any status name that does not match a configured status
		// falls back to Inactive, the same as an empty cell.
		statusID, ok := statusByName[strings.ToUpper(row.status)]
		if !ok {
			statusID, ok = statusByName[defaultImportStatus]
		}
		if !ok {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: sheetRow, Message: fmt.Sprintf("no %s status configured", defaultImportStatus)})
			continue
		}

		hireDate, err := parseDate(row.hireDate, "hire_date")
		if err != nil {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: sheetRow, Message: "hire date must be YYYY-MM-DD"})
			continue
		}

		valid = append(valid, importEntry{
			archive: &models.Archive{
				EmpNo:       employee.EmpNo,
				EmpName:     employee.EmpName,
				StatusID:    statusID,
				HireDate:    hireDate,
				Notes:       row.notes,
				CreatedBy:   username,
				CreatedDate: time.Now(),
			},
			profile: row.profile,
		})
	}

	if len(rowErrors) > 0 {
		return &dto.BulkImportResult{Imported: 0, Errors: rowErrors}, nil
	}

	tx, err := s.archives.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open transaction")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, entry := range valid {
		if err := s.employees.UpdateProfileTx(ctx, tx, entry.archive.EmpNo, entry.profile); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update HR profile")
		}

		id, err := s.archives.NextSystemIDTx(ctx, tx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate archive id")
		}
		entry.archive.SystemID = id

		if err := s.archives.InsertTx(ctx, tx, entry.archive); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert archive")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit import")
	}

	if s.metrics != nil {
		s.metrics.RecordImportedRows(len(valid))
	}
	s.logger.Info("bulk import committed",
		zap.String("username", username),
		zap.Int("rows", len(valid)))

	return &dto.BulkImportResult{Imported: len(valid)}, nil
}

func (s *ImportService) parse(fileName string, r io.Reader) ([]importRow, error) {
	name := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(name, ".xlsx"):
		return parseXLSX(r)
	case strings.HasSuffix(name, ".csv"):
		return parseCSV(r)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported file type, expected .xlsx or .csv")
	}
}

func parseXLSX(r io.Reader) ([]importRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is not a valid workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "workbook has no sheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "failed to read workbook rows")
	}

	return recordsToRows(raw), nil
}

func parseCSV(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is not valid CSV")
	}

	return recordsToRows(raw), nil
}

// recordsToRows drops the header and maps columns by position: number,
// status, notes, hire date, then the optional HR profile attributes
// (job title, nationality, email, phone, manager, department, section).
func recordsToRows(records [][]string) []importRow {
	if len(records) <= 1 {
		return nil
	}

	cell := func(record []string, i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	rows := make([]importRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, importRow{
			empNo:    cell(record, 0),
			status:   cell(record, 1),
			notes:    cell(record, 2),
			hireDate: cell(record, 3),
			profile: models.HRProfile{
				JobTitle:    cell(record, 4),
				Nationality: cell(record, 5),
				Email:       cell(record, 6),
				Phone:       cell(record, 7),
				Manager:     cell(record, 8),
				Department:  cell(record, 9),
				Section:     cell(record, 10),
			},
		})
	}

	return rows
}

func (s *ImportService) statusMap(ctx context.Context) (map[string]int64, error) {
	statuses, err := s.lookups.Statuses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load statuses")
	}

	byName := make(map[string]int64, len(statuses))
	for _, status := range statuses {
		byName[strings.ToUpper(status.Name)] = status.SystemID
	}

	return byName, nil
}

func (s *ImportService) hrMap(ctx context.Context) (map[string]models.HREmployee, error) {
	employees, err := s.employees.List(ctx, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load HR list")
	}

	byEmpNo := make(map[string]models.HREmployee, len(employees))
	for _, employee := range employees {
		byEmpNo[employee.EmpNo] = employee
	}

	return byEmpNo, nil
}
