package service

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/dms"
	"github.com/rta-dms/pta-archive-api/internal/dto"
	"github.com/rta-dms/pta-archive-api/internal/models"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

type archiveStore interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	List(ctx context.Context, filter models.ArchiveFilter) ([]models.Archive, int, error)
	GetByID(ctx context.Context, id int64) (*models.Archive, error)
	ExistsByEmpNo(ctx context.Context, empNo string) (bool, error)
	NextSystemIDTx(ctx context.Context, tx *sqlx.Tx) (int64, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, archive *models.Archive) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, archive *models.Archive) error
	DisableTx(ctx context.Context, tx *sqlx.Tx, id int64, actor string) error
}

type documentStore interface {
	ListByArchive(ctx context.Context, archiveID int64) ([]models.Document, error)
	TypeExistsForArchive(ctx context.Context, archiveID, docTypeID int64) (bool, error)
	NextSystemIDTx(ctx context.Context, tx *sqlx.Tx) (int64, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, doc *models.Document) error
	DisableTx(ctx context.Context, tx *sqlx.Tx, docID int64) error
	DisableByArchiveTx(ctx context.Context, tx *sqlx.Tx, archiveID int64) error
	DeleteLegislationLinksByDocTx(ctx context.Context, tx *sqlx.Tx, docID int64) error
	InsertLegislationLinkTx(ctx context.Context, tx *sqlx.Tx, link models.DocumentLegislation) error
}

type lookupStore interface {
	ResolveAppID(ctx context.Context, extension string) (string, error)
	DocumentTypeByID(ctx context.Context, id int64) (*models.DocumentType, error)
}

type hrStore interface {
	GetByEmpNo(ctx context.Context, empNo string) (*models.HREmployee, error)
	UpdateProfileTx(ctx context.Context, tx *sqlx.Tx, empNo string, profile models.HRProfile) error
}

type documentUploader interface {
	Upload(ctx context.Context, dst string, upload dms.UploadRequest) (*dms.UploadResult, error)
}

type uploadRecorder interface {
	RecordDMSUpload(outcome string)
}

var docNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9]+`)

// buildDocName derives the DMS profile name for an archived document.
func buildDocName(empNo, typeName string) string {
	return fmt.Sprintf("Archive_%s_%s", empNo, docNameSanitizer.ReplaceAllString(typeName, "_"))
}

func fileExtension(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

const dateLayout = "2006-01-02"

// expiringSoonWindow is how far ahead a document still counts as
// expiring rather than valid.
const expiringSoonWindow = 30 * 24 * time.Hour

func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be YYYY-MM-DD", field))
	}
	return &parsed, nil
}

func hrProfile(input *dto.EmployeeProfileInput) models.HRProfile {
	if input == nil {
		return models.HRProfile{}
	}
	return models.HRProfile{
		JobTitle:    input.JobTitle,
		Nationality: input.Nationality,
		Email:       input.Email,
		Phone:       input.Phone,
		Manager:     input.Manager,
		Department:  input.Department,
		Section:     input.Section,
	}
}

// expiryStatus classifies an expiry date relative to now.
func expiryStatus(expiry *time.Time, now time.Time) string {
	switch {
	case expiry == nil:
		return models.ExpiryStatusMissing
	case expiry.Before(now):
		return models.ExpiryStatusExpired
	case expiry.Before(now.Add(expiringSoonWindow)):
		return models.ExpiryStatusExpiring
	default:
		return models.ExpiryStatusValid
	}
}

// ArchiveService coordinates archive mutations across the database and
// the DMS. Metadata writes happen inside one transaction that stays
// open across the document uploads, so a failed upload rolls back
// everything already recorded. Content already streamed to the DMS is
// left behind as an orphan, which is harmless: nothing references it.
type ArchiveService struct {
	archives  archiveStore
	documents documentStore
	lookups   lookupStore
	employees hrStore
	uploader  documentUploader
	metrics   uploadRecorder
	logger    *zap.Logger
}

func NewArchiveService(
	archives archiveStore,
	documents documentStore,
	lookups lookupStore,
	employees hrStore,
	uploader documentUploader,
	metrics uploadRecorder,
	logger *zap.Logger,
) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ArchiveService{
		archives:  archives,
		documents: documents,
		lookups:   lookups,
		employees: employees,
		uploader:  uploader,
		metrics:   metrics,
		logger:    logger,
	}
}

// List returns archives matching the filter, each decorated with a
// judicial-card and warrant expiry status.
func (s *ArchiveService) List(ctx context.Context, filter models.ArchiveFilter) ([]models.Archive, int, error) {
	archives, total, err := s.archives.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list archives")
	}

	now := time.Now()
	for i := range archives {
		archives[i].CardStatus = expiryStatus(archives[i].CardExpiry, now)
		archives[i].WarrantStatus = expiryStatus(archives[i].WarrantExpiry, now)
	}

	return archives, total, nil
}

// Get returns one archive with its active documents.
func (s *ArchiveService) Get(ctx context.Context, id int64) (*models.Archive, error) {
	archive, err := s.archives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "archive not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archive")
	}

	docs, err := s.documents.ListByArchive(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archive documents")
	}
	archive.Documents = docs

	return archive, nil
}

// Create opens an archive for one employee, storing every document in
// the DMS and its metadata in the database atomically.
func (s *ArchiveService) Create(ctx context.Context, dst, username string, req dto.CreateArchiveRequest) (*models.Archive, error) {
	employee, err := s.employees.GetByEmpNo(ctx, req.EmpNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found in HR list")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up employee")
	}

	exists, err := s.archives.ExistsByEmpNo(ctx, req.EmpNo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check for existing archive")
	}
	if exists {
		return nil, appErrors.ErrDuplicateArchive
	}

	seen := make(map[int64]struct{}, len(req.Documents))
	for _, doc := range req.Documents {
		if _, dup := seen[doc.DocTypeID]; dup {
			return nil, appErrors.ErrDuplicateDocType
		}
		seen[doc.DocTypeID] = struct{}{}
	}

	hireDate, err := parseDate(req.HireDate, "hire_date")
	if err != nil {
		return nil, err
	}

	tx, err := s.archives.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open transaction")
	}
	defer tx.Rollback() //nolint:errcheck

	if err := s.employees.UpdateProfileTx(ctx, tx, employee.EmpNo, hrProfile(req.Employee)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update HR profile")
	}

	archiveID, err := s.archives.NextSystemIDTx(ctx, tx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate archive id")
	}

	archive := &models.Archive{
		SystemID:    archiveID,
		EmpNo:       employee.EmpNo,
		EmpName:     employee.EmpName,
		StatusID:    req.StatusID,
		HireDate:    hireDate,
		Notes:       req.Notes,
		CreatedBy:   username,
		CreatedDate: time.Now(),
	}
	if err := s.archives.InsertTx(ctx, tx, archive); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert archive")
	}

	for _, input := range req.Documents {
		if _, err := s.storeDocumentTx(ctx, tx, dst, username, archive, input); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit archive")
	}

	s.logger.Info("archive created",
		zap.Int64("archive_id", archiveID),
		zap.String("empno", archive.EmpNo),
		zap.Int("documents", len(req.Documents)))

	return s.Get(ctx, archiveID)
}

// Update modifies an archive: status and notes, removed documents are
// soft-disabled, listed documents get their legislation links replaced
// per document, new documents are uploaded. All inside one
// transaction.
func (s *ArchiveService) Update(ctx context.Context, dst, username string, archiveID int64, req dto.UpdateArchiveRequest) (*models.Archive, error) {
	archive, err := s.archives.GetByID(ctx, archiveID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "archive not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archive")
	}

	current, err := s.documents.ListByArchive(ctx, archiveID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archive documents")
	}

	currentByID := make(map[int64]models.Document, len(current))
	for _, doc := range current {
		currentByID[doc.SystemID] = doc
	}

	removed := make(map[int64]struct{}, len(req.RemoveDocumentIDs))
	for _, id := range req.RemoveDocumentIDs {
		if _, ok := currentByID[id]; !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("document %d does not belong to this archive", id))
		}
		removed[id] = struct{}{}
	}

	// Duplicate type guard over what the archive will hold afterwards.
	activeTypes := make(map[int64]struct{})
	for _, doc := range current {
		if _, gone := removed[doc.SystemID]; !gone {
			activeTypes[doc.DocTypeID] = struct{}{}
		}
	}
	for _, input := range req.AddDocuments {
		if _, dup := activeTypes[input.DocTypeID]; dup {
			return nil, appErrors.ErrDuplicateDocType
		}
		activeTypes[input.DocTypeID] = struct{}{}
	}

	hireDate, err := parseDate(req.HireDate, "hire_date")
	if err != nil {
		return nil, err
	}

	tx, err := s.archives.BeginTx(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open transaction")
	}
	defer tx.Rollback() //nolint:errcheck

	if err := s.employees.UpdateProfileTx(ctx, tx, archive.EmpNo, hrProfile(req.Employee)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update HR profile")
	}

	archive.StatusID = req.StatusID
	if hireDate != nil {
		archive.HireDate = hireDate
	}
	archive.Notes = req.Notes
	archive.ModifiedBy = &username
	if err := s.archives.UpdateTx(ctx, tx, archive); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update archive")
	}

	for id := range removed {
		if err := s.documents.DeleteLegislationLinksByDocTx(ctx, tx, id); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear legislation links")
		}
		if err := s.documents.DisableTx(ctx, tx, id); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to disable document")
		}
	}

	// Only documents listed here get their links replaced. Documents
	// not mentioned keep whatever links they have.
	for _, keep := range req.KeepLegislations {
		doc, ok := currentByID[keep.DocID]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("document %d does not belong to this archive", keep.DocID))
		}
		if _, gone := removed[keep.DocID]; gone {
			continue
		}
		if err := s.documents.DeleteLegislationLinksByDocTx(ctx, tx, doc.SystemID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear legislation links")
		}
		for _, legislID := range keep.LegislationIDs {
			link := models.DocumentLegislation{DocID: doc.SystemID, LegislID: legislID, ArchiveID: archiveID}
			if err := s.documents.InsertLegislationLinkTx(ctx, tx, link); err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to relink legislation")
			}
		}
	}

	for _, input := range req.AddDocuments {
		if _, err := s.storeDocumentTx(ctx, tx, dst, username, archive, input); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit archive update")
	}

	s.logger.Info("archive updated",
		zap.Int64("archive_id", archiveID),
		zap.Int("added", len(req.AddDocuments)),
		zap.Int("removed", len(removed)))

	return s.Get(ctx, archiveID)
}

// Delete soft-disables an archive and cascades the disable to its
// documents. DMS content stays in place, history remains readable by
// id.
func (s *ArchiveService) Delete(ctx context.Context, username string, archiveID int64) error {
	archive, err := s.archives.GetByID(ctx, archiveID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "archive not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archive")
	}
	if archive.Disabled == "1" {
		return appErrors.Clone(appErrors.ErrNotFound, "archive not found")
	}

	tx, err := s.archives.BeginTx(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open transaction")
	}
	defer tx.Rollback() //nolint:errcheck

	if err := s.archives.DisableTx(ctx, tx, archiveID, username); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to disable archive")
	}
	if err := s.documents.DisableByArchiveTx(ctx, tx, archiveID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to disable archive documents")
	}

	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit archive delete")
	}

	s.logger.Info("archive disabled",
		zap.Int64("archive_id", archiveID),
		zap.String("empno", archive.EmpNo))

	return nil
}

// storeDocumentTx uploads one document to the DMS and records its
// metadata inside the open transaction.
func (s *ArchiveService) storeDocumentTx(ctx context.Context, tx *sqlx.Tx, dst, username string, archive *models.Archive, input dto.DocumentInput) (*models.Document, error) {
	docType, err := s.lookups.DocumentTypeByID(ctx, input.DocTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown document type %d", input.DocTypeID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve document type")
	}

	expiry, err := parseDate(input.ExpiryDate, "expiry_date")
	if err != nil {
		return nil, err
	}
	if expiry != nil && !docType.HasExpiry {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("document type %q does not track expiry", docType.Name))
	}

	content, err := base64.StdEncoding.DecodeString(input.Content)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("document %q is not valid base64", input.FileName))
	}

	appID, err := s.lookups.ResolveAppID(ctx, fileExtension(input.FileName))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve application id")
	}

	docName := buildDocName(archive.EmpNo, docType.Name)

	result, err := s.uploader.Upload(ctx, dst, dms.UploadRequest{
		DocName:  docName,
		Abstract: fmt.Sprintf("%s for employee %s", docType.Name, archive.EmpNo),
		AppID:    appID,
		Author:   username,
		Content:  content,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordDMSUpload("failure")
		}
		s.logger.Error("dms upload failed",
			zap.String("doc_name", docName),
			zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUploadFailed.Code, appErrors.ErrUploadFailed.Status, appErrors.ErrUploadFailed.Message)
	}
	if s.metrics != nil {
		s.metrics.RecordDMSUpload("success")
	}

	docID, err := s.documents.NextSystemIDTx(ctx, tx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate document id")
	}

	doc := &models.Document{
		SystemID:    docID,
		ArchiveID:   archive.SystemID,
		DocTypeID:   input.DocTypeID,
		DocNumber:   result.DocNumber,
		DocName:     docName,
		ExpiryDate:  expiry,
		CreatedBy:   username,
		CreatedDate: time.Now(),
	}
	if err := s.documents.InsertTx(ctx, tx, doc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert document")
	}

	for _, legislID := range input.LegislationIDs {
		link := models.DocumentLegislation{DocID: docID, LegislID: legislID, ArchiveID: archive.SystemID}
		if err := s.documents.InsertLegislationLinkTx(ctx, tx, link); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to link legislation")
		}
	}

	return doc, nil
}
