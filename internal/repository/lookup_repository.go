package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

// UnknownAppID is used when no registered application matches a file
// extension. The DMS accepts it and serves the content as opaque bytes.
const UnknownAppID = "UNKNOWN"

// LookupRepository serves the reference tables backing dropdowns and
// the application registry.
type LookupRepository struct {
	db *sqlx.DB
}

func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) Statuses(ctx context.Context) ([]models.EmployeeStatus, error) {
	statuses := []models.EmployeeStatus{}
	err := r.db.SelectContext(ctx, &statuses,
		"SELECT system_id, status_name FROM lkp_pta_emp_status ORDER BY status_name")
	if err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *LookupRepository) DocumentTypes(ctx context.Context) ([]models.DocumentType, error) {
	types := []models.DocumentType{}
	err := r.db.SelectContext(ctx, &types,
		"SELECT system_id, type_name, has_expiry FROM lkp_pta_doc_types ORDER BY type_name")
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *LookupRepository) Legislations(ctx context.Context) ([]models.Legislation, error) {
	legislations := []models.Legislation{}
	err := r.db.SelectContext(ctx, &legislations,
		"SELECT system_id, legisl_name FROM lkp_pta_legisl ORDER BY legisl_name")
	if err != nil {
		return nil, err
	}
	return legislations, nil
}

// DocumentTypeByID returns one document type or sql.ErrNoRows.
func (r *LookupRepository) DocumentTypeByID(ctx context.Context, id int64) (*models.DocumentType, error) {
	var docType models.DocumentType
	err := r.db.GetContext(ctx, &docType,
		"SELECT system_id, type_name, has_expiry FROM lkp_pta_doc_types WHERE system_id = $1", id)
	if err != nil {
		return nil, err
	}
	return &docType, nil
}

// StatusByName returns the status id for a name, matched without
// regard to case, or sql.ErrNoRows.
func (r *LookupRepository) StatusByName(ctx context.Context, name string) (*models.EmployeeStatus, error) {
	var status models.EmployeeStatus
	err := r.db.GetContext(ctx, &status,
		"SELECT system_id, status_name FROM lkp_pta_emp_status WHERE UPPER(status_name) = $1",
		strings.ToUpper(strings.TrimSpace(name)))
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ResolveAppID maps a file extension to the DMS application id. It
// tries an exact match on the registered default extension first, then
// a substring match against the broader file type list, and falls back
// to UNKNOWN.
func (r *LookupRepository) ResolveAppID(ctx context.Context, extension string) (string, error) {
	ext := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(extension), "."))
	if ext == "" {
		return UnknownAppID, nil
	}

	var appID string
	err := r.db.GetContext(ctx, &appID,
		"SELECT application FROM apps WHERE UPPER(default_extension) = $1", ext)
	if err == nil {
		return appID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	err = r.db.GetContext(ctx, &appID,
		"SELECT application FROM apps WHERE UPPER(file_types) LIKE $1 LIMIT 1", "%"+ext+"%")
	if err == nil {
		return appID, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return UnknownAppID, nil
	}

	return "", err
}
