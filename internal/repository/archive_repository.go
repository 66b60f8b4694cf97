package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

// ArchiveRepository persists employee archive records
// (lkp_pta_emp_arch).
type ArchiveRepository struct {
	db *sqlx.DB
}

func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// BeginTx opens a transaction for a multi-step archive mutation.
func (r *ArchiveRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

// expiryCondition translates an expiry-status filter into SQL against
// the decorated expiry column.
func expiryCondition(column, status string) string {
	switch strings.ToUpper(status) {
	case models.ExpiryStatusMissing:
		return column + " IS NULL"
	case models.ExpiryStatusExpired:
		return column + " < NOW()"
	case models.ExpiryStatusValid, models.ExpiryStatusExpiring:
		return column + " >= NOW()"
	}
	return ""
}

const archiveListColumns = `
	a.system_id, a.empno, a.emp_name, a.status_id, s.status_name,
	a.hire_date, COALESCE(a.notes, '') AS notes, a.disabled,
	a.created_by, a.created_date, a.modified_by, a.modified_date,
	card.expiry_date AS card_expiry, warrant.expiry_date AS warrant_expiry`

const archiveListJoins = `
	FROM lkp_pta_emp_arch a
	JOIN lkp_pta_emp_status s ON s.system_id = a.status_id
	LEFT JOIN LATERAL (
		SELECT d.expiry_date FROM lkp_pta_emp_docs d
		JOIN lkp_pta_doc_types t ON t.system_id = d.doc_type_id
		WHERE d.arch_id = a.system_id AND d.disabled = '0' AND t.type_name = 'Judicial Card'
		ORDER BY d.expiry_date DESC NULLS LAST LIMIT 1
	) card ON TRUE
	LEFT JOIN LATERAL (
		SELECT d.expiry_date FROM lkp_pta_emp_docs d
		JOIN lkp_pta_doc_types t ON t.system_id = d.doc_type_id
		WHERE d.arch_id = a.system_id AND d.disabled = '0' AND t.type_name = 'Warrant Decision'
		ORDER BY d.expiry_date DESC NULLS LAST LIMIT 1
	) warrant ON TRUE`

// List returns active archives matching the filter together with the
// total row count for pagination. Each row is decorated with the
// latest judicial-card and warrant expiry dates of its documents.
func (r *ArchiveRepository) List(ctx context.Context, filter models.ArchiveFilter) ([]models.Archive, int, error) {
	conditions := []string{"a.disabled = '0'"}
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+strings.ToUpper(filter.Search)+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf("(UPPER(a.empno) LIKE $%d OR UPPER(a.emp_name) LIKE $%d)", idx, idx))
	}
	if filter.StatusID > 0 {
		args = append(args, filter.StatusID)
		conditions = append(conditions, fmt.Sprintf("a.status_id = $%d", len(args)))
	}
	if cond := expiryCondition("card.expiry_date", filter.CardStatus); cond != "" {
		conditions = append(conditions, cond)
	}
	if cond := expiryCondition("warrant.expiry_date", filter.WarrantStatus); cond != "" {
		conditions = append(conditions, cond)
	}

	where := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*)" + archiveListJoins + " WHERE " + where

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	args = append(args, perPage, (page-1)*perPage)
	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY a.system_id DESC LIMIT $%d OFFSET $%d",
		archiveListColumns, archiveListJoins, where, len(args)-1, len(args))

	archives := []models.Archive{}
	if err := r.db.SelectContext(ctx, &archives, query, args...); err != nil {
		return nil, 0, err
	}

	return archives, total, nil
}

// GetByID returns one archive or sql.ErrNoRows. Disabled archives are
// still returned so history stays reachable by id.
func (r *ArchiveRepository) GetByID(ctx context.Context, id int64) (*models.Archive, error) {
	query := `
		SELECT a.system_id, a.empno, a.emp_name, a.status_id, s.status_name,
		       a.hire_date, COALESCE(a.notes, '') AS notes, a.disabled,
		       a.created_by, a.created_date, a.modified_by, a.modified_date
		FROM lkp_pta_emp_arch a
		JOIN lkp_pta_emp_status s ON s.system_id = a.status_id
		WHERE a.system_id = $1`

	var archive models.Archive
	if err := r.db.GetContext(ctx, &archive, query, id); err != nil {
		return nil, err
	}

	return &archive, nil
}

// ExistsByEmpNo reports whether the employee already has an active
// archive. The partial unique index on empno backs this up under
// concurrent inserts.
func (r *ArchiveRepository) ExistsByEmpNo(ctx context.Context, empNo string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM lkp_pta_emp_arch WHERE empno = $1 AND disabled = '0'", empNo)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSystemIDTx allocates the next archive id inside a transaction.
// Ids are max plus one, matching how the legacy tables were seeded.
func (r *ArchiveRepository) NextSystemIDTx(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	var next int64
	err := tx.GetContext(ctx, &next,
		"SELECT COALESCE(MAX(system_id), 0) + 1 FROM lkp_pta_emp_arch")
	if err != nil {
		return 0, err
	}
	return next, nil
}

// InsertTx inserts the archive row inside a transaction.
func (r *ArchiveRepository) InsertTx(ctx context.Context, tx *sqlx.Tx, archive *models.Archive) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO lkp_pta_emp_arch
			(system_id, empno, emp_name, status_id, hire_date, notes, disabled, created_by, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, '0', $7, $8)`,
		archive.SystemID,
		archive.EmpNo,
		archive.EmpName,
		archive.StatusID,
		archive.HireDate,
		archive.Notes,
		archive.CreatedBy,
		archive.CreatedDate,
	)
	return err
}

// UpdateTx updates the mutable archive fields inside a transaction.
func (r *ArchiveRepository) UpdateTx(ctx context.Context, tx *sqlx.Tx, archive *models.Archive) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE lkp_pta_emp_arch
		SET emp_name = $1, status_id = $2, hire_date = $3, notes = $4, modified_by = $5, modified_date = $6
		WHERE system_id = $7`,
		archive.EmpName,
		archive.StatusID,
		archive.HireDate,
		archive.Notes,
		archive.ModifiedBy,
		time.Now(),
		archive.SystemID,
	)
	return err
}

// DisableTx soft-disables the archive row inside a transaction. The
// caller cascades the disable to the archive's documents.
func (r *ArchiveRepository) DisableTx(ctx context.Context, tx *sqlx.Tx, id int64, actor string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE lkp_pta_emp_arch
		SET disabled = '1', modified_by = $1, modified_date = $2
		WHERE system_id = $3`,
		actor, time.Now(), id)
	return err
}
