package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

// DocumentRepository persists archived document metadata
// (lkp_pta_emp_docs) and legislation links (lkp_pta_doc_legisl).
type DocumentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// ListByArchive returns the active documents of one archive.
func (r *DocumentRepository) ListByArchive(ctx context.Context, archiveID int64) ([]models.Document, error) {
	query := `
		SELECT d.system_id, d.arch_id, d.doc_type_id, t.type_name AS doc_type_name,
		       d.doc_number, d.doc_name, d.expiry_date, d.disabled, d.created_by, d.created_date
		FROM lkp_pta_emp_docs d
		JOIN lkp_pta_doc_types t ON t.system_id = d.doc_type_id
		WHERE d.arch_id = $1 AND d.disabled = '0'
		ORDER BY d.system_id`

	docs := []models.Document{}
	if err := r.db.SelectContext(ctx, &docs, query, archiveID); err != nil {
		return nil, err
	}

	for i := range docs {
		if err := r.attachLegislations(ctx, &docs[i]); err != nil {
			return nil, err
		}
	}

	return docs, nil
}

func (r *DocumentRepository) attachLegislations(ctx context.Context, doc *models.Document) error {
	rows := []struct {
		ID   int64  `db:"legisl_id"`
		Name string `db:"legisl_name"`
	}{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT dl.legisl_id, lg.legisl_name
		FROM lkp_pta_doc_legisl dl
		JOIN lkp_pta_legisl lg ON lg.system_id = dl.legisl_id
		WHERE dl.doc_id = $1
		ORDER BY dl.legisl_id`, doc.SystemID)
	if err != nil {
		return err
	}

	for _, row := range rows {
		doc.LegislationIDs = append(doc.LegislationIDs, row.ID)
		doc.LegislationNames = append(doc.LegislationNames, row.Name)
	}
	return nil
}

// GetByDocNumber resolves a DMS document number to its metadata row,
// or sql.ErrNoRows when no active document carries it.
func (r *DocumentRepository) GetByDocNumber(ctx context.Context, docNumber int64) (*models.Document, error) {
	query := `
		SELECT d.system_id, d.arch_id, d.doc_type_id, t.type_name AS doc_type_name,
		       d.doc_number, d.doc_name, d.expiry_date, d.disabled, d.created_by, d.created_date
		FROM lkp_pta_emp_docs d
		JOIN lkp_pta_doc_types t ON t.system_id = d.doc_type_id
		WHERE d.doc_number = $1 AND d.disabled = '0'`

	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, docNumber); err != nil {
		return nil, err
	}

	return &doc, nil
}

// TypeExistsForArchive reports whether the archive already holds an
// active document of the given type.
func (r *DocumentRepository) TypeExistsForArchive(ctx context.Context, archiveID, docTypeID int64) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM lkp_pta_emp_docs
		WHERE arch_id = $1 AND doc_type_id = $2 AND disabled = '0'`,
		archiveID, docTypeID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSystemIDTx allocates the next document id inside a transaction.
func (r *DocumentRepository) NextSystemIDTx(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	var next int64
	err := tx.GetContext(ctx, &next,
		"SELECT COALESCE(MAX(system_id), 0) + 1 FROM lkp_pta_emp_docs")
	if err != nil {
		return 0, err
	}
	return next, nil
}

// InsertTx inserts the document row inside a transaction.
func (r *DocumentRepository) InsertTx(ctx context.Context, tx *sqlx.Tx, doc *models.Document) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO lkp_pta_emp_docs
			(system_id, arch_id, doc_type_id, doc_number, doc_name, expiry_date, disabled, created_by, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, '0', $7, $8)`,
		doc.SystemID,
		doc.ArchiveID,
		doc.DocTypeID,
		doc.DocNumber,
		doc.DocName,
		doc.ExpiryDate,
		doc.CreatedBy,
		doc.CreatedDate,
	)
	return err
}

// DisableTx soft-disables a document inside a transaction. The DMS
// object stays where it is, the metadata row just stops being served.
func (r *DocumentRepository) DisableTx(ctx context.Context, tx *sqlx.Tx, docID int64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE lkp_pta_emp_docs SET disabled = '1' WHERE system_id = $1", docID)
	return err
}

// DisableByArchiveTx cascades an archive disable to its active
// documents.
func (r *DocumentRepository) DisableByArchiveTx(ctx context.Context, tx *sqlx.Tx, archiveID int64) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE lkp_pta_emp_docs SET disabled = '1' WHERE arch_id = $1 AND disabled = '0'", archiveID)
	return err
}

// DeleteLegislationLinksByDocTx removes the legislation links of one
// document, ahead of a per-document wholesale replacement or a
// disable. Links of untouched documents stay in place.
func (r *DocumentRepository) DeleteLegislationLinksByDocTx(ctx context.Context, tx *sqlx.Tx, docID int64) error {
	_, err := tx.ExecContext(ctx,
		"DELETE FROM lkp_pta_doc_legisl WHERE doc_id = $1", docID)
	return err
}

// InsertLegislationLinkTx links a document to a legislation entry
// inside a transaction.
func (r *DocumentRepository) InsertLegislationLinkTx(ctx context.Context, tx *sqlx.Tx, link models.DocumentLegislation) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO lkp_pta_doc_legisl (system_id, doc_id, legisl_id, arch_id)
		VALUES ((SELECT COALESCE(MAX(system_id), 0) + 1 FROM lkp_pta_doc_legisl), $1, $2, $3)`,
		link.DocID, link.LegislID, link.ArchiveID)
	return err
}
