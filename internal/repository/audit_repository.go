package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

// AuditRepository appends to and reads the audit_log table.
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *models.AuditEntry) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO audit_log (id, username, action, entity, entity_id, detail, request_id, created_at)
		VALUES (:id, :username, :action, :entity, :entity_id, :detail, :request_id, :created_at)`,
		entry)
	return err
}

// ListRecent returns the newest audit entries, capped at limit.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	entries := []models.AuditEntry{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, username, action, entity, entity_id, detail, request_id, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
