package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

type auditStore interface {
	Insert(ctx context.Context, entry *models.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// AuditService records who did what. Recording is best effort: a
// failed audit write is logged but never fails the request it belongs
// to.
type AuditService struct {
	store  auditStore
	logger *zap.Logger
}

func NewAuditService(store auditStore, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{store: store, logger: logger}
}

func (s *AuditService) Record(ctx context.Context, username, action, entity, entityID, detail, requestID string) {
	entry := &models.AuditEntry{
		ID:        uuid.NewString(),
		Username:  username,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
		RequestID: requestID,
		CreatedAt: time.Now(),
	}

	if err := s.store.Insert(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err))
	}
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	return s.store.ListRecent(ctx, limit)
}
