package service

import (
	"context"

	"github.com/rta-dms/pta-archive-api/internal/models"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

type lookupListStore interface {
	Statuses(ctx context.Context) ([]models.EmployeeStatus, error)
	DocumentTypes(ctx context.Context) ([]models.DocumentType, error)
	Legislations(ctx context.Context) ([]models.Legislation, error)
}

// LookupService serves the reference tables.
type LookupService struct {
	lookups lookupListStore
}

func NewLookupService(lookups lookupListStore) *LookupService {
	return &LookupService{lookups: lookups}
}

func (s *LookupService) Statuses(ctx context.Context) ([]models.EmployeeStatus, error) {
	statuses, err := s.lookups.Statuses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list statuses")
	}
	return statuses, nil
}

func (s *LookupService) DocumentTypes(ctx context.Context) ([]models.DocumentType, error) {
	types, err := s.lookups.DocumentTypes(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list document types")
	}
	return types, nil
}

func (s *LookupService) Legislations(ctx context.Context) ([]models.Legislation, error) {
	legislations, err := s.lookups.Legislations(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list legislations")
	}
	return legislations, nil
}
