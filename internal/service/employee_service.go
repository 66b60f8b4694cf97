package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/models"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

type hrListStore interface {
	List(ctx context.Context, search string) ([]models.HREmployee, error)
	GetByEmpNo(ctx context.Context, empNo string) (*models.HREmployee, error)
	ArchivedEmpNos(ctx context.Context) (map[string]struct{}, error)
}

// EmployeeService serves the HR master list, flagging employees that
// already have an archive.
type EmployeeService struct {
	employees hrListStore
	logger    *zap.Logger
}

func NewEmployeeService(employees hrListStore, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{employees: employees, logger: logger}
}

// List returns a page of HR employees matching the search term. With
// unarchivedOnly set, employees that already have an active archive
// are dropped, which is what the archive-creation picker needs. The
// master list is bounded, so the page is cut after decoration.
func (s *EmployeeService) List(ctx context.Context, search string, unarchivedOnly bool, page, perPage int) ([]models.HREmployee, int, error) {
	employees, err := s.employees.List(ctx, search)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list HR employees")
	}

	archived, err := s.employees.ArchivedEmpNos(ctx)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archived set")
	}

	matched := employees[:0]
	for i := range employees {
		_, employees[i].Archived = archived[employees[i].EmpNo]
		if unarchivedOnly && employees[i].Archived {
			continue
		}
		matched = append(matched, employees[i])
	}

	total := len(matched)

	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= total {
		return []models.HREmployee{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

// Get returns one HR employee with the archive flag set.
func (s *EmployeeService) Get(ctx context.Context, empNo string) (*models.HREmployee, error) {
	employee, err := s.employees.GetByEmpNo(ctx, empNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "employee not found in HR list")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load HR employee")
	}

	archived, err := s.employees.ArchivedEmpNos(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archived set")
	}
	_, employee.Archived = archived[employee.EmpNo]

	return employee, nil
}
