package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

func TestEmployeeServiceListFlagsArchived(t *testing.T) {
	hr := newStubHRStore()
	hr.archived["1001"] = struct{}{}

	svc := NewEmployeeService(hr, nil)

	employees, total, err := svc.List(context.Background(), "", false, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	byEmpNo := map[string]bool{}
	for _, employee := range employees {
		byEmpNo[employee.EmpNo] = employee.Archived
	}
	require.True(t, byEmpNo["1001"])
	require.False(t, byEmpNo["1002"])
}

func TestEmployeeServiceListUnarchivedOnly(t *testing.T) {
	hr := newStubHRStore()
	hr.archived["1001"] = struct{}{}

	svc := NewEmployeeService(hr, nil)

	employees, total, err := svc.List(context.Background(), "", true, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, employees, 1)
	require.Equal(t, "1002", employees[0].EmpNo)
}

func TestEmployeeServiceListPastLastPage(t *testing.T) {
	svc := NewEmployeeService(newStubHRStore(), nil)

	employees, total, err := svc.List(context.Background(), "", false, 5, 20)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Empty(t, employees)
}

func TestEmployeeServiceGet(t *testing.T) {
	hr := newStubHRStore()
	hr.archived["1001"] = struct{}{}

	svc := NewEmployeeService(hr, nil)

	employee, err := svc.Get(context.Background(), "1001")
	require.NoError(t, err)
	require.Equal(t, "Ali Hassan", employee.EmpName)
	require.True(t, employee.Archived)

	_, err = svc.Get(context.Background(), "9999")
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
