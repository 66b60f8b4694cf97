package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

func TestArchiveRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"system_id", "empno", "emp_name", "status_id", "status_name", "hire_date",
		"notes", "disabled", "created_by", "created_date", "modified_by", "modified_date",
	}).AddRow(int64(7), "1001", "Ali Hassan", int64(1), "ACTIVE", nil, "", "0", "jsmith", now, nil, nil)

	mock.ExpectQuery(`SELECT a\.system_id, a\.empno`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	archive, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "1001", archive.EmpNo)
	require.Equal(t, "ACTIVE", archive.StatusName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRepositoryGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)

	mock.ExpectQuery(`SELECT a\.system_id, a\.empno`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestArchiveRepositoryList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM lkp_pta_emp_arch a`).
		WithArgs("%1001%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	cardExpiry := now.AddDate(0, 2, 0)
	rows := sqlmock.NewRows([]string{
		"system_id", "empno", "emp_name", "status_id", "status_name", "hire_date",
		"notes", "disabled", "created_by", "created_date", "modified_by", "modified_date",
		"card_expiry", "warrant_expiry",
	}).AddRow(int64(7), "1001", "Ali Hassan", int64(1), "ACTIVE", nil, "", "0", "jsmith", now, nil, nil, cardExpiry, nil)

	mock.ExpectQuery(`SELECT\s+a\.system_id, a\.empno, a\.emp_name`).
		WithArgs("%1001%", 20, 0).
		WillReturnRows(rows)

	archives, total, err := repo.List(context.Background(), models.ArchiveFilter{Search: "1001"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, archives, 1)
	require.NotNil(t, archives[0].CardExpiry)
	require.Nil(t, archives[0].WarrantExpiry)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveRepositoryExistsByEmpNo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM lkp_pta_emp_arch WHERE empno`).
		WithArgs("1001").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmpNo(context.Background(), "1001")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestArchiveRepositoryInsertTxAllocatesMaxPlusOne(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArchiveRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(system_id\), 0\) \+ 1 FROM lkp_pta_emp_arch`).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(int64(42)))
	mock.ExpectExec(`INSERT INTO lkp_pta_emp_arch`).
		WithArgs(int64(42), "1001", "Ali Hassan", int64(1), nil, "", "jsmith", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	id, err := repo.NextSystemIDTx(ctx, tx)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	archive := &models.Archive{
		SystemID:    id,
		EmpNo:       "1001",
		EmpName:     "Ali Hassan",
		StatusID:    1,
		CreatedBy:   "jsmith",
		CreatedDate: time.Now(),
	}
	require.NoError(t, repo.InsertTx(ctx, tx, archive))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
