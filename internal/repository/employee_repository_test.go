package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

func TestEmployeeRepositoryUpdateProfileTxSkipsEmptyFields(t *testing.T) {
	db, mock := newMockDB(t)
	archiveRepo := NewArchiveRepository(db)
	repo := NewEmployeeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE lkp_hr_employees SET job_title = \$1, email = \$2 WHERE empno = \$3`).
		WithArgs("Inspector", "ali@rta.ae", "1001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := archiveRepo.BeginTx(ctx)
	require.NoError(t, err)

	err = repo.UpdateProfileTx(ctx, tx, "1001", models.HRProfile{
		JobTitle: "Inspector",
		Email:    "ali@rta.ae",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryUpdateProfileTxNoFields(t *testing.T) {
	db, mock := newMockDB(t)
	archiveRepo := NewArchiveRepository(db)
	repo := NewEmployeeRepository(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := archiveRepo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProfileTx(ctx, tx, "1001", models.HRProfile{}))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
