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

func TestDocumentRepositoryListByArchive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT d\.system_id, d\.arch_id, d\.doc_type_id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"system_id", "arch_id", "doc_type_id", "doc_type_name",
			"doc_number", "doc_name", "expiry_date", "disabled", "created_by", "created_date",
		}).AddRow(int64(3), int64(7), int64(2), "Contract", int64(500123), "Archive_1001_Contract", nil, "0", "jsmith", now))

	mock.ExpectQuery(`SELECT dl\.legisl_id, lg\.legisl_name`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"legisl_id", "legisl_name"}).
			AddRow(int64(1), "Labour Law").
			AddRow(int64(4), "Traffic Code"))

	docs, err := repo.ListByArchive(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, int64(500123), docs[0].DocNumber)
	require.Equal(t, []int64{1, 4}, docs[0].LegislationIDs)
	require.Equal(t, []string{"Labour Law", "Traffic Code"}, docs[0].LegislationNames)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryGetByDocNumberNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	mock.ExpectQuery(`SELECT d\.system_id, d\.arch_id`).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByDocNumber(context.Background(), 999)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDocumentRepositoryUpdateFlowTx(t *testing.T) {
	db, mock := newMockDB(t)
	archiveRepo := NewArchiveRepository(db)
	repo := NewDocumentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM lkp_pta_doc_legisl WHERE doc_id`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE lkp_pta_emp_docs SET disabled = '1'`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO lkp_pta_doc_legisl`).
		WithArgs(int64(9), int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := archiveRepo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteLegislationLinksByDocTx(ctx, tx, 3))
	require.NoError(t, repo.DisableTx(ctx, tx, 3))
	require.NoError(t, repo.InsertLegislationLinkTx(ctx, tx, models.DocumentLegislation{
		DocID: 9, LegislID: 1, ArchiveID: 7,
	}))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryTypeExistsForArchive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM lkp_pta_emp_docs`).
		WithArgs(int64(7), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.TypeExistsForArchive(context.Background(), 7, 2)
	require.NoError(t, err)
	require.True(t, exists)
}
