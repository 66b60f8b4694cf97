package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestLookupRepositoryResolveAppIDExactMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLookupRepository(db)

	mock.ExpectQuery(`SELECT application FROM apps WHERE UPPER\(default_extension\)`).
		WithArgs("PDF").
		WillReturnRows(sqlmock.NewRows([]string{"application"}).AddRow("ACROBAT"))

	appID, err := repo.ResolveAppID(context.Background(), ".pdf")
	require.NoError(t, err)
	require.Equal(t, "ACROBAT", appID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupRepositoryResolveAppIDFileTypesFallback(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLookupRepository(db)

	mock.ExpectQuery(`SELECT application FROM apps WHERE UPPER\(default_extension\)`).
		WithArgs("DOCX").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT application FROM apps WHERE UPPER\(file_types\) LIKE`).
		WithArgs("%DOCX%").
		WillReturnRows(sqlmock.NewRows([]string{"application"}).AddRow("MS WORD"))

	appID, err := repo.ResolveAppID(context.Background(), "docx")
	require.NoError(t, err)
	require.Equal(t, "MS WORD", appID)
}

func TestLookupRepositoryResolveAppIDUnknown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLookupRepository(db)

	mock.ExpectQuery(`SELECT application FROM apps WHERE UPPER\(default_extension\)`).
		WithArgs("XYZ").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT application FROM apps WHERE UPPER\(file_types\) LIKE`).
		WithArgs("%XYZ%").
		WillReturnError(sql.ErrNoRows)

	appID, err := repo.ResolveAppID(context.Background(), "xyz")
	require.NoError(t, err)
	require.Equal(t, UnknownAppID, appID)
}

func TestLookupRepositoryResolveAppIDEmptyExtension(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewLookupRepository(db)

	appID, err := repo.ResolveAppID(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, UnknownAppID, appID)
}

func TestLookupRepositoryStatuses(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLookupRepository(db)

	mock.ExpectQuery(`SELECT system_id, status_name FROM lkp_pta_emp_status`).
		WillReturnRows(sqlmock.NewRows([]string{"system_id", "status_name"}).
			AddRow(int64(1), "ACTIVE").
			AddRow(int64(2), "RESIGNED"))

	statuses, err := repo.Statuses(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	require.Equal(t, "ACTIVE", statuses[0].Name)
}
