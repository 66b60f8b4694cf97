package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/rta-dms/pta-archive-api/internal/dms"
	"github.com/rta-dms/pta-archive-api/internal/models"
)

// newTxDB returns a sqlmock-backed DB used only for transaction
// lifecycle expectations. The stubs below keep their own state and
// never touch the tx handle.
func newTxDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

type stubArchiveStore struct {
	db *sqlx.DB

	archives map[int64]*models.Archive
	existing map[string]bool
	nextID   int64

	inserted []*models.Archive
	updated  []*models.Archive
	disabled []int64
	listed   []models.Archive
}

func newStubArchiveStore(db *sqlx.DB) *stubArchiveStore {
	return &stubArchiveStore{
		db:       db,
		archives: make(map[int64]*models.Archive),
		existing: make(map[string]bool),
		nextID:   100,
	}
}

func (s *stubArchiveStore) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return s.db.BeginTxx(ctx, nil)
}

func (s *stubArchiveStore) List(context.Context, models.ArchiveFilter) ([]models.Archive, int, error) {
	return s.listed, len(s.listed), nil
}

func (s *stubArchiveStore) GetByID(_ context.Context, id int64) (*models.Archive, error) {
	archive, ok := s.archives[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *archive
	return &clone, nil
}

func (s *stubArchiveStore) ExistsByEmpNo(_ context.Context, empNo string) (bool, error) {
	return s.existing[empNo], nil
}

func (s *stubArchiveStore) NextSystemIDTx(context.Context, *sqlx.Tx) (int64, error) {
	s.nextID++
	return s.nextID, nil
}

func (s *stubArchiveStore) InsertTx(_ context.Context, _ *sqlx.Tx, archive *models.Archive) error {
	clone := *archive
	s.inserted = append(s.inserted, &clone)
	s.archives[archive.SystemID] = &clone
	s.existing[archive.EmpNo] = true
	return nil
}

func (s *stubArchiveStore) UpdateTx(_ context.Context, _ *sqlx.Tx, archive *models.Archive) error {
	clone := *archive
	s.updated = append(s.updated, &clone)
	s.archives[archive.SystemID] = &clone
	return nil
}

func (s *stubArchiveStore) DisableTx(_ context.Context, _ *sqlx.Tx, id int64, actor string) error {
	s.disabled = append(s.disabled, id)
	if archive, ok := s.archives[id]; ok {
		archive.Disabled = "1"
		archive.ModifiedBy = &actor
	}
	return nil
}

type stubDocumentStore struct {
	byArchive map[int64][]models.Document
	nextID    int64

	inserted     []*models.Document
	disabled     []int64
	linksCleared []int64
	links        []models.DocumentLegislation
}

func newStubDocumentStore() *stubDocumentStore {
	return &stubDocumentStore{
		byArchive: make(map[int64][]models.Document),
		nextID:    200,
	}
}

func (s *stubDocumentStore) ListByArchive(_ context.Context, archiveID int64) ([]models.Document, error) {
	return s.byArchive[archiveID], nil
}

func (s *stubDocumentStore) TypeExistsForArchive(_ context.Context, archiveID, docTypeID int64) (bool, error) {
	for _, doc := range s.byArchive[archiveID] {
		if doc.DocTypeID == docTypeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubDocumentStore) NextSystemIDTx(context.Context, *sqlx.Tx) (int64, error) {
	s.nextID++
	return s.nextID, nil
}

func (s *stubDocumentStore) InsertTx(_ context.Context, _ *sqlx.Tx, doc *models.Document) error {
	clone := *doc
	s.inserted = append(s.inserted, &clone)
	s.byArchive[doc.ArchiveID] = append(s.byArchive[doc.ArchiveID], clone)
	return nil
}

func (s *stubDocumentStore) DisableTx(_ context.Context, _ *sqlx.Tx, docID int64) error {
	s.disabled = append(s.disabled, docID)
	return nil
}

func (s *stubDocumentStore) DisableByArchiveTx(_ context.Context, _ *sqlx.Tx, archiveID int64) error {
	for _, doc := range s.byArchive[archiveID] {
		s.disabled = append(s.disabled, doc.SystemID)
	}
	return nil
}

func (s *stubDocumentStore) DeleteLegislationLinksByDocTx(_ context.Context, _ *sqlx.Tx, docID int64) error {
	s.linksCleared = append(s.linksCleared, docID)
	return nil
}

func (s *stubDocumentStore) InsertLegislationLinkTx(_ context.Context, _ *sqlx.Tx, link models.DocumentLegislation) error {
	s.links = append(s.links, link)
	return nil
}

type stubLookupStore struct {
	types  map[int64]models.DocumentType
	appIDs map[string]string
}

func newStubLookupStore() *stubLookupStore {
	return &stubLookupStore{
		types: map[int64]models.DocumentType{
			1: {SystemID: 1, Name: "Contract"},
			2: {SystemID: 2, Name: "Passport Copy"},
			3: {SystemID: 3, Name: "Judicial Card", HasExpiry: true},
		},
		appIDs: map[string]string{"PDF": "ACROBAT"},
	}
}

func (s *stubLookupStore) DocumentTypeByID(_ context.Context, id int64) (*models.DocumentType, error) {
	docType, ok := s.types[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &docType, nil
}

func (s *stubLookupStore) ResolveAppID(_ context.Context, extension string) (string, error) {
	if appID, ok := s.appIDs[strings.ToUpper(extension)]; ok {
		return appID, nil
	}
	return "UNKNOWN", nil
}

type stubHRStore struct {
	employees map[string]models.HREmployee
	archived  map[string]struct{}
	profiles  map[string]models.HRProfile
}

func newStubHRStore() *stubHRStore {
	return &stubHRStore{
		employees: map[string]models.HREmployee{
			"1001": {EmpNo: "1001", EmpName: "Ali Hassan"},
			"1002": {EmpNo: "1002", EmpName: "Sara Ahmed"},
		},
		archived: make(map[string]struct{}),
		profiles: make(map[string]models.HRProfile),
	}
}

func (s *stubHRStore) GetByEmpNo(_ context.Context, empNo string) (*models.HREmployee, error) {
	employee, ok := s.employees[empNo]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &employee, nil
}

func (s *stubHRStore) List(context.Context, string) ([]models.HREmployee, error) {
	list := make([]models.HREmployee, 0, len(s.employees))
	for _, employee := range s.employees {
		list = append(list, employee)
	}
	return list, nil
}

func (s *stubHRStore) ArchivedEmpNos(context.Context) (map[string]struct{}, error) {
	return s.archived, nil
}

func (s *stubHRStore) UpdateProfileTx(_ context.Context, _ *sqlx.Tx, empNo string, profile models.HRProfile) error {
	if !profile.IsZero() {
		s.profiles[empNo] = profile
	}
	return nil
}

type stubUploader struct {
	uploads    []dms.UploadRequest
	nextDocNum int64
	failOn     string
}

func newStubUploader() *stubUploader {
	return &stubUploader{nextDocNum: 500000}
}

func (s *stubUploader) Upload(_ context.Context, _ string, upload dms.UploadRequest) (*dms.UploadResult, error) {
	if s.failOn != "" && upload.DocName == s.failOn {
		return nil, &dms.CallError{Op: "CreateObject", Code: 9}
	}
	s.uploads = append(s.uploads, upload)
	s.nextDocNum++
	return &dms.UploadResult{DocNumber: s.nextDocNum, VersionID: "V1"}, nil
}

type stubMetrics struct {
	uploads      map[string]int
	importedRows int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{uploads: make(map[string]int)}
}

func (s *stubMetrics) RecordDMSUpload(outcome string) { s.uploads[outcome]++ }
func (s *stubMetrics) RecordImportedRows(n int)       { s.importedRows += n }

type stubStatusResolver struct {
	statuses []models.EmployeeStatus
}

func (s *stubStatusResolver) Statuses(context.Context) ([]models.EmployeeStatus, error) {
	return s.statuses, nil
}

type stubSessionStore struct {
	saved map[string]string
	ttl   time.Duration
	err   error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{saved: make(map[string]string)}
}

func (s *stubSessionStore) Save(_ context.Context, sessionID, dst string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.saved[sessionID] = dst
	s.ttl = ttl
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, sessionID string) (string, error) {
	dst, ok := s.saved[sessionID]
	if !ok {
		return "", errors.New("session expired")
	}
	return dst, nil
}

func (s *stubSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.saved, sessionID)
	return nil
}

type stubDMSAuth struct {
	dst  string
	err  error
	seen []string
}

func (s *stubDMSAuth) Login(_ context.Context, username, _ string) (string, error) {
	s.seen = append(s.seen, username)
	if s.err != nil {
		return "", s.err
	}
	return s.dst, nil
}

type stubSecurityReader struct {
	levels map[string]string
}

func (s *stubSecurityReader) SecurityLevel(_ context.Context, username string) (string, error) {
	if level, ok := s.levels[username]; ok {
		return level, nil
	}
	return models.SecurityViewer, nil
}

func (s *stubSecurityReader) FullName(_ context.Context, username string) (string, error) {
	return fmt.Sprintf("Full %s", username), nil
}
