package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"

	"github.com/rta-dms/pta-archive-api/internal/dms"
	"github.com/rta-dms/pta-archive-api/internal/models"
)

type stubDocMetadata struct {
	docs map[int64]*models.Document
}

func (s *stubDocMetadata) GetByDocNumber(_ context.Context, docNumber int64) (*models.Document, error) {
	doc, ok := s.docs[docNumber]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return doc, nil
}

type stubFetcher struct {
	stored map[int64]*models.StoredDocument
}

func (s *stubFetcher) Retrieve(_ context.Context, _ string, docNumber int64) (*models.StoredDocument, error) {
	stored, ok := s.stored[docNumber]
	if !ok {
		return nil, dms.ErrDocumentNotFound
	}
	return stored, nil
}

func TestDocumentServiceDownload(t *testing.T) {
	meta := &stubDocMetadata{docs: map[int64]*models.Document{
		500123: {SystemID: 3, ArchiveID: 7, DocNumber: 500123, DocName: "Archive_1001_Contract"},
	}}
	fetcher := &stubFetcher{stored: map[int64]*models.StoredDocument{
		500123: {DocNumber: 500123, FileName: "Archive_1001_Contract.pdf", Content: []byte("PDF-DATA")},
	}}

	svc := NewDocumentService(meta, fetcher, nil)

	stored, doc, err := svc.Download(context.Background(), "DST-1", 500123)
	require.NoError(t, err)
	require.Equal(t, []byte("PDF-DATA"), stored.Content)
	require.Equal(t, "Archive_1001_Contract.pdf", stored.FileName)
	require.Equal(t, int64(7), doc.ArchiveID)
}

func TestDocumentServiceDownloadUnknownNumber(t *testing.T) {
	svc := NewDocumentService(&stubDocMetadata{docs: map[int64]*models.Document{}}, &stubFetcher{}, nil)

	_, _, err := svc.Download(context.Background(), "DST-1", 999)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestDocumentServiceDownloadGoneFromDMS(t *testing.T) {
	meta := &stubDocMetadata{docs: map[int64]*models.Document{
		500123: {SystemID: 3, DocNumber: 500123},
	}}

	svc := NewDocumentService(meta, &stubFetcher{}, nil)

	_, _, err := svc.Download(context.Background(), "DST-1", 500123)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
