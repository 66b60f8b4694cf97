package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/dms"
	"github.com/rta-dms/pta-archive-api/internal/models"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

type documentMetadataStore interface {
	GetByDocNumber(ctx context.Context, docNumber int64) (*models.Document, error)
}

type documentFetcher interface {
	Retrieve(ctx context.Context, dst string, docNumber int64) (*models.StoredDocument, error)
}

// DocumentService serves stored document content. Only document
// numbers known to the metadata tables are fetched from the DMS, so
// callers cannot reach arbitrary objects in the library.
type DocumentService struct {
	documents documentMetadataStore
	fetcher   documentFetcher
	logger    *zap.Logger
}

func NewDocumentService(documents documentMetadataStore, fetcher documentFetcher, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{documents: documents, fetcher: fetcher, logger: logger}
}

// Download returns the document content and its metadata row.
func (s *DocumentService) Download(ctx context.Context, dst string, docNumber int64) (*models.StoredDocument, *models.Document, error) {
	meta, err := s.documents.GetByDocNumber(ctx, docNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document metadata")
	}

	stored, err := s.fetcher.Retrieve(ctx, dst, docNumber)
	if err != nil {
		if errors.Is(err, dms.ErrDocumentNotFound) {
			// Metadata exists but the object is gone from the DMS.
			s.logger.Warn("document missing from dms",
				zap.Int64("doc_number", docNumber))
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "document content not found in DMS")
		}
		return nil, nil, appErrors.Wrap(err, "DMS_UNAVAILABLE", 502, "failed to retrieve document from DMS")
	}

	return stored, meta, nil
}
