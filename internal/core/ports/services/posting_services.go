package services

import (
	"context"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/bahikhata/retail_ledger/internal/dto"
)

// PostingWriterSvc defines write operations of the posting engine
type PostingWriterSvc interface {
	// PostDocument translates a business document into a balanced ledger batch
	// via the posting rule selected by the request's document kind and appends
	// it atomically. Re-posting an already posted document fails with
	// ErrDuplicatePosting.
	PostDocument(ctx context.Context, tenantID string, req dto.CreatePostingRequest, creatorID string) (*domain.PostingBatch, error)
}

// PostingReaderSvc defines read operations over posted batches
type PostingReaderSvc interface {
	// GetBatchByID retrieves a posting batch with its lines.
	GetBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.PostingBatch, error)

	// GetBatchByReference retrieves the batch posted for a source document.
	GetBatchByReference(ctx context.Context, tenantID string, referenceType string, referenceID string, documentKind domain.DocumentKind) (*domain.PostingBatch, error)

	// ListBatches retrieves a paginated list of posting batches, newest first.
	ListBatches(ctx context.Context, tenantID string, params dto.ListPostingsParams) (*dto.ListPostingsResponse, error)

	// GetDocumentStatus retrieves the denormalized settlement state the posting
	// engine maintains for a source document.
	GetDocumentStatus(ctx context.Context, tenantID string, referenceType string, referenceID string) (*domain.DocumentStatus, error)

	// ListDocumentLines retrieves every ledger line referencing a source
	// document, across all batches posted against it.
	ListDocumentLines(ctx context.Context, tenantID string, referenceType string, referenceID string) ([]domain.LedgerLine, error)
}

// PostingSvcFacade combines all posting-engine service interfaces
type PostingSvcFacade interface {
	PostingWriterSvc
	PostingReaderSvc
}
