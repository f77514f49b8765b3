package repositories

import (
	"context"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// DocumentStatusReader defines read operations over the document settlement
// projection. Writes happen only inside posting transactions, via the status
// effect carried on a PostingBatch.
type DocumentStatusReader interface {
	// FindDocumentStatus retrieves the settlement projection for a source
	// document. ErrNotFound means the document has never been posted with a
	// status effect.
	FindDocumentStatus(ctx context.Context, tenantID string, referenceType string, referenceID string) (*domain.DocumentStatus, error)
}
