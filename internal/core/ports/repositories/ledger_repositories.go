package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// LedgerReader defines read operations for posting batches and ledger lines
type LedgerReader interface {
	// FindBatchByID retrieves a posting batch with its lines by its unique identifier.
	FindBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.PostingBatch, error)

	// FindBatchByReference retrieves the posting batch previously written for a
	// source document, keyed by (referenceType, referenceID, documentKind).
	FindBatchByReference(ctx context.Context, tenantID string, referenceType string, referenceID string, documentKind domain.DocumentKind) (*domain.PostingBatch, error)

	// ListLinesByReference retrieves every ledger line written for a source
	// document across all its batches, ordered by creation time.
	ListLinesByReference(ctx context.Context, tenantID string, referenceType string, referenceID string) ([]domain.LedgerLine, error)

	// ListLinesByAccount retrieves a paginated list of ledger lines touching a
	// bank account using token-based pagination.
	// It returns the lines, a token for the next page, and an error.
	ListLinesByAccount(ctx context.Context, tenantID string, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)

	// ListBatchesByTenant retrieves a paginated list of posting batches for a
	// tenant using token-based pagination, newest first.
	ListBatchesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.PostingBatch, *string, error)
}

// LedgerWriter defines write operations for posting batches
type LedgerWriter interface {
	// AppendBatch persists a balanced posting batch and its lines atomically,
	// updating bank account balances for lines that carry an account. The whole
	// operation runs under a per-tenant advisory lock; after insertion the
	// tenant's global debit/credit sums are re-verified, and a drift within
	// tolerance is absorbed by an extra rounding adjustment line while a larger
	// one rolls everything back with a LedgerImbalanceError.
	// A batch whose reference key was already posted fails with ErrDuplicatePosting.
	AppendBatch(ctx context.Context, batch domain.PostingBatch, tolerance decimal.Decimal) (*domain.PostingBatch, error)
}

// LedgerAggregator defines aggregate read operations over ledger lines
type LedgerAggregator interface {
	// SumsByKind returns the debit/credit totals per transaction kind for a
	// tenant, over lines dated on or before asOf.
	SumsByKind(ctx context.Context, tenantID string, asOf time.Time) (map[domain.TransactionKind]domain.KindTotals, error)

	// SumForKind returns the net total (credits minus debits) for a single
	// transaction kind, scoped to one source document.
	SumForKind(ctx context.Context, tenantID string, referenceType string, referenceID string, kind domain.TransactionKind) (decimal.Decimal, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
// This is a facade for clients that need access to all operations
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerAggregator
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
