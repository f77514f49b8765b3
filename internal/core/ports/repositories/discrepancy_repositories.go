package repositories

import (
	"context"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// DiscrepancyReader defines read operations for discrepancy records
type DiscrepancyReader interface {
	// FindDiscrepancyByID retrieves a discrepancy by its unique identifier.
	FindDiscrepancyByID(ctx context.Context, tenantID string, discrepancyID string) (*domain.Discrepancy, error)

	// ListDiscrepanciesByTenant retrieves a tenant's discrepancies, newest
	// first. Resolved records are included only when includeResolved is set.
	ListDiscrepanciesByTenant(ctx context.Context, tenantID string, includeResolved bool) ([]domain.Discrepancy, error)
}

// DiscrepancyWriter defines write operations for discrepancy records
type DiscrepancyWriter interface {
	// SaveDiscrepancy persists a new discrepancy record.
	SaveDiscrepancy(ctx context.Context, discrepancy domain.Discrepancy) error

	// MarkResolved transitions an open discrepancy to RESOLVED with a note.
	MarkResolved(ctx context.Context, tenantID string, discrepancyID string, note string, resolvedBy string) error
}

// DiscrepancyRepositoryFacade combines all discrepancy repository interfaces
type DiscrepancyRepositoryFacade interface {
	DiscrepancyReader
	DiscrepancyWriter
}
