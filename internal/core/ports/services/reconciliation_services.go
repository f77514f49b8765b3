package services

import (
	"context"
	"time"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// ReconciliationSvc defines operations for verifying ledger invariants and
// working through recorded discrepancies
type ReconciliationSvc interface {
	// VerifyTenant re-checks the tenant's global debit/credit equality as of a
	// date and reports the bucket breakdown with any open discrepancies.
	VerifyTenant(ctx context.Context, tenantID string, asOf time.Time) (*domain.ReconciliationReport, error)

	// ListDiscrepancies retrieves a tenant's discrepancy records.
	ListDiscrepancies(ctx context.Context, tenantID string, includeResolved bool) ([]domain.Discrepancy, error)

	// ResolveDiscrepancy closes an open discrepancy with an operator's note.
	ResolveDiscrepancy(ctx context.Context, tenantID string, discrepancyID string, note string, resolvedBy string) error
}
