package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
)

// reconciliationService re-checks ledger invariants on demand and manages
// the discrepancy worklist.
type reconciliationService struct {
	BaseService
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	discrepancyRepo portsrepo.DiscrepancyRepositoryFacade
}

// NewReconciliationService creates the reconciliation service.
func NewReconciliationService(ledgerRepo portsrepo.LedgerRepositoryFacade, discrepancyRepo portsrepo.DiscrepancyRepositoryFacade) portssvc.ReconciliationSvc {
	return &reconciliationService{ledgerRepo: ledgerRepo, discrepancyRepo: discrepancyRepo}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// VerifyTenant re-checks the global debit/credit equality as of a date.
func (s *reconciliationService) VerifyTenant(ctx context.Context, tenantID string, asOf time.Time) (*domain.ReconciliationReport, error) {
	totalsByKind, err := s.ledgerRepo.SumsByKind(ctx, tenantID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger for verification")
		return nil, err
	}

	buckets, totalDebit, totalCredit, err := CompileBuckets(totalsByKind)
	if err != nil {
		return nil, err
	}
	difference := totalDebit.Sub(totalCredit)

	if !difference.IsZero() {
		if err := s.recordDrift(ctx, tenantID, difference, buckets); err != nil {
			s.LogError(ctx, err, "Failed to record verification discrepancy")
			return nil, err
		}
	}

	open, err := s.discrepancyRepo.ListDiscrepanciesByTenant(ctx, tenantID, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open discrepancies")
		return nil, err
	}

	report := &domain.ReconciliationReport{
		TenantID:          tenantID,
		AsOf:              asOf,
		TotalDebit:        totalDebit,
		TotalCredit:       totalCredit,
		Difference:        difference,
		InBalance:         difference.IsZero(),
		Buckets:           buckets,
		OpenDiscrepancies: open,
	}
	if !report.InBalance {
		s.LogError(ctx, errImbalancedReport, "Verification found imbalance",
			slog.String("difference", difference.String()))
	} else {
		s.LogInfo(ctx, "Verification passed", slog.String("as_of", asOf.Format("2006-01-02")))
	}
	return report, nil
}

// recordDrift persists an open discrepancy for drift detected during
// verification. Unlike posting-time discrepancies there is no triggering
// batch, so BatchID stays nil.
func (s *reconciliationService) recordDrift(ctx context.Context, tenantID string, difference decimal.Decimal, buckets []domain.BucketRow) error {
	now := time.Now()
	return s.discrepancyRepo.SaveDiscrepancy(ctx, domain.Discrepancy{
		DiscrepancyID: uuid.NewString(),
		TenantID:      tenantID,
		Difference:    difference,
		Buckets:       buckets,
		Status:        domain.DiscrepancyOpen,
		DetectedAt:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	})
}

// ListDiscrepancies retrieves a tenant's discrepancy records.
func (s *reconciliationService) ListDiscrepancies(ctx context.Context, tenantID string, includeResolved bool) ([]domain.Discrepancy, error) {
	return s.discrepancyRepo.ListDiscrepanciesByTenant(ctx, tenantID, includeResolved)
}

// ResolveDiscrepancy closes an open discrepancy with an operator's note.
func (s *reconciliationService) ResolveDiscrepancy(ctx context.Context, tenantID string, discrepancyID string, note string, resolvedBy string) error {
	if err := s.discrepancyRepo.MarkResolved(ctx, tenantID, discrepancyID, note, resolvedBy); err != nil {
		s.LogError(ctx, err, "Failed to resolve discrepancy", slog.String("discrepancy_id", discrepancyID))
		return err
	}
	s.LogInfo(ctx, "Discrepancy resolved",
		slog.String("discrepancy_id", discrepancyID),
		slog.String("resolved_by", resolvedBy))
	return nil
}
