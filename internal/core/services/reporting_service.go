package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/dto"
	"github.com/bahikhata/retail_ledger/pkg/cache"
)

// reportingService compiles reports exclusively from ledger lines. There is
// deliberately no fallback to source-document tables: if the ledger is wrong
// the report must look wrong too.
type reportingService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	reportCache *cache.TrialBalanceCache
}

// NewReportingService creates the reporting service.
func NewReportingService(ledgerRepo portsrepo.LedgerRepositoryFacade, reportCache *cache.TrialBalanceCache) portssvc.ReportingSvc {
	return &reportingService{ledgerRepo: ledgerRepo, reportCache: reportCache}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// TrialBalance compiles the bucketed trial balance for a tenant as of a date.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalance, error) {
	if cached := s.reportCache.Get(ctx, tenantID, asOf); cached != nil {
		s.LogDebug(ctx, "Trial balance served from cache", slog.String("as_of", asOf.Format("2006-01-02")))
		return cached, nil
	}

	totalsByKind, err := s.ledgerRepo.SumsByKind(ctx, tenantID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger for trial balance")
		return nil, err
	}

	buckets, totalDebit, totalCredit, err := CompileBuckets(totalsByKind)
	if err != nil {
		s.LogError(ctx, err, "Failed to bucket ledger totals")
		return nil, err
	}

	tb := &domain.TrialBalance{
		TenantID:    tenantID,
		AsOf:        asOf,
		Buckets:     buckets,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		IsBalanced:  totalDebit.Equal(totalCredit),
	}
	if !tb.IsBalanced {
		s.LogError(ctx, errImbalancedReport, "Trial balance does not balance",
			slog.String("total_debit", totalDebit.String()),
			slog.String("total_credit", totalCredit.String()))
	}

	s.reportCache.Set(ctx, tb)
	return tb, nil
}

var errImbalancedReport = errors.New("ledger debits and credits diverge")

// CompileBuckets maps per-kind totals onto report buckets in their canonical
// order and returns the grand totals alongside.
func CompileBuckets(totalsByKind map[domain.TransactionKind]domain.KindTotals) ([]domain.BucketRow, decimal.Decimal, decimal.Decimal, error) {
	byBucket := make(map[domain.ReportBucket]*domain.BucketRow)
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for kind, totals := range totalsByKind {
		bucket, err := domain.BucketFor(kind)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero, err
		}
		row, ok := byBucket[bucket]
		if !ok {
			row = &domain.BucketRow{Bucket: bucket, Debit: decimal.Zero, Credit: decimal.Zero}
			byBucket[bucket] = row
		}
		row.Debit = row.Debit.Add(totals.Debit)
		row.Credit = row.Credit.Add(totals.Credit)
		totalDebit = totalDebit.Add(totals.Debit)
		totalCredit = totalCredit.Add(totals.Credit)
	}

	buckets := make([]domain.BucketRow, 0, len(byBucket))
	for _, bucket := range domain.ReportBuckets {
		if row, ok := byBucket[bucket]; ok {
			buckets = append(buckets, *row)
		}
	}
	return buckets, totalDebit, totalCredit, nil
}

// ListAccountLedger retrieves the paginated statement for one bank account.
func (s *reportingService) ListAccountLedger(ctx context.Context, tenantID string, accountID string, params dto.ListLedgerLinesParams) (*dto.ListLedgerLinesResponse, error) {
	lines, nextToken, err := s.ledgerRepo.ListLinesByAccount(ctx, tenantID, accountID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account ledger", slog.String("account_id", accountID))
		return nil, err
	}
	return &dto.ListLedgerLinesResponse{
		Lines:     dto.ToLedgerLineResponses(lines),
		NextToken: nextToken,
	}, nil
}
