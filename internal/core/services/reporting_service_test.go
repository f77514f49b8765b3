package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/core/services"
	"github.com/bahikhata/retail_ledger/internal/dto"
	"github.com/bahikhata/retail_ledger/pkg/cache"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.ReportingSvc

	tenantID string
	asOf     time.Time
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.service = services.NewReportingService(s.mockLedgerRepo, cache.NewTrialBalanceCache(nil))

	s.tenantID = uuid.NewString()
	s.asOf = time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)
}

func (s *ReportingServiceTestSuite) TestTrialBalance_BucketsKindTotals() {
	ctx := context.Background()

	// One same-state paid sale: 1000 taxable at 18%.
	totals := map[domain.TransactionKind]domain.KindTotals{
		domain.KindInvoicePayment: {Debit: decimal.RequireFromString("1180.00"), Credit: decimal.Zero},
		domain.KindSalesIncome:    {Debit: decimal.Zero, Credit: decimal.RequireFromString("1000.00")},
		domain.KindGSTPayableCGST: {Debit: decimal.Zero, Credit: decimal.RequireFromString("90.00")},
		domain.KindGSTPayableSGST: {Debit: decimal.Zero, Credit: decimal.RequireFromString("90.00")},
	}
	s.mockLedgerRepo.On("SumsByKind", mock.Anything, s.tenantID, s.asOf).
		Return(totals, nil).Once()

	tb, err := s.service.TrialBalance(ctx, s.tenantID, s.asOf)

	s.Require().NoError(err)
	s.Require().NotNil(tb)
	s.True(tb.IsBalanced)
	s.True(tb.TotalDebit.Equal(decimal.RequireFromString("1180.00")))
	s.True(tb.TotalCredit.Equal(decimal.RequireFromString("1180.00")))

	// Both GST kinds collapse into one Tax Payable row; buckets keep display order.
	s.Require().Len(tb.Buckets, 3)
	s.Equal(domain.BucketCashBank, tb.Buckets[0].Bucket)
	s.True(tb.Buckets[0].Debit.Equal(decimal.RequireFromString("1180.00")))
	s.Equal(domain.BucketIncome, tb.Buckets[1].Bucket)
	s.True(tb.Buckets[1].Credit.Equal(decimal.RequireFromString("1000.00")))
	s.Equal(domain.BucketTaxPayable, tb.Buckets[2].Bucket)
	s.True(tb.Buckets[2].Credit.Equal(decimal.RequireFromString("180.00")))
}

func (s *ReportingServiceTestSuite) TestTrialBalance_FlagsImbalance() {
	ctx := context.Background()

	totals := map[domain.TransactionKind]domain.KindTotals{
		domain.KindInvoicePayment: {Debit: decimal.RequireFromString("1180.00"), Credit: decimal.Zero},
		domain.KindSalesIncome:    {Debit: decimal.Zero, Credit: decimal.RequireFromString("1000.00")},
	}
	s.mockLedgerRepo.On("SumsByKind", mock.Anything, s.tenantID, s.asOf).
		Return(totals, nil).Once()

	tb, err := s.service.TrialBalance(ctx, s.tenantID, s.asOf)

	s.Require().NoError(err)
	s.False(tb.IsBalanced)
	s.True(tb.TotalDebit.Sub(tb.TotalCredit).Equal(decimal.RequireFromString("180.00")))
}

func (s *ReportingServiceTestSuite) TestTrialBalance_EmptyLedger() {
	ctx := context.Background()

	s.mockLedgerRepo.On("SumsByKind", mock.Anything, s.tenantID, s.asOf).
		Return(map[domain.TransactionKind]domain.KindTotals{}, nil).Once()

	tb, err := s.service.TrialBalance(ctx, s.tenantID, s.asOf)

	s.Require().NoError(err)
	s.True(tb.IsBalanced)
	s.Empty(tb.Buckets)
	s.True(tb.TotalDebit.IsZero())
	s.True(tb.TotalCredit.IsZero())
}

func (s *ReportingServiceTestSuite) TestListAccountLedger_PassesTokenThrough() {
	ctx := context.Background()

	lines := []domain.LedgerLine{
		{LineID: "line-1", Kind: domain.KindInvoicePayment, DebitAmount: decimal.NewFromInt(500)},
	}
	token := "next-page"
	s.mockLedgerRepo.On("ListLinesByAccount", mock.Anything, s.tenantID, "acc-1", 50, (*string)(nil)).
		Return(lines, token, nil).Once()

	resp, err := s.service.ListAccountLedger(ctx, s.tenantID, "acc-1", dto.ListLedgerLinesParams{Limit: 50})

	s.Require().NoError(err)
	s.Require().Len(resp.Lines, 1)
	s.Equal("line-1", resp.Lines[0].LineID)
	s.Require().NotNil(resp.NextToken)
	s.Equal(token, *resp.NextToken)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
