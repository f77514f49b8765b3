package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/core/services"
)

// --- Mock DiscrepancyRepository ---
type MockDiscrepancyRepository struct {
	mock.Mock
}

var _ portsrepo.DiscrepancyRepositoryFacade = (*MockDiscrepancyRepository)(nil)

func (m *MockDiscrepancyRepository) SaveDiscrepancy(ctx context.Context, discrepancy domain.Discrepancy) error {
	args := m.Called(ctx, discrepancy)
	return args.Error(0)
}

func (m *MockDiscrepancyRepository) FindDiscrepancyByID(ctx context.Context, tenantID string, discrepancyID string) (*domain.Discrepancy, error) {
	args := m.Called(ctx, tenantID, discrepancyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyRepository) ListDiscrepanciesByTenant(ctx context.Context, tenantID string, includeResolved bool) ([]domain.Discrepancy, error) {
	args := m.Called(ctx, tenantID, includeResolved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyRepository) MarkResolved(ctx context.Context, tenantID string, discrepancyID string, note string, resolvedBy string) error {
	args := m.Called(ctx, tenantID, discrepancyID, note, resolvedBy)
	return args.Error(0)
}

// --- Test Suite ---

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo      *MockLedgerRepository
	mockDiscrepancyRepo *MockDiscrepancyRepository
	service             portssvc.ReconciliationSvc

	tenantID string
	asOf     time.Time
}

func (s *ReconciliationServiceTestSuite) SetupTest() {
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockDiscrepancyRepo = new(MockDiscrepancyRepository)
	s.service = services.NewReconciliationService(s.mockLedgerRepo, s.mockDiscrepancyRepo)

	s.tenantID = uuid.NewString()
	s.asOf = time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC)
}

func (s *ReconciliationServiceTestSuite) TestVerifyTenant_BalancedLedger() {
	ctx := context.Background()

	totals := map[domain.TransactionKind]domain.KindTotals{
		domain.KindAccountsReceivable: {Debit: decimal.RequireFromString("590.00"), Credit: decimal.Zero},
		domain.KindSalesIncome:        {Debit: decimal.Zero, Credit: decimal.RequireFromString("500.00")},
		domain.KindGSTPayableIGST:     {Debit: decimal.Zero, Credit: decimal.RequireFromString("90.00")},
	}
	s.mockLedgerRepo.On("SumsByKind", mock.Anything, s.tenantID, s.asOf).
		Return(totals, nil).Once()
	s.mockDiscrepancyRepo.On("ListDiscrepanciesByTenant", mock.Anything, s.tenantID, false).
		Return([]domain.Discrepancy{}, nil).Once()

	report, err := s.service.VerifyTenant(ctx, s.tenantID, s.asOf)

	s.Require().NoError(err)
	s.True(report.InBalance)
	s.True(report.Difference.IsZero())
	s.Empty(report.OpenDiscrepancies)
	s.Require().Len(report.Buckets, 3)
}

func (s *ReconciliationServiceTestSuite) TestVerifyTenant_ReportsDrift() {
	ctx := context.Background()

	totals := map[domain.TransactionKind]domain.KindTotals{
		domain.KindAccountsReceivable: {Debit: decimal.RequireFromString("600.00"), Credit: decimal.Zero},
		domain.KindSalesIncome:        {Debit: decimal.Zero, Credit: decimal.RequireFromString("500.00")},
	}
	open := []domain.Discrepancy{
		{DiscrepancyID: "disc-1", Status: domain.DiscrepancyOpen, Difference: decimal.RequireFromString("100.00")},
	}
	s.mockLedgerRepo.On("SumsByKind", mock.Anything, s.tenantID, s.asOf).
		Return(totals, nil).Once()

	var saved domain.Discrepancy
	s.mockDiscrepancyRepo.On("SaveDiscrepancy", mock.Anything, mock.AnythingOfType("domain.Discrepancy")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Discrepancy)
		}).
		Return(nil).Once()
	s.mockDiscrepancyRepo.On("ListDiscrepanciesByTenant", mock.Anything, s.tenantID, false).
		Return(open, nil).Once()

	report, err := s.service.VerifyTenant(ctx, s.tenantID, s.asOf)

	s.Require().NoError(err)
	s.False(report.InBalance)
	s.True(report.Difference.Equal(decimal.RequireFromString("100.00")))
	s.Require().Len(report.OpenDiscrepancies, 1)
	s.Equal("disc-1", report.OpenDiscrepancies[0].DiscrepancyID)

	// The drift itself must be persisted as an open discrepancy with no
	// triggering batch.
	s.mockDiscrepancyRepo.AssertExpectations(s.T())
	s.Equal(s.tenantID, saved.TenantID)
	s.Nil(saved.BatchID)
	s.Equal(domain.DiscrepancyOpen, saved.Status)
	s.True(saved.Difference.Equal(decimal.RequireFromString("100.00")))
	s.NotEmpty(saved.Buckets)
}

func (s *ReconciliationServiceTestSuite) TestVerifyTenant_DriftSaveFailure() {
	ctx := context.Background()

	totals := map[domain.TransactionKind]domain.KindTotals{
		domain.KindAccountsReceivable: {Debit: decimal.RequireFromString("600.00"), Credit: decimal.Zero},
		domain.KindSalesIncome:        {Debit: decimal.Zero, Credit: decimal.RequireFromString("500.00")},
	}
	s.mockLedgerRepo.On("SumsByKind", mock.Anything, s.tenantID, s.asOf).
		Return(totals, nil).Once()
	s.mockDiscrepancyRepo.On("SaveDiscrepancy", mock.Anything, mock.AnythingOfType("domain.Discrepancy")).
		Return(apperrors.NewAppError(500, "insert failed", nil)).Once()

	report, err := s.service.VerifyTenant(ctx, s.tenantID, s.asOf)

	s.Require().Error(err)
	s.Nil(report)
	s.mockDiscrepancyRepo.AssertNotCalled(s.T(), "ListDiscrepanciesByTenant", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestResolveDiscrepancy_Delegates() {
	ctx := context.Background()

	s.mockDiscrepancyRepo.On("MarkResolved", mock.Anything, s.tenantID, "disc-1", "manual journal fixed it", "ops-user").
		Return(nil).Once()

	err := s.service.ResolveDiscrepancy(ctx, s.tenantID, "disc-1", "manual journal fixed it", "ops-user")

	s.Require().NoError(err)
	s.mockDiscrepancyRepo.AssertExpectations(s.T())
}

func (s *ReconciliationServiceTestSuite) TestResolveDiscrepancy_NotFound() {
	ctx := context.Background()

	s.mockDiscrepancyRepo.On("MarkResolved", mock.Anything, s.tenantID, "disc-missing", "note", "ops-user").
		Return(apperrors.ErrNotFound).Once()

	err := s.service.ResolveDiscrepancy(ctx, s.tenantID, "disc-missing", "note", "ops-user")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
