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

// --- Mock StockBatchRepository ---
type MockStockBatchRepository struct {
	mock.Mock
}

var _ portsrepo.StockBatchRepositoryFacade = (*MockStockBatchRepository)(nil)

func (m *MockStockBatchRepository) FindStockBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.StockBatch, error) {
	args := m.Called(ctx, tenantID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) ListStockBatchesByItem(ctx context.Context, tenantID string, itemID string, includeDepleted bool) ([]domain.StockBatch, error) {
	args := m.Called(ctx, tenantID, itemID, includeDepleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) SaveStockBatch(ctx context.Context, batch domain.StockBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockStockBatchRepository) AllocateFIFO(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) ([]domain.BatchAllocation, error) {
	args := m.Called(ctx, tenantID, itemID, quantity, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BatchAllocation), args.Error(1)
}

func (m *MockStockBatchRepository) RestockFIFO(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) ([]domain.BatchAllocation, error) {
	args := m.Called(ctx, tenantID, itemID, quantity, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BatchAllocation), args.Error(1)
}

func (m *MockStockBatchRepository) RestockAllocations(ctx context.Context, tenantID string, allocations []domain.BatchAllocation, updatedBy string) error {
	args := m.Called(ctx, tenantID, allocations, updatedBy)
	return args.Error(0)
}

// --- Test Suite ---

type InventoryServiceTestSuite struct {
	suite.Suite
	mockStockRepo *MockStockBatchRepository
	service       portssvc.InventorySvc

	tenantID string
	userID   string
}

func (s *InventoryServiceTestSuite) SetupTest() {
	s.mockStockRepo = new(MockStockBatchRepository)
	s.service = services.NewInventoryService(s.mockStockRepo)

	s.tenantID = uuid.NewString()
	s.userID = uuid.NewString()
}

func (s *InventoryServiceTestSuite) TestConsumeFIFO_SumsCostAcrossBatches() {
	ctx := context.Background()

	allocations := []domain.BatchAllocation{
		{BatchID: "sb-1", ItemID: "item-1", Quantity: decimal.NewFromInt(10), UnitCost: decimal.RequireFromString("50.00")},
		{BatchID: "sb-2", ItemID: "item-1", Quantity: decimal.NewFromInt(5), UnitCost: decimal.RequireFromString("60.00")},
	}
	s.mockStockRepo.On("AllocateFIFO", ctx, s.tenantID, "item-1", decimal.NewFromInt(15), s.userID).
		Return(allocations, nil).Once()

	got, cost, err := s.service.ConsumeFIFO(ctx, s.tenantID, "item-1", decimal.NewFromInt(15), s.userID)

	s.Require().NoError(err)
	s.Len(got, 2)
	// 10*50 + 5*60
	s.True(cost.Equal(decimal.RequireFromString("800.00")))
}

func (s *InventoryServiceTestSuite) TestConsumeFIFO_InsufficientStock() {
	ctx := context.Background()

	s.mockStockRepo.On("AllocateFIFO", ctx, s.tenantID, "item-1", decimal.NewFromInt(100), s.userID).
		Return(nil, apperrors.ErrValidation).Once()

	_, _, err := s.service.ConsumeFIFO(ctx, s.tenantID, "item-1", decimal.NewFromInt(100), s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InventoryServiceTestSuite) TestRestock_SumsCostOfRefilledBatches() {
	ctx := context.Background()

	// The repository refills the most recently consumed capacity first: the
	// depleted newest batch takes its full 5 back, the rest tops up sb-2.
	refilled := []domain.BatchAllocation{
		{BatchID: "sb-3", ItemID: "item-1", Quantity: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(70)},
		{BatchID: "sb-2", ItemID: "item-1", Quantity: decimal.NewFromInt(3), UnitCost: decimal.NewFromInt(60)},
	}
	s.mockStockRepo.On("RestockFIFO", ctx, s.tenantID, "item-1", decimal.NewFromInt(8), s.userID).
		Return(refilled, nil).Once()

	cost, err := s.service.Restock(ctx, s.tenantID, "item-1", decimal.NewFromInt(8), s.userID)

	s.Require().NoError(err)
	// 5*70 + 3*60
	s.True(cost.Equal(decimal.RequireFromString("530.00")))
}

func (s *InventoryServiceTestSuite) TestRestock_BeyondConsumedFails() {
	ctx := context.Background()

	s.mockStockRepo.On("RestockFIFO", ctx, s.tenantID, "item-1", decimal.NewFromInt(5), s.userID).
		Return(nil, apperrors.ErrValidation).Once()

	_, err := s.service.Restock(ctx, s.tenantID, "item-1", decimal.NewFromInt(5), s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *InventoryServiceTestSuite) TestRestock_NonPositiveQuantityFails() {
	ctx := context.Background()

	_, err := s.service.Restock(ctx, s.tenantID, "item-1", decimal.Zero, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockStockRepo.AssertNotCalled(s.T(), "RestockFIFO", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *InventoryServiceTestSuite) TestRecordPurchase_DerivesUnitCost() {
	ctx := context.Background()

	var saved domain.StockBatch
	s.mockStockRepo.On("SaveStockBatch", ctx, mock.AnythingOfType("domain.StockBatch")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.StockBatch)
		}).
		Return(nil).Once()

	doc := domain.PurchaseBillDoc{
		BillID:       "bill-1",
		BillNumber:   "PB/24-25/001",
		BillDate:     time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
		TaxableValue: decimal.NewFromInt(1000),
		GSTRate:      decimal.NewFromInt(18),
		ItemID:       "item-1",
		Quantity:     decimal.NewFromInt(3),
	}

	batch, err := s.service.RecordPurchase(ctx, s.tenantID, doc, decimal.RequireFromString("60.00"), s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(batch)
	// 1000 / 3 rounded to currency precision.
	s.True(saved.UnitCost.Equal(decimal.RequireFromString("333.33")))
	s.True(saved.QuantityRemaining.Equal(saved.QuantityPurchased))
	s.True(saved.PurchasedWithGST)
	s.Equal(domain.StockBatchActive, saved.Status)
}

func (s *InventoryServiceTestSuite) TestRecordPurchase_NonStockableFails() {
	ctx := context.Background()

	doc := domain.PurchaseBillDoc{
		BillID:       "bill-2",
		TaxableValue: decimal.NewFromInt(500),
	}

	_, err := s.service.RecordPurchase(ctx, s.tenantID, doc, decimal.Zero, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockStockRepo.AssertNotCalled(s.T(), "SaveStockBatch", mock.Anything, mock.Anything)
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
