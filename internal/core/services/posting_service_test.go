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
	"github.com/bahikhata/retail_ledger/internal/dto"
	"github.com/bahikhata/retail_ledger/pkg/cache"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) AppendBatch(ctx context.Context, batch domain.PostingBatch, tolerance decimal.Decimal) (*domain.PostingBatch, error) {
	args := m.Called(ctx, batch, tolerance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingBatch), args.Error(1)
}

func (m *MockLedgerRepository) FindBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.PostingBatch, error) {
	args := m.Called(ctx, tenantID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingBatch), args.Error(1)
}

func (m *MockLedgerRepository) FindBatchByReference(ctx context.Context, tenantID string, referenceType string, referenceID string, documentKind domain.DocumentKind) (*domain.PostingBatch, error) {
	args := m.Called(ctx, tenantID, referenceType, referenceID, documentKind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingBatch), args.Error(1)
}

func (m *MockLedgerRepository) ListLinesByReference(ctx context.Context, tenantID string, referenceType string, referenceID string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, tenantID, referenceType, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockLedgerRepository) ListLinesByAccount(ctx context.Context, tenantID string, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	args := m.Called(ctx, tenantID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerLine), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) ListBatchesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.PostingBatch, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.PostingBatch), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SumsByKind(ctx context.Context, tenantID string, asOf time.Time) (map[domain.TransactionKind]domain.KindTotals, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TransactionKind]domain.KindTotals), args.Error(1)
}

func (m *MockLedgerRepository) SumForKind(ctx context.Context, tenantID string, referenceType string, referenceID string, kind domain.TransactionKind) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, referenceType, referenceID, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock InventoryService ---
type MockInventoryService struct {
	mock.Mock
}

var _ portssvc.InventorySvc = (*MockInventoryService)(nil)

func (m *MockInventoryService) ConsumeFIFO(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) ([]domain.BatchAllocation, decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, itemID, quantity, updatedBy)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).([]domain.BatchAllocation), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockInventoryService) Restock(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, itemID, quantity, updatedBy)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryService) UndoConsume(ctx context.Context, tenantID string, allocations []domain.BatchAllocation, updatedBy string) error {
	args := m.Called(ctx, tenantID, allocations, updatedBy)
	return args.Error(0)
}

func (m *MockInventoryService) RecordPurchase(ctx context.Context, tenantID string, doc domain.PurchaseBillDoc, gstPerUnit decimal.Decimal, createdBy string) (*domain.StockBatch, error) {
	args := m.Called(ctx, tenantID, doc, gstPerUnit, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockBatch), args.Error(1)
}

func (m *MockInventoryService) ListStockBatches(ctx context.Context, tenantID string, itemID string, includeDepleted bool) ([]domain.StockBatch, error) {
	args := m.Called(ctx, tenantID, itemID, includeDepleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockBatch), args.Error(1)
}

// --- Mock DocumentStatusReader ---
type MockDocumentStatusRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentStatusReader = (*MockDocumentStatusRepository)(nil)

func (m *MockDocumentStatusRepository) FindDocumentStatus(ctx context.Context, tenantID string, referenceType string, referenceID string) (*domain.DocumentStatus, error) {
	args := m.Called(ctx, tenantID, referenceType, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentStatus), args.Error(1)
}

// --- Test Suite ---

type PostingServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockDocStatus   *MockDocumentStatusRepository
	mockDiscrepancy *MockDiscrepancyRepository
	mockInventory   *MockInventoryService
	service         portssvc.PostingSvcFacade

	tenantID  string
	creatorID string
	tolerance decimal.Decimal

	capturedBatch domain.PostingBatch
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockDocStatus = new(MockDocumentStatusRepository)
	s.mockDiscrepancy = new(MockDiscrepancyRepository)
	s.mockInventory = new(MockInventoryService)
	s.tolerance = decimal.RequireFromString("1.00")
	s.service = services.NewPostingService(s.mockLedgerRepo, s.mockDocStatus, s.mockDiscrepancy, s.mockInventory, cache.NewTrialBalanceCache(nil), s.tolerance, "KA")

	s.tenantID = uuid.NewString()
	s.creatorID = uuid.NewString()
}

// expectAppendBatch captures the batch handed to the repository and echoes it
// back as the posted result.
func (s *PostingServiceTestSuite) expectAppendBatch() {
	s.mockLedgerRepo.On("AppendBatch", mock.Anything, mock.AnythingOfType("domain.PostingBatch"), s.tolerance).
		Run(func(args mock.Arguments) {
			s.capturedBatch = args.Get(1).(domain.PostingBatch)
		}).
		Return(&domain.PostingBatch{BatchID: "posted"}, nil).Once()
}

// expectInvoiceSums stubs the per-kind aggregates of a previously posted
// invoice, as a sales return reads them.
func (s *PostingServiceTestSuite) expectInvoiceSums(invoiceID, taxable, cgst, sgst, igst string) {
	sums := map[domain.TransactionKind]string{
		domain.KindSalesIncome:    taxable,
		domain.KindGSTPayableCGST: cgst,
		domain.KindGSTPayableSGST: sgst,
		domain.KindGSTPayableIGST: igst,
	}
	for kind, amount := range sums {
		s.mockLedgerRepo.On("SumForKind", mock.Anything, s.tenantID, "invoice", invoiceID, kind).
			Return(decimal.RequireFromString(amount), nil).Once()
	}
}

func (s *PostingServiceTestSuite) lineByKind(kind domain.TransactionKind) *domain.LedgerLine {
	for i := range s.capturedBatch.Lines {
		if s.capturedBatch.Lines[i].Kind == kind {
			return &s.capturedBatch.Lines[i]
		}
	}
	return nil
}

func (s *PostingServiceTestSuite) TestPostSaleInvoice_SameStateSplitsGST() {
	ctx := context.Background()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocSaleInvoice,
		SaleInvoice: &dto.SaleInvoicePayload{
			InvoiceID:     "inv-1",
			InvoiceNumber: "INV/24-25/001",
			InvoiceDate:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Sharma Traders",
			CustomerState: "KA",
			TaxableValue:  decimal.NewFromInt(1000),
			GSTRate:       decimal.NewFromInt(18),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	s.mockLedgerRepo.AssertExpectations(s.T())

	s.Require().Len(s.capturedBatch.Lines, 4)
	s.Equal(domain.DocSaleInvoice, s.capturedBatch.DocumentKind)
	s.Equal("inv-1", s.capturedBatch.ReferenceID)

	receivable := s.lineByKind(domain.KindAccountsReceivable)
	s.Require().NotNil(receivable)
	s.True(receivable.DebitAmount.Equal(decimal.RequireFromString("1180")))
	s.Nil(receivable.AccountID)

	s.Require().NotNil(s.capturedBatch.StatusEffect)
	s.Equal(domain.PaymentStatusUnpaid, s.capturedBatch.StatusEffect.PaymentStatus)
	s.True(s.capturedBatch.StatusEffect.BalanceDue.Equal(decimal.RequireFromString("1180")))
	s.Equal("inv-1", s.capturedBatch.StatusEffect.ReferenceID)

	income := s.lineByKind(domain.KindSalesIncome)
	s.Require().NotNil(income)
	s.True(income.CreditAmount.Equal(decimal.NewFromInt(1000)))

	cgst := s.lineByKind(domain.KindGSTPayableCGST)
	sgst := s.lineByKind(domain.KindGSTPayableSGST)
	s.Require().NotNil(cgst)
	s.Require().NotNil(sgst)
	s.True(cgst.CreditAmount.Equal(decimal.RequireFromString("90")))
	s.True(sgst.CreditAmount.Equal(decimal.RequireFromString("90")))
	s.Nil(s.lineByKind(domain.KindGSTPayableIGST))

	s.True(s.capturedBatch.DebitTotal().Equal(s.capturedBatch.CreditTotal()))
}

func (s *PostingServiceTestSuite) TestPostSaleInvoice_InterstateUsesIGST() {
	ctx := context.Background()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocSaleInvoice,
		SaleInvoice: &dto.SaleInvoicePayload{
			InvoiceID:     "inv-2",
			InvoiceNumber: "INV/24-25/002",
			InvoiceDate:   time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Mehta & Sons",
			CustomerState: "MH",
			TaxableValue:  decimal.NewFromInt(1000),
			GSTRate:       decimal.NewFromInt(18),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	igst := s.lineByKind(domain.KindGSTPayableIGST)
	s.Require().NotNil(igst)
	s.True(igst.CreditAmount.Equal(decimal.RequireFromString("180")))
	s.Nil(s.lineByKind(domain.KindGSTPayableCGST))
	s.Nil(s.lineByKind(domain.KindGSTPayableSGST))
}

func (s *PostingServiceTestSuite) TestPostSaleInvoice_PaidDebitsAccount() {
	ctx := context.Background()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocSaleInvoice,
		SaleInvoice: &dto.SaleInvoicePayload{
			InvoiceID:     "inv-3",
			InvoiceNumber: "INV/24-25/003",
			InvoiceDate:   time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC),
			TaxableValue:  decimal.NewFromInt(500),
			GSTRate:       decimal.NewFromInt(5),
			Paid:          true,
			AccountID:     "acc-cash",
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	payment := s.lineByKind(domain.KindInvoicePayment)
	s.Require().NotNil(payment)
	s.Require().NotNil(payment.AccountID)
	s.Equal("acc-cash", *payment.AccountID)
	s.True(payment.DebitAmount.Equal(decimal.RequireFromString("525")))
	s.Nil(s.lineByKind(domain.KindAccountsReceivable))

	s.Require().NotNil(s.capturedBatch.StatusEffect)
	s.Equal(domain.PaymentStatusPaid, s.capturedBatch.StatusEffect.PaymentStatus)
	s.True(s.capturedBatch.StatusEffect.BalanceDue.IsZero())
}

func (s *PostingServiceTestSuite) TestPostSaleInvoice_PaidWithoutAccountFails() {
	ctx := context.Background()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocSaleInvoice,
		SaleInvoice: &dto.SaleInvoicePayload{
			InvoiceID:     "inv-4",
			InvoiceNumber: "INV/24-25/004",
			InvoiceDate:   time.Now(),
			TaxableValue:  decimal.NewFromInt(100),
			Paid:          true,
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "AppendBatch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostDocument_MissingPayloadFails() {
	ctx := context.Background()

	req := dto.CreatePostingRequest{DocumentKind: domain.DocSaleInvoice}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestPostDocument_DuplicateSurfacesConflict() {
	ctx := context.Background()
	s.mockLedgerRepo.On("AppendBatch", mock.Anything, mock.AnythingOfType("domain.PostingBatch"), s.tolerance).
		Return(nil, apperrors.ErrDuplicatePosting).Once()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocSaleInvoice,
		SaleInvoice: &dto.SaleInvoicePayload{
			InvoiceID:     "inv-5",
			InvoiceNumber: "INV/24-25/005",
			InvoiceDate:   time.Now(),
			TaxableValue:  decimal.NewFromInt(100),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicatePosting)
}

func (s *PostingServiceTestSuite) TestPostPurchaseBill_StockableCreatesBatch() {
	ctx := context.Background()
	s.expectAppendBatch()
	s.mockInventory.On("RecordPurchase", mock.Anything, s.tenantID, mock.AnythingOfType("domain.PurchaseBillDoc"), mock.AnythingOfType("decimal.Decimal"), s.creatorID).
		Return(&domain.StockBatch{BatchID: "sb-1"}, nil).Once()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocPurchaseBill,
		PurchaseBill: &dto.PurchaseBillPayload{
			BillID:       "bill-1",
			BillNumber:   "PB/24-25/010",
			BillDate:     time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
			VendorName:   "Gupta Wholesale",
			VendorState:  "KA",
			TaxableValue: decimal.NewFromInt(2000),
			GSTRate:      decimal.NewFromInt(12),
			ItemID:       "item-1",
			Quantity:     decimal.NewFromInt(40),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	s.mockInventory.AssertExpectations(s.T())

	inventory := s.lineByKind(domain.KindInventoryValue)
	s.Require().NotNil(inventory)
	s.True(inventory.DebitAmount.Equal(decimal.NewFromInt(2000)))

	itc := s.lineByKind(domain.KindInputTaxCredit)
	s.Require().NotNil(itc)
	s.True(itc.DebitAmount.Equal(decimal.RequireFromString("240")))

	payable := s.lineByKind(domain.KindAccountsPayable)
	s.Require().NotNil(payable)
	s.True(payable.CreditAmount.Equal(decimal.RequireFromString("2240")))
}

func (s *PostingServiceTestSuite) TestPostPurchaseBill_PureExpenseSkipsStock() {
	ctx := context.Background()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocPurchaseBill,
		PurchaseBill: &dto.PurchaseBillPayload{
			BillID:       "bill-2",
			BillNumber:   "PB/24-25/011",
			BillDate:     time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC),
			VendorName:   "City Electric",
			TaxableValue: decimal.NewFromInt(300),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	s.Require().NotNil(s.lineByKind(domain.KindOperatingExpense))
	s.Nil(s.lineByKind(domain.KindInventoryValue))
	s.mockInventory.AssertNotCalled(s.T(), "RecordPurchase", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostPurchaseBill_StockFailureRecordsDiscrepancy() {
	ctx := context.Background()
	s.expectAppendBatch()
	s.mockInventory.On("RecordPurchase", mock.Anything, s.tenantID, mock.AnythingOfType("domain.PurchaseBillDoc"), mock.AnythingOfType("decimal.Decimal"), s.creatorID).
		Return(nil, apperrors.NewAppError(500, "insert failed", nil)).Once()

	var saved domain.Discrepancy
	s.mockDiscrepancy.On("SaveDiscrepancy", mock.Anything, mock.AnythingOfType("domain.Discrepancy")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Discrepancy)
		}).
		Return(nil).Once()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocPurchaseBill,
		PurchaseBill: &dto.PurchaseBillPayload{
			BillID:       "bill-3",
			BillNumber:   "PB/24-25/012",
			BillDate:     time.Date(2024, 7, 7, 0, 0, 0, 0, time.UTC),
			VendorName:   "Gupta Wholesale",
			VendorState:  "KA",
			TaxableValue: decimal.NewFromInt(2000),
			GSTRate:      decimal.NewFromInt(12),
			ItemID:       "item-1",
			Quantity:     decimal.NewFromInt(40),
		},
	}

	// The committed posting survives; the missing stock batch becomes an open
	// discrepancy against it.
	posted, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	s.mockDiscrepancy.AssertExpectations(s.T())
	s.Equal(s.tenantID, saved.TenantID)
	s.Require().NotNil(saved.BatchID)
	s.Equal(posted.BatchID, *saved.BatchID)
	s.Equal(domain.DiscrepancyOpen, saved.Status)
	s.True(saved.Difference.Equal(decimal.NewFromInt(2000)))
}

func (s *PostingServiceTestSuite) TestPostSalesReturn_ProportionalTaxReversal() {
	ctx := context.Background()

	// Original invoice posted 2000 taxable + 180 CGST + 180 SGST = 2360 gross.
	s.expectInvoiceSums("inv-6", "2000", "180", "180", "0")
	s.mockDocStatus.On("FindDocumentStatus", mock.Anything, s.tenantID, "invoice", "inv-6").
		Return(&domain.DocumentStatus{
			TenantID:      s.tenantID,
			ReferenceType: "invoice",
			ReferenceID:   "inv-6",
			PaymentStatus: domain.PaymentStatusUnpaid,
			BalanceDue:    decimal.RequireFromString("2360"),
		}, nil).Once()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocSalesReturn,
		SalesReturn: &dto.SalesReturnPayload{
			ReturnID:      "ret-1",
			ReturnNumber:  "SR/24-25/001",
			ReturnDate:    time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			InvoiceID:     "inv-6",
			ReturnedGross: decimal.NewFromInt(500),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	s.mockLedgerRepo.AssertExpectations(s.T())

	// 180 * 500 / 2360 rounds to 38.14 per half.
	cgst := s.lineByKind(domain.KindGSTReturnCGST)
	sgst := s.lineByKind(domain.KindGSTReturnSGST)
	s.Require().NotNil(cgst)
	s.Require().NotNil(sgst)
	s.True(cgst.DebitAmount.Equal(decimal.RequireFromString("38.14")))
	s.True(sgst.DebitAmount.Equal(decimal.RequireFromString("38.14")))

	salesReturn := s.lineByKind(domain.KindSalesReturn)
	s.Require().NotNil(salesReturn)
	s.True(salesReturn.DebitAmount.Equal(decimal.RequireFromString("423.72")))

	receivable := s.lineByKind(domain.KindAccountsReceivable)
	s.Require().NotNil(receivable)
	s.True(receivable.CreditAmount.Equal(decimal.NewFromInt(500)))

	s.True(s.capturedBatch.DebitTotal().Equal(s.capturedBatch.CreditTotal()))

	// The invoice's outstanding balance drops by the returned gross.
	s.Require().NotNil(s.capturedBatch.StatusEffect)
	s.Equal("inv-6", s.capturedBatch.StatusEffect.ReferenceID)
	s.Equal(domain.PaymentStatusPartial, s.capturedBatch.StatusEffect.PaymentStatus)
	s.True(s.capturedBatch.StatusEffect.BalanceDue.Equal(decimal.RequireFromString("1860")))
}

func (s *PostingServiceTestSuite) TestPostSalesReturn_ExceedingInvoiceFails() {
	ctx := context.Background()

	// Invoice posted 1000 gross with no tax legs.
	s.expectInvoiceSums("inv-7", "1000", "0", "0", "0")

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocSalesReturn,
		SalesReturn: &dto.SalesReturnPayload{
			ReturnID:      "ret-2",
			ReturnNumber:  "SR/24-25/002",
			ReturnDate:    time.Now(),
			InvoiceID:     "inv-7",
			ReturnedGross: decimal.NewFromInt(1500),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "AppendBatch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostSalesReturn_FailedRestockRecordsDiscrepancy() {
	ctx := context.Background()

	s.expectInvoiceSums("inv-13", "1000", "0", "0", "0")
	s.mockDocStatus.On("FindDocumentStatus", mock.Anything, s.tenantID, "invoice", "inv-13").
		Return(nil, apperrors.ErrNotFound).Once()
	s.expectAppendBatch()

	// First item restocks for 60, second fails, so 60 of inventory is back in
	// stock with no COGS reversal booked.
	s.mockInventory.On("Restock", mock.Anything, s.tenantID, "item-1", decimal.NewFromInt(2), s.creatorID).
		Return(decimal.NewFromInt(60), nil).Once()
	s.mockInventory.On("Restock", mock.Anything, s.tenantID, "item-2", decimal.NewFromInt(1), s.creatorID).
		Return(decimal.Zero, apperrors.NewAppError(500, "update failed", nil)).Once()

	var saved domain.Discrepancy
	s.mockDiscrepancy.On("SaveDiscrepancy", mock.Anything, mock.AnythingOfType("domain.Discrepancy")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Discrepancy)
		}).
		Return(nil).Once()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocSalesReturn,
		SalesReturn: &dto.SalesReturnPayload{
			ReturnID:      "ret-6",
			ReturnNumber:  "SR/24-25/005",
			ReturnDate:    time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
			InvoiceID:     "inv-13",
			ReturnedGross: decimal.NewFromInt(300),
			RestockedItems: []dto.RestockItemPayload{
				{ItemID: "item-1", Quantity: decimal.NewFromInt(2)},
				{ItemID: "item-2", Quantity: decimal.NewFromInt(1)},
			},
		},
	}

	posted, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	s.mockDiscrepancy.AssertExpectations(s.T())
	s.Require().NotNil(saved.BatchID)
	s.Equal(posted.BatchID, *saved.BatchID)
	s.Equal(domain.DiscrepancyOpen, saved.Status)
	s.True(saved.Difference.Equal(decimal.NewFromInt(60)))
}

func (s *PostingServiceTestSuite) TestPostSalesReturn_UnpostedInvoiceFails() {
	ctx := context.Background()

	s.expectInvoiceSums("inv-missing", "0", "0", "0", "0")

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocSalesReturn,
		SalesReturn: &dto.SalesReturnPayload{
			ReturnID:      "ret-5",
			ReturnNumber:  "SR/24-25/004",
			ReturnDate:    time.Now(),
			InvoiceID:     "inv-missing",
			ReturnedGross: decimal.NewFromInt(100),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "AppendBatch", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestPostRefundPayment_RejectsUnknownMethod() {
	ctx := context.Background()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocRefundPayment,
		RefundPayment: &dto.RefundPaymentPayload{
			ReturnID:     "ret-3",
			ReturnNumber: "SR/24-25/003",
			RefundDate:   time.Now(),
			RefundMethod: domain.PaymentMethod("upi"),
			Amount:       decimal.NewFromInt(200),
			AccountID:    "acc-bank",
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestPostCommissionExpense_RoundsToWholeRupee() {
	ctx := context.Background()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocCommissionExpense,
		Commission: &dto.CommissionPayload{
			CommissionID:  "comm-1",
			InvoiceID:     "inv-8",
			AgentName:     "Ravi",
			EventDate:     time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
			InvoiceAmount: decimal.RequireFromString("1234.56"),
			Percentage:    decimal.RequireFromString("2.5"),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	expense := s.lineByKind(domain.KindCommissionExpense)
	s.Require().NotNil(expense)
	// 1234.56 * 2.5% = 30.864, rounded to the whole rupee.
	s.True(expense.DebitAmount.Equal(decimal.NewFromInt(31)))

	payable := s.lineByKind(domain.KindCommissionPayable)
	s.Require().NotNil(payable)
	s.True(payable.CreditAmount.Equal(decimal.NewFromInt(31)))
}

func (s *PostingServiceTestSuite) TestPostCommissionReversal_ScalesByReturnedPortion() {
	ctx := context.Background()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocCommissionReversal,
		Commission: &dto.CommissionPayload{
			CommissionID:   "comm-2",
			InvoiceID:      "inv-9",
			AgentName:      "Ravi",
			EventDate:      time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC),
			InvoiceAmount:  decimal.NewFromInt(1000),
			Percentage:     decimal.NewFromInt(10),
			ReturnedAmount: decimal.NewFromInt(250),
			ReturnID:       "ret-4",
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	// Commission 100 scaled by 250/1000.
	reversal := s.lineByKind(domain.KindCommissionReversal)
	s.Require().NotNil(reversal)
	s.True(reversal.CreditAmount.Equal(decimal.NewFromInt(25)))

	// Keyed to the return so one commission can be reversed piecewise.
	s.Equal("comm-2:ret-4", s.capturedBatch.ReferenceID)
}

func (s *PostingServiceTestSuite) TestPostPayrollRun_OneLinePerEmployee() {
	ctx := context.Background()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocPayrollRun,
		PayrollRun: &dto.PayrollRunPayload{
			RunID:     "run-1",
			RunNumber: "PAY/2024/07",
			PayDate:   time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC),
			AccountID: "acc-bank",
			Items: []dto.PayrollItemPayload{
				{EmployeeID: "emp-1", EmployeeName: "Anita", Amount: decimal.NewFromInt(15000)},
				{EmployeeID: "emp-2", EmployeeName: "Suresh", Amount: decimal.NewFromInt(12000)},
			},
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	s.Require().Len(s.capturedBatch.Lines, 3)

	payment := s.lineByKind(domain.KindSalaryPayment)
	s.Require().NotNil(payment)
	s.True(payment.CreditAmount.Equal(decimal.NewFromInt(27000)))
	s.Require().NotNil(payment.AccountID)
	s.Equal("acc-bank", *payment.AccountID)
}

func (s *PostingServiceTestSuite) TestPostOpeningBalance_InventoryNeedsNoAccount() {
	ctx := context.Background()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocOpeningBalance,
		OpeningBalance: &dto.OpeningBalancePayload{
			OpeningID: "open-1",
			AsOfDate:  time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			Kind:      domain.OpeningInventory,
			Amount:    decimal.NewFromInt(50000),
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	asset := s.lineByKind(domain.KindOpeningBalanceInventoryAsset)
	equity := s.lineByKind(domain.KindOpeningBalanceInventoryEquity)
	s.Require().NotNil(asset)
	s.Require().NotNil(equity)
	s.True(asset.DebitAmount.Equal(decimal.NewFromInt(50000)))
	s.True(equity.CreditAmount.Equal(decimal.NewFromInt(50000)))
}

func (s *PostingServiceTestSuite) TestPostInventoryCOGS_ConsumesAndBooksCost() {
	ctx := context.Background()

	s.mockLedgerRepo.On("FindBatchByReference", mock.Anything, s.tenantID, "invoice", "inv-10", domain.DocInventoryCOGS).
		Return(nil, apperrors.ErrNotFound).Once()
	allocations := []domain.BatchAllocation{
		{BatchID: "sb-1", ItemID: "item-1", Quantity: decimal.NewFromInt(3), UnitCost: decimal.NewFromInt(50)},
	}
	s.mockInventory.On("ConsumeFIFO", mock.Anything, s.tenantID, "item-1", decimal.NewFromInt(3), s.creatorID).
		Return(allocations, decimal.NewFromInt(150), nil).Once()
	s.expectAppendBatch()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocInventoryCOGS,
		InventoryCOGS: &dto.InventoryCOGSPayload{
			InvoiceID:   "inv-10",
			InvoiceDate: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
			Items: []dto.SoldItemPayload{
				{ItemID: "item-1", Quantity: decimal.NewFromInt(3)},
			},
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().NoError(err)
	s.mockInventory.AssertExpectations(s.T())

	cogs := s.lineByKind(domain.KindCOGS)
	inventory := s.lineByKind(domain.KindInventoryValue)
	s.Require().NotNil(cogs)
	s.Require().NotNil(inventory)
	s.True(cogs.DebitAmount.Equal(decimal.NewFromInt(150)))
	s.True(inventory.CreditAmount.Equal(decimal.NewFromInt(150)))
}

func (s *PostingServiceTestSuite) TestPostInventoryCOGS_FailedAppendReturnsStock() {
	ctx := context.Background()

	s.mockLedgerRepo.On("FindBatchByReference", mock.Anything, s.tenantID, "invoice", "inv-11", domain.DocInventoryCOGS).
		Return(nil, apperrors.ErrNotFound).Once()
	allocations := []domain.BatchAllocation{
		{BatchID: "sb-2", ItemID: "item-2", Quantity: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(80)},
	}
	s.mockInventory.On("ConsumeFIFO", mock.Anything, s.tenantID, "item-2", decimal.NewFromInt(2), s.creatorID).
		Return(allocations, decimal.NewFromInt(160), nil).Once()
	s.mockLedgerRepo.On("AppendBatch", mock.Anything, mock.AnythingOfType("domain.PostingBatch"), s.tolerance).
		Return(nil, apperrors.NewAppError(500, "insert failed", nil)).Once()
	s.mockInventory.On("UndoConsume", mock.Anything, s.tenantID, allocations, s.creatorID).
		Return(nil).Once()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocInventoryCOGS,
		InventoryCOGS: &dto.InventoryCOGSPayload{
			InvoiceID:   "inv-11",
			InvoiceDate: time.Now(),
			Items: []dto.SoldItemPayload{
				{ItemID: "item-2", Quantity: decimal.NewFromInt(2)},
			},
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().Error(err)
	s.mockInventory.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestPostInventoryCOGS_ReplayFailsBeforeStockMoves() {
	ctx := context.Background()

	s.mockLedgerRepo.On("FindBatchByReference", mock.Anything, s.tenantID, "invoice", "inv-12", domain.DocInventoryCOGS).
		Return(&domain.PostingBatch{BatchID: "existing"}, nil).Once()

	req := dto.CreatePostingRequest{
		DocumentKind: domain.DocInventoryCOGS,
		InventoryCOGS: &dto.InventoryCOGSPayload{
			InvoiceID:   "inv-12",
			InvoiceDate: time.Now(),
			Items: []dto.SoldItemPayload{
				{ItemID: "item-3", Quantity: decimal.NewFromInt(1)},
			},
		},
	}

	_, err := s.service.PostDocument(ctx, s.tenantID, req, s.creatorID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicatePosting)
	s.mockInventory.AssertNotCalled(s.T(), "ConsumeFIFO", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
