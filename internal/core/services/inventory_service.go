package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/utils/accounting"
)

// inventoryService implements FIFO batch costing over the stock batch store.
type inventoryService struct {
	BaseService
	stockRepo portsrepo.StockBatchRepositoryFacade
}

// NewInventoryService creates the inventory service.
func NewInventoryService(stockRepo portsrepo.StockBatchRepositoryFacade) portssvc.InventorySvc {
	return &inventoryService{stockRepo: stockRepo}
}

var _ portssvc.InventorySvc = (*inventoryService)(nil)

// ConsumeFIFO consumes quantity oldest-batch-first and returns the
// allocations with their total extended cost.
func (s *inventoryService) ConsumeFIFO(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) ([]domain.BatchAllocation, decimal.Decimal, error) {
	allocations, err := s.stockRepo.AllocateFIFO(ctx, tenantID, itemID, quantity, updatedBy)
	if err != nil {
		s.LogError(ctx, err, "FIFO allocation failed", slog.String("item_id", itemID), slog.String("quantity", quantity.String()))
		return nil, decimal.Zero, err
	}

	totalCost := decimal.Zero
	for _, alloc := range allocations {
		totalCost = totalCost.Add(alloc.Cost())
	}
	totalCost = accounting.RoundCurrency(totalCost)

	s.LogDebug(ctx, "FIFO allocation complete",
		slog.String("item_id", itemID),
		slog.Int("batches_touched", len(allocations)),
		slog.String("total_cost", totalCost.String()))
	return allocations, totalCost, nil
}

// Restock returns quantity to an item's batches. The restock goes to the most
// recently consumed capacity first, mirroring how a return undoes the most
// recent sale's allocation; cost is derived from the batches actually topped
// back up.
func (s *inventoryService) Restock(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: restock quantity must be positive, got %s", apperrors.ErrValidation, quantity.String())
	}

	allocations, err := s.stockRepo.RestockFIFO(ctx, tenantID, itemID, quantity, updatedBy)
	if err != nil {
		s.LogError(ctx, err, "FIFO restock failed", slog.String("item_id", itemID), slog.String("quantity", quantity.String()))
		return decimal.Zero, err
	}

	cost := decimal.Zero
	for _, alloc := range allocations {
		cost = cost.Add(alloc.Cost())
	}
	cost = accounting.RoundCurrency(cost)

	s.LogInfo(ctx, "Stock restocked",
		slog.String("item_id", itemID),
		slog.String("quantity", quantity.String()),
		slog.String("cost", cost.String()))
	return cost, nil
}

// UndoConsume restores the exact allocations of a failed posting.
func (s *inventoryService) UndoConsume(ctx context.Context, tenantID string, allocations []domain.BatchAllocation, updatedBy string) error {
	if err := s.stockRepo.RestockAllocations(ctx, tenantID, allocations, updatedBy); err != nil {
		s.LogError(ctx, err, "Failed to undo FIFO consumption", slog.Int("allocations", len(allocations)))
		return err
	}
	return nil
}

// RecordPurchase creates a stock batch from an inventory purchase bill.
func (s *inventoryService) RecordPurchase(ctx context.Context, tenantID string, doc domain.PurchaseBillDoc, gstPerUnit decimal.Decimal, createdBy string) (*domain.StockBatch, error) {
	if doc.ItemID == "" || !doc.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: purchase bill %s has no stockable item", apperrors.ErrValidation, doc.BillID)
	}

	now := time.Now()
	batch := domain.StockBatch{
		BatchID:           uuid.NewString(),
		TenantID:          tenantID,
		ItemID:            doc.ItemID,
		SourceRef:         doc.BillNumber,
		PurchaseDate:      doc.BillDate,
		QuantityPurchased: doc.Quantity,
		QuantityRemaining: doc.Quantity,
		UnitCost:          accounting.RoundCurrency(doc.TaxableValue.Div(doc.Quantity)),
		GSTPerUnit:        gstPerUnit,
		PurchasedWithGST:  doc.GSTRate.IsPositive(),
		Status:            domain.StockBatchActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
	if err := s.stockRepo.SaveStockBatch(ctx, batch); err != nil {
		s.LogError(ctx, err, "Failed to save stock batch", slog.String("bill_id", doc.BillID), slog.String("item_id", doc.ItemID))
		return nil, err
	}

	s.LogInfo(ctx, "Stock batch created",
		slog.String("batch_id", batch.BatchID),
		slog.String("item_id", batch.ItemID),
		slog.String("quantity", batch.QuantityPurchased.String()))
	return &batch, nil
}

// ListStockBatches retrieves an item's batches, oldest purchase first.
func (s *inventoryService) ListStockBatches(ctx context.Context, tenantID string, itemID string, includeDepleted bool) ([]domain.StockBatch, error) {
	return s.stockRepo.ListStockBatchesByItem(ctx, tenantID, itemID, includeDepleted)
}
