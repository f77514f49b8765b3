package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// InventorySvc defines operations over FIFO-costed stock batches
type InventorySvc interface {
	// ConsumeFIFO consumes quantity for an item oldest-batch-first and returns
	// the allocations with their total cost.
	ConsumeFIFO(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) ([]domain.BatchAllocation, decimal.Decimal, error)

	// Restock returns previously consumed quantities to their batches,
	// allocating the restock oldest-consumed-first, and returns the cost of
	// the restocked goods.
	Restock(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) (decimal.Decimal, error)

	// UndoConsume returns the exact allocations of a failed posting to their
	// batches, restoring the pre-consumption state.
	UndoConsume(ctx context.Context, tenantID string, allocations []domain.BatchAllocation, updatedBy string) error

	// RecordPurchase creates a stock batch from an inventory purchase bill.
	RecordPurchase(ctx context.Context, tenantID string, doc domain.PurchaseBillDoc, gstPerUnit decimal.Decimal, createdBy string) (*domain.StockBatch, error)

	// ListStockBatches retrieves an item's batches, oldest purchase first.
	ListStockBatches(ctx context.Context, tenantID string, itemID string, includeDepleted bool) ([]domain.StockBatch, error)
}
