package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// StockBatchReader defines read operations for stock batch data
type StockBatchReader interface {
	// FindStockBatchByID retrieves a stock batch by its unique identifier.
	FindStockBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.StockBatch, error)

	// ListStockBatchesByItem retrieves the batches for an item, oldest purchase
	// first. Depleted batches are included only when includeDepleted is set.
	ListStockBatchesByItem(ctx context.Context, tenantID string, itemID string, includeDepleted bool) ([]domain.StockBatch, error)
}

// StockBatchWriter defines write operations for stock batch data
type StockBatchWriter interface {
	// SaveStockBatch persists a new stock batch created from a purchase.
	SaveStockBatch(ctx context.Context, batch domain.StockBatch) error

	// AllocateFIFO consumes quantity from an item's batches oldest-first,
	// locking the touched rows, decrementing remaining quantities and marking
	// exhausted batches depleted. It fails with ErrValidation when the item's
	// total remaining stock cannot cover the quantity.
	AllocateFIFO(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) ([]domain.BatchAllocation, error)

	// RestockFIFO returns quantity to an item's batches, refilling the most
	// recently consumed capacity first. It locks the touched rows for the
	// whole refill and fails with ErrValidation when the quantity exceeds
	// the item's total consumed stock.
	RestockFIFO(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) ([]domain.BatchAllocation, error)

	// RestockAllocations returns previously consumed quantities to their
	// originating batches, reactivating any batch that was marked depleted.
	RestockAllocations(ctx context.Context, tenantID string, allocations []domain.BatchAllocation, updatedBy string) error
}

// StockBatchRepositoryFacade combines all stock-batch repository interfaces
type StockBatchRepositoryFacade interface {
	StockBatchReader
	StockBatchWriter
}
