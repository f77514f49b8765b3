package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// StockBatchResponse defines the data returned for a stock batch.
type StockBatchResponse struct {
	BatchID           string          `json:"batchID"`
	ItemID            string          `json:"itemID"`
	SourceRef         string          `json:"sourceRef"`
	PurchaseDate      time.Time       `json:"purchaseDate"`
	QuantityPurchased decimal.Decimal `json:"quantityPurchased"`
	QuantityRemaining decimal.Decimal `json:"quantityRemaining"`
	UnitCost          decimal.Decimal `json:"unitCost"`
	GSTPerUnit        decimal.Decimal `json:"gstPerUnit"`
	PurchasedWithGST  bool            `json:"purchasedWithGST"`
	Status            string          `json:"status"`
}

// ListStockBatchesParams defines query parameters for listing stock batches.
type ListStockBatchesParams struct {
	IncludeDepleted bool `form:"includeDepleted"`
}

// ListStockBatchesResponse wraps an item's batches, oldest purchase first.
type ListStockBatchesResponse struct {
	ItemID  string               `json:"itemID"`
	Batches []StockBatchResponse `json:"batches"`
}

// ToStockBatchResponse converts a domain.StockBatch to a DTO.
func ToStockBatchResponse(b *domain.StockBatch) StockBatchResponse {
	return StockBatchResponse{
		BatchID:           b.BatchID,
		ItemID:            b.ItemID,
		SourceRef:         b.SourceRef,
		PurchaseDate:      b.PurchaseDate,
		QuantityPurchased: b.QuantityPurchased,
		QuantityRemaining: b.QuantityRemaining,
		UnitCost:          b.UnitCost,
		GSTPerUnit:        b.GSTPerUnit,
		PurchasedWithGST:  b.PurchasedWithGST,
		Status:            string(b.Status),
	}
}

// ToListStockBatchesResponse wraps batches for one item.
func ToListStockBatchesResponse(itemID string, batches []domain.StockBatch) ListStockBatchesResponse {
	res := ListStockBatchesResponse{
		ItemID:  itemID,
		Batches: make([]StockBatchResponse, len(batches)),
	}
	for i, b := range batches {
		res.Batches[i] = ToStockBatchResponse(&b)
	}
	return res
}
