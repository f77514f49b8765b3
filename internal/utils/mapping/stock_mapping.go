package mapping

import (
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/bahikhata/retail_ledger/internal/models"
)

// ToModelStockBatch converts a domain StockBatch to a model StockBatch
func ToModelStockBatch(d domain.StockBatch) models.StockBatch {
	return models.StockBatch{
		BatchID:           d.BatchID,
		TenantID:          d.TenantID,
		ItemID:            d.ItemID,
		SourceRef:         d.SourceRef,
		PurchaseDate:      d.PurchaseDate,
		QuantityPurchased: d.QuantityPurchased,
		QuantityRemaining: d.QuantityRemaining,
		UnitCost:          d.UnitCost,
		GSTPerUnit:        d.GSTPerUnit,
		PurchasedWithGST:  d.PurchasedWithGST,
		Status:            models.StockBatchStatus(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainStockBatch converts a model StockBatch to a domain StockBatch
func ToDomainStockBatch(m models.StockBatch) domain.StockBatch {
	return domain.StockBatch{
		BatchID:           m.BatchID,
		TenantID:          m.TenantID,
		ItemID:            m.ItemID,
		SourceRef:         m.SourceRef,
		PurchaseDate:      m.PurchaseDate,
		QuantityPurchased: m.QuantityPurchased,
		QuantityRemaining: m.QuantityRemaining,
		UnitCost:          m.UnitCost,
		GSTPerUnit:        m.GSTPerUnit,
		PurchasedWithGST:  m.PurchasedWithGST,
		Status:            domain.StockBatchStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainStockBatchSlice converts a slice of model StockBatches to domain StockBatches
func ToDomainStockBatchSlice(ms []models.StockBatch) []domain.StockBatch {
	ds := make([]domain.StockBatch, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockBatch(m)
	}
	return ds
}
