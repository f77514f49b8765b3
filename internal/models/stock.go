package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatchStatus marks whether a batch can still be allocated from.
type StockBatchStatus string

const (
	StockActive   StockBatchStatus = "active"
	StockDepleted StockBatchStatus = "depleted"
)

// StockBatch represents one purchase lot of an item, consumed oldest-first.
type StockBatch struct {
	BatchID           string           `db:"batch_id"` // Primary Key (UUID)
	TenantID          string           `db:"tenant_id"`
	ItemID            string           `db:"item_id"`
	SourceRef         string           `db:"source_ref"`
	PurchaseDate      time.Time        `db:"purchase_date"`
	QuantityPurchased decimal.Decimal  `db:"quantity_purchased"`
	QuantityRemaining decimal.Decimal  `db:"quantity_remaining"`
	UnitCost          decimal.Decimal  `db:"unit_cost"`
	GSTPerUnit        decimal.Decimal  `db:"gst_per_unit"`
	PurchasedWithGST  bool             `db:"purchased_with_gst"`
	Status            StockBatchStatus `db:"status"`
	AuditFields
}
