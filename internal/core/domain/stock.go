package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatchStatus marks whether a batch can still be allocated from.
type StockBatchStatus string

const (
	StockBatchActive   StockBatchStatus = "active"
	StockBatchDepleted StockBatchStatus = "depleted"
)

// StockBatch is one purchase lot of an item, the unit of FIFO costing. A
// purchase bill creates one; invoice COGS consumes oldest-first; an approved
// return restocks into a fresh batch at the reversed allocation's unit cost.
type StockBatch struct {
	BatchID   string `json:"batchID"`
	TenantID  string `json:"tenantID"`
	ItemID    string `json:"itemID"`
	SourceRef string `json:"sourceRef"` // Purchase bill or return reference

	PurchaseDate      time.Time       `json:"purchaseDate"`
	QuantityPurchased decimal.Decimal `json:"quantityPurchased"`
	QuantityRemaining decimal.Decimal `json:"quantityRemaining"`

	UnitCost decimal.Decimal `json:"unitCost"` // Base cost per unit, GST exclusive
	// GST actually paid on this lot; tracked so input tax credit claims can be
	// tied back to the purchase they arose from.
	GSTPerUnit       decimal.Decimal  `json:"gstPerUnit"`
	PurchasedWithGST bool             `json:"purchasedWithGST"`
	Status           StockBatchStatus `json:"status"`
	AuditFields
}

// BatchAllocation is one FIFO slice taken from a stock batch for a sale.
type BatchAllocation struct {
	BatchID  string
	ItemID   string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Cost is the extended cost of the allocation.
func (a BatchAllocation) Cost() decimal.Decimal {
	return a.Quantity.Mul(a.UnitCost)
}
