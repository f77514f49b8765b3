package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus is the settlement projection row for one source document,
// keyed by (tenant_id, reference_type, reference_id).
type DocumentStatus struct {
	TenantID      string          `db:"tenant_id"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   string          `db:"reference_id"`
	PaymentStatus string          `db:"payment_status"`
	BalanceDue    decimal.Decimal `db:"balance_due"`
	UpdatedAt     time.Time       `db:"updated_at"`
	UpdatedBy     string          `db:"updated_by"`
}
