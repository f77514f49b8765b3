package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the denormalized settlement state of a source document.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// DocumentStatus is the ledger-owned settlement projection for one source
// document. The source tables belong to the surrounding application; this row
// is the only thing the posting engine ever writes back about a document, and
// it is updated inside the same transaction as the posting it reflects.
type DocumentStatus struct {
	TenantID      string          `json:"tenantID"`
	ReferenceType string          `json:"referenceType"`
	ReferenceID   string          `json:"referenceID"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	UpdatedBy     string          `json:"updatedBy"`
}

// PaymentStatusFor derives the settlement state from an outstanding balance.
func PaymentStatusFor(total, balanceDue decimal.Decimal) PaymentStatus {
	switch {
	case !balanceDue.IsPositive():
		return PaymentStatusPaid
	case balanceDue.LessThan(total):
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}
