package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingBatch represents a single balanced posting event. The unique index
// on (tenant_id, reference_type, reference_id, document_kind) is what makes
// posting idempotent.
type PostingBatch struct {
	BatchID       string    `db:"batch_id"` // Primary Key (UUID)
	TenantID      string    `db:"tenant_id"`
	DocumentKind  string    `db:"document_kind"`
	ReferenceType string    `db:"reference_type"`
	ReferenceID   string    `db:"reference_id"`
	VoucherNumber string    `db:"voucher_number"`
	Narration     string    `db:"narration"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
}

// LedgerLine represents one immutable debit-or-credit row within a batch.
type LedgerLine struct {
	LineID          string           `db:"line_id"`    // Primary Key (UUID)
	BatchID         string           `db:"batch_id"`   // FK -> PostingBatch.batch_id (Not Null)
	TenantID        string           `db:"tenant_id"`  // Denormalized for tenant-scoped scans
	AccountID       *string          `db:"account_id"` // Nullable FK -> BankAccount.account_id
	TransactionDate time.Time        `db:"transaction_date"`
	TransactionKind string           `db:"transaction_kind"`
	DebitAmount     decimal.Decimal  `db:"debit_amount"`
	CreditAmount    decimal.Decimal  `db:"credit_amount"`
	ReferenceType   string           `db:"reference_type"`
	ReferenceID     string           `db:"reference_id"`
	VoucherNumber   string           `db:"voucher_number"`
	Narration       string           `db:"narration"`
	BalanceAfter    *decimal.Decimal `db:"balance_after"` // Nullable; display only
	CreatedAt       time.Time        `db:"created_at"`
	CreatedBy       string           `db:"created_by"`
}
