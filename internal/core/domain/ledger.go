package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is the atomic, immutable unit of the double-entry log: one
// signed amount against one account, scoped to a tenant. Lines are created
// once by a posting rule and never updated; corrections are reversing lines.
type LedgerLine struct {
	LineID    string `json:"lineID"`   // Primary key (UUID)
	BatchID   string `json:"batchID"`  // FK -> PostingBatch.BatchID
	TenantID  string `json:"tenantID"` // Owning business; every query is tenant-scoped
	AccountID *string `json:"accountID"` // Nullable bank/cash account; nil means equity/suspense

	TransactionDate time.Time       `json:"transactionDate"` // Business date (may be backdated)
	Kind            TransactionKind `json:"transactionKind"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`

	ReferenceType string `json:"referenceType"` // Originating document table, e.g. "invoice"
	ReferenceID   string `json:"referenceID"`
	VoucherNumber string `json:"voucherNumber"`
	Narration     string `json:"narration"`

	// BalanceAfter is the denormalized running balance of AccountID after this
	// line, stamped only when AccountID is set. Display only; no invariant
	// ever reads it.
	BalanceAfter *decimal.Decimal `json:"balanceAfter,omitempty"`

	CreatedAt time.Time `json:"createdAt"` // Record time, distinct from TransactionDate
	CreatedBy string    `json:"createdBy"`
}

// Validate enforces the per-line invariant: both amounts non-negative and
// exactly one of them non-zero.
func (l LedgerLine) Validate() error {
	if !l.Kind.IsValid() {
		return fmt.Errorf("line %s: unrecognized transaction kind %q", l.LineID, l.Kind)
	}
	if l.DebitAmount.IsNegative() || l.CreditAmount.IsNegative() {
		return fmt.Errorf("line %s: amounts must be non-negative", l.LineID)
	}
	if l.DebitAmount.IsZero() == l.CreditAmount.IsZero() {
		return fmt.Errorf("line %s: exactly one of debit and credit must be non-zero", l.LineID)
	}
	return nil
}

// Amount returns the single non-zero side of the line.
func (l LedgerLine) Amount() decimal.Decimal {
	if l.DebitAmount.IsZero() {
		return l.CreditAmount
	}
	return l.DebitAmount
}

// PostingBatch is the balanced set of ledger lines produced for one business
// event. It commits in full or not at all, and commits at most once per
// (tenant, reference, document kind).
type PostingBatch struct {
	BatchID       string       `json:"batchID"` // Primary key (UUID)
	TenantID      string       `json:"tenantID"`
	DocumentKind  DocumentKind `json:"documentKind"`
	ReferenceType string       `json:"referenceType"`
	ReferenceID   string       `json:"referenceID"`
	VoucherNumber string       `json:"voucherNumber"`
	Narration     string       `json:"narration"`
	Lines         []LedgerLine `json:"lines,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	CreatedBy     string       `json:"createdBy"`

	// StatusEffect, when set, is the document status projection to upsert in
	// the same transaction as the batch. It may target a different reference
	// than the batch itself, e.g. a sales return adjusting its invoice.
	StatusEffect *DocumentStatus `json:"-"`
}

// DebitTotal sums the debit side of the batch.
func (b PostingBatch) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// CreditTotal sums the credit side of the batch.
func (b PostingBatch) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}

// Validate enforces the local balance invariant before the batch is allowed
// anywhere near the store: at least two lines, every line well formed, and
// debit total equal to credit total.
func (b PostingBatch) Validate() error {
	if len(b.Lines) < 2 {
		return fmt.Errorf("posting batch %s must have at least two lines", b.BatchID)
	}
	for _, l := range b.Lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	debits := b.DebitTotal()
	credits := b.CreditTotal()
	if !debits.Equal(credits) {
		return fmt.Errorf("posting batch %s does not balance: debits %s, credits %s",
			b.BatchID, debits.String(), credits.String())
	}
	return nil
}
