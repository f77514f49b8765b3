package models

import (
	"github.com/shopspring/decimal"
)

// BankAccountType distinguishes a till drawer from a bank account.
type BankAccountType string

const (
	Cash BankAccountType = "CASH"
	Bank BankAccountType = "BANK"
)

// BankAccount represents a cash/bank account money moves through.
type BankAccount struct {
	AccountID      string          `db:"account_id"` // Primary Key (UUID)
	TenantID       string          `db:"tenant_id"`
	Name           string          `db:"name"`
	AccountType    BankAccountType `db:"account_type"`
	CurrentBalance decimal.Decimal `db:"current_balance"` // Maintained under row locks while posting
	IsActive       bool            `db:"is_active"`
	AuditFields                    // Embed common audit fields
}
