package domain

import (
	"github.com/shopspring/decimal"
)

// BankAccountType distinguishes a till drawer from a bank account.
type BankAccountType string

const (
	AccountCash BankAccountType = "CASH"
	AccountBank BankAccountType = "BANK"
)

// BankAccount is a cash or bank account money actually moves through. Its
// CurrentBalance is maintained under row locks inside the posting transaction
// and feeds the display-only balance_after on ledger lines; the trial balance
// never reads it.
type BankAccount struct {
	AccountID      string          `json:"accountID"`
	TenantID       string          `json:"tenantID"`
	Name           string          `json:"name"`
	AccountType    BankAccountType `json:"accountType"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
