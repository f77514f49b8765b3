package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindAccountByID retrieves a bank account by its unique identifier.
	FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.BankAccount, error)

	// ListAccountsByTenant retrieves all bank accounts for a tenant.
	ListAccountsByTenant(ctx context.Context, tenantID string) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveAccount persists a new bank account.
	SaveAccount(ctx context.Context, account domain.BankAccount) error

	// DeactivateAccount marks a bank account inactive so no further postings
	// may reference it.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, updatedBy string) error

	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]domain.BankAccount, error)

	// UpdateAccountBalancesInTx applies balance deltas to multiple accounts within a given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, tenantID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// BankAccountRepositoryFacade combines all bank-account repository interfaces
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
