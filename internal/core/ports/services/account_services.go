package services

import (
	"context"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/bahikhata/retail_ledger/internal/dto"
)

// BankAccountSvc defines operations for managing cash/bank accounts
type BankAccountSvc interface {
	// CreateAccount registers a new cash/bank account for a tenant.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateBankAccountRequest, creatorID string) (*domain.BankAccount, error)

	// GetAccountByID retrieves a bank account.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.BankAccount, error)

	// ListAccounts retrieves all bank accounts for a tenant.
	ListAccounts(ctx context.Context, tenantID string) ([]domain.BankAccount, error)

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, updatedBy string) error
}
