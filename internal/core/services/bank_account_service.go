package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/dto"
)

type bankAccountService struct {
	BaseService
	accountRepo portsrepo.BankAccountRepositoryFacade
}

// NewBankAccountService creates the bank account service.
func NewBankAccountService(accountRepo portsrepo.BankAccountRepositoryFacade) portssvc.BankAccountSvc {
	return &bankAccountService{accountRepo: accountRepo}
}

var _ portssvc.BankAccountSvc = (*bankAccountService)(nil)

// CreateAccount registers a new cash/bank account for a tenant.
func (s *bankAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateBankAccountRequest, creatorID string) (*domain.BankAccount, error) {
	now := time.Now()
	account := domain.BankAccount{
		AccountID:      uuid.NewString(),
		TenantID:       tenantID,
		Name:           req.Name,
		AccountType:    req.AccountType,
		CurrentBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to create bank account", slog.String("name", req.Name))
		return nil, err
	}
	s.LogInfo(ctx, "Bank account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves a bank account.
func (s *bankAccountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.BankAccount, error) {
	return s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
}

// ListAccounts retrieves all bank accounts for a tenant.
func (s *bankAccountService) ListAccounts(ctx context.Context, tenantID string) ([]domain.BankAccount, error) {
	return s.accountRepo.ListAccountsByTenant(ctx, tenantID)
}

// DeactivateAccount marks an account inactive.
func (s *bankAccountService) DeactivateAccount(ctx context.Context, tenantID string, accountID string, updatedBy string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, updatedBy); err != nil {
		s.LogError(ctx, err, "Failed to deactivate bank account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Bank account deactivated", slog.String("account_id", accountID))
	return nil
}
