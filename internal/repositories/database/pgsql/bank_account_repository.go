package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	"github.com/bahikhata/retail_ledger/internal/models"
	"github.com/bahikhata/retail_ledger/internal/utils/mapping"
)

type PgxBankAccountRepository struct {
	BaseRepository
}

// newPgxBankAccountRepository creates a new repository for cash/bank account data.
func newPgxBankAccountRepository(pool *pgxpool.Pool) portsrepo.BankAccountRepositoryFacade {
	return &PgxBankAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBankAccountRepository implements portsrepo.BankAccountRepositoryFacade
var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

// SaveAccount persists a new bank account.
func (r *PgxBankAccountRepository) SaveAccount(ctx context.Context, account domain.BankAccount) error {
	modelAccount := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (account_id, tenant_id, name, account_type, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAccount.AccountID,
		modelAccount.TenantID,
		modelAccount.Name,
		modelAccount.AccountType,
		modelAccount.CurrentBalance,
		modelAccount.IsActive,
		modelAccount.CreatedAt,
		modelAccount.CreatedBy,
		modelAccount.LastUpdatedAt,
		modelAccount.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bank account "+modelAccount.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves a bank account by its unique identifier.
func (r *PgxBankAccountRepository) FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.BankAccount, error) {
	query := `
		SELECT account_id, tenant_id, name, account_type, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE tenant_id = $1 AND account_id = $2;
	`
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(
		&m.AccountID,
		&m.TenantID,
		&m.Name,
		&m.AccountType,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account "+accountID, err)
	}
	domainAccount := mapping.ToDomainBankAccount(m)
	return &domainAccount, nil
}

// ListAccountsByTenant retrieves all bank accounts for a tenant.
func (r *PgxBankAccountRepository) ListAccountsByTenant(ctx context.Context, tenantID string) ([]domain.BankAccount, error) {
	query := `
		SELECT account_id, tenant_id, name, account_type, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE tenant_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts for tenant "+tenantID, err)
	}
	defer rows.Close()

	accounts := []models.BankAccount{}
	for rows.Next() {
		var m models.BankAccount
		err := rows.Scan(
			&m.AccountID,
			&m.TenantID,
			&m.Name,
			&m.AccountType,
			&m.CurrentBalance,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows for tenant "+tenantID, err)
	}

	return mapping.ToDomainBankAccountSlice(accounts), nil
}

// DeactivateAccount marks a bank account inactive.
func (r *PgxBankAccountRepository) DeactivateAccount(ctx context.Context, tenantID string, accountID string, updatedBy string) error {
	query := `
		UPDATE bank_accounts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $1 AND account_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query, tenantID, accountID, time.Now(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate bank account "+accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
func (r *PgxBankAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, accountIDs []string) (map[string]domain.BankAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.BankAccount{}, nil
	}

	query := `
		SELECT account_id, tenant_id, name, account_type, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM bank_accounts
		WHERE tenant_id = $1 AND account_id = ANY($2)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.BankAccount)
	for rows.Next() {
		var m models.BankAccount
		err := rows.Scan(
			&m.AccountID,
			&m.TenantID,
			&m.Name,
			&m.AccountType,
			&m.CurrentBalance,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked bank account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainBankAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked bank account rows: %w", err)
	}

	// Every requested account must exist and belong to the tenant.
	for _, id := range accountIDs {
		if _, ok := accountsMap[id]; !ok {
			return nil, fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, id)
		}
	}
	return accountsMap, nil
}

// UpdateAccountBalancesInTx applies balance deltas to multiple accounts within a given transaction.
func (r *PgxBankAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, tenantID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE bank_accounts
		SET current_balance = COALESCE(current_balance, 0) + $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND account_id = $2;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, tenantID, accountID, delta, now, userID)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for bank account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: bank account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
			}
		}
	}
	if closeErr := br.Close(); closeErr != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", closeErr)
	}
	return batchErr
}
