package services

import (
	"context"
	"time"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/bahikhata/retail_ledger/internal/dto"
)

// ReportingSvc defines operations for compiling financial reports
type ReportingSvc interface {
	// TrialBalance compiles the bucketed trial balance for a tenant as of a
	// date, exclusively from ledger lines.
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalance, error)

	// ListAccountLedger retrieves the account statement for one bank account,
	// paginated with a token.
	ListAccountLedger(ctx context.Context, tenantID string, accountID string, params dto.ListLedgerLinesParams) (*dto.ListLedgerLinesResponse, error)
}
