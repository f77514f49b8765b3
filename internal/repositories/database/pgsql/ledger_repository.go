package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	"github.com/bahikhata/retail_ledger/internal/models"
	"github.com/bahikhata/retail_ledger/internal/utils/mapping"
	"github.com/bahikhata/retail_ledger/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo     portsrepo.BankAccountRepositoryFacade
	discrepancyRepo portsrepo.DiscrepancyRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for posting batches and ledger lines.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.BankAccountRepositoryFacade, discrepancyRepo portsrepo.DiscrepancyRepositoryFacade) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository:  BaseRepository{Pool: pool},
		accountRepo:     accountRepo,
		discrepancyRepo: discrepancyRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const ledgerLineColumns = `line_id, batch_id, tenant_id, account_id, transaction_date, transaction_kind, debit_amount, credit_amount, reference_type, reference_id, voucher_number, narration, balance_after, created_at, created_by`

// AppendBatch persists a balanced batch and its lines in one DB transaction,
// serialized per tenant with an advisory lock. After the inserts the tenant's
// global debit/credit sums are re-checked: a drift within tolerance is
// absorbed with one extra rounding adjustment line, a larger drift rolls the
// whole batch back, records a discrepancy, and surfaces a LedgerImbalanceError.
func (r *PgxLedgerRepository) AppendBatch(ctx context.Context, batch domain.PostingBatch, tolerance decimal.Decimal) (*domain.PostingBatch, error) {
	if err := batch.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	// All postings for one tenant run strictly one at a time, so the global
	// verification below never races a concurrent batch.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, batch.TenantID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to acquire tenant posting lock for "+batch.TenantID, err)
	}

	now := batch.CreatedAt
	userID := batch.CreatedBy

	// 1. Insert the batch header. The unique index on
	// (tenant_id, reference_type, reference_id, document_kind) turns a
	// replayed document into a constraint violation here.
	modelBatch := mapping.ToModelPostingBatch(batch)
	batchQuery := `
		INSERT INTO posting_batches (batch_id, tenant_id, document_kind, reference_type, reference_id, voucher_number, narration, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, batchQuery,
		modelBatch.BatchID,
		modelBatch.TenantID,
		modelBatch.DocumentKind,
		modelBatch.ReferenceType,
		modelBatch.ReferenceID,
		modelBatch.VoucherNumber,
		modelBatch.Narration,
		modelBatch.CreatedAt,
		modelBatch.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, fmt.Errorf("%w: %s %s already posted as %s",
				apperrors.ErrDuplicatePosting, batch.ReferenceType, batch.ReferenceID, batch.DocumentKind)
		}
		return nil, apperrors.NewAppError(500, "failed to insert posting batch "+modelBatch.BatchID, err)
	}

	// 2. Lock the touched bank accounts and compute balance deltas. Bank/cash
	// accounts are assets: a debit raises the balance, a credit lowers it.
	balanceChanges := make(map[string]decimal.Decimal)
	for _, line := range batch.Lines {
		if line.AccountID == nil {
			continue
		}
		delta := line.DebitAmount.Sub(line.CreditAmount)
		balanceChanges[*line.AccountID] = balanceChanges[*line.AccountID].Add(delta)
	}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, batch.TenantID, accountIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		return nil, apperrors.NewAppError(500, "failed to lock bank accounts for update", err)
	}
	for _, acc := range lockedAccounts {
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: bank account %s is inactive", apperrors.ErrValidation, acc.AccountID)
		}
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, batch.TenantID, balanceChanges, userID, now); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update bank account balances", err)
	}

	// 3. Insert the lines, stamping the display-only running balance for lines
	// that touch an account.
	currentBalances := make(map[string]decimal.Decimal)
	for accID, acc := range lockedAccounts {
		currentBalances[accID] = acc.CurrentBalance
	}

	lineQuery := `
		INSERT INTO ledger_lines (` + ledgerLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	pgxBatch := &pgx.Batch{}
	for i := range batch.Lines {
		line := &batch.Lines[i]
		line.BatchID = batch.BatchID
		line.TenantID = batch.TenantID
		line.CreatedAt = now
		line.CreatedBy = userID
		if line.AccountID != nil {
			after := currentBalances[*line.AccountID].Add(line.DebitAmount).Sub(line.CreditAmount)
			currentBalances[*line.AccountID] = after
			line.BalanceAfter = &after
		}

		m := mapping.ToModelLedgerLine(*line)
		pgxBatch.Queue(lineQuery,
			m.LineID, m.BatchID, m.TenantID, m.AccountID, m.TransactionDate,
			m.TransactionKind, m.DebitAmount, m.CreditAmount, m.ReferenceType,
			m.ReferenceID, m.VoucherNumber, m.Narration, m.BalanceAfter,
			m.CreatedAt, m.CreatedBy,
		)
	}
	br := tx.SendBatch(ctx, pgxBatch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute line batch for posting "+batch.BatchID, err)
	}

	// 4. Write back the document settlement projection, if the rule produced
	// one. It rides the posting transaction so status never diverges from the
	// lines it summarizes.
	if batch.StatusEffect != nil {
		if err := upsertDocumentStatusInTx(ctx, tx, *batch.StatusEffect); err != nil {
			return nil, err
		}
	}

	// 5. Re-verify the tenant-global invariant inside the same transaction.
	var totalDebit, totalCredit decimal.Decimal
	sumQuery := `
		SELECT COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM ledger_lines
		WHERE tenant_id = $1;
	`
	if err := tx.QueryRow(ctx, sumQuery, batch.TenantID).Scan(&totalDebit, &totalCredit); err != nil {
		return nil, apperrors.NewAppError(500, "failed to verify ledger totals for tenant "+batch.TenantID, err)
	}

	difference := totalDebit.Sub(totalCredit)
	if !difference.IsZero() {
		if difference.Abs().GreaterThan(tolerance) {
			// Beyond tolerance: capture the bucket breakdown, roll back, record
			// the incident and fail the posting.
			buckets, bucketErr := r.bucketBreakdownInTx(ctx, tx, batch.TenantID)
			if bucketErr != nil {
				buckets = nil
			}
			if rbErr := r.Rollback(ctx, tx); rbErr != nil {
				return nil, rbErr
			}
			r.recordDiscrepancy(ctx, batch, difference, buckets)
			return nil, &apperrors.LedgerImbalanceError{
				TenantID:   batch.TenantID,
				BatchID:    batch.BatchID,
				Difference: difference,
				Buckets:    toBucketDeltas(buckets),
			}
		}

		// Within tolerance: absorb the drift into equity with one adjustment
		// line so the ledger is exactly balanced again.
		adjustment := r.buildRoundingAdjustment(batch, difference, now, userID)
		m := mapping.ToModelLedgerLine(adjustment)
		_, err = tx.Exec(ctx, lineQuery,
			m.LineID, m.BatchID, m.TenantID, m.AccountID, m.TransactionDate,
			m.TransactionKind, m.DebitAmount, m.CreditAmount, m.ReferenceType,
			m.ReferenceID, m.VoucherNumber, m.Narration, m.BalanceAfter,
			m.CreatedAt, m.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert rounding adjustment for batch "+batch.BatchID, err)
		}
		batch.Lines = append(batch.Lines, adjustment)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &batch, nil
}

// buildRoundingAdjustment creates the single equity line that absorbs a
// within-tolerance drift. A positive difference means debits exceed credits,
// so the adjustment credits the gap; a negative one debits it.
func (r *PgxLedgerRepository) buildRoundingAdjustment(batch domain.PostingBatch, difference decimal.Decimal, now time.Time, userID string) domain.LedgerLine {
	line := domain.LedgerLine{
		LineID:          uuid.NewString(),
		BatchID:         batch.BatchID,
		TenantID:        batch.TenantID,
		TransactionDate: now,
		Kind:            domain.KindRoundingAdjustment,
		ReferenceType:   batch.ReferenceType,
		ReferenceID:     batch.ReferenceID,
		VoucherNumber:   batch.VoucherNumber,
		Narration:       "automatic rounding adjustment",
		CreatedAt:       now,
		CreatedBy:       userID,
	}
	if difference.IsPositive() {
		line.CreditAmount = difference
	} else {
		line.DebitAmount = difference.Neg()
	}
	return line
}

// bucketBreakdownInTx aggregates per-bucket totals from inside the failing
// transaction, so the breakdown includes the batch about to be rolled back.
func (r *PgxLedgerRepository) bucketBreakdownInTx(ctx context.Context, tx pgx.Tx, tenantID string) ([]domain.BucketRow, error) {
	query := `
		SELECT transaction_kind, COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM ledger_lines
		WHERE tenant_id = $1
		GROUP BY transaction_kind;
	`
	rows, err := tx.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bucket breakdown: %w", err)
	}
	defer rows.Close()

	byBucket := make(map[domain.ReportBucket]*domain.BucketRow)
	for rows.Next() {
		var kind string
		var debit, credit decimal.Decimal
		if err := rows.Scan(&kind, &debit, &credit); err != nil {
			return nil, fmt.Errorf("failed to scan bucket breakdown row: %w", err)
		}
		bucket, err := domain.BucketFor(domain.TransactionKind(kind))
		if err != nil {
			return nil, err
		}
		row, ok := byBucket[bucket]
		if !ok {
			row = &domain.BucketRow{Bucket: bucket, Debit: decimal.Zero, Credit: decimal.Zero}
			byBucket[bucket] = row
		}
		row.Debit = row.Debit.Add(debit)
		row.Credit = row.Credit.Add(credit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bucket breakdown rows: %w", err)
	}

	out := make([]domain.BucketRow, 0, len(byBucket))
	for _, bucket := range domain.ReportBuckets {
		if row, ok := byBucket[bucket]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

// recordDiscrepancy persists the imbalance incident after the posting
// transaction has been rolled back. A failure here must not mask the
// imbalance error itself, so it is deliberately not propagated.
func (r *PgxLedgerRepository) recordDiscrepancy(ctx context.Context, batch domain.PostingBatch, difference decimal.Decimal, buckets []domain.BucketRow) {
	batchID := batch.BatchID
	now := time.Now()
	_ = r.discrepancyRepo.SaveDiscrepancy(ctx, domain.Discrepancy{
		DiscrepancyID: uuid.NewString(),
		TenantID:      batch.TenantID,
		BatchID:       &batchID,
		Difference:    difference,
		Buckets:       buckets,
		Status:        domain.DiscrepancyOpen,
		DetectedAt:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     batch.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: batch.CreatedBy,
		},
	})
}

func toBucketDeltas(rows []domain.BucketRow) []apperrors.BucketDelta {
	deltas := make([]apperrors.BucketDelta, len(rows))
	for i, row := range rows {
		deltas[i] = apperrors.BucketDelta{
			Bucket: string(row.Bucket),
			Debit:  row.Debit,
			Credit: row.Credit,
		}
	}
	return deltas
}

// FindBatchByID retrieves a posting batch with its lines.
func (r *PgxLedgerRepository) FindBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.PostingBatch, error) {
	query := `
		SELECT batch_id, tenant_id, document_kind, reference_type, reference_id, voucher_number, narration, created_at, created_by
		FROM posting_batches
		WHERE tenant_id = $1 AND batch_id = $2;
	`
	var m models.PostingBatch
	err := r.Pool.QueryRow(ctx, query, tenantID, batchID).Scan(
		&m.BatchID,
		&m.TenantID,
		&m.DocumentKind,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.VoucherNumber,
		&m.Narration,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find posting batch "+batchID, err)
	}

	batch := mapping.ToDomainPostingBatch(m)
	lines, err := r.findLinesByBatchID(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	batch.Lines = lines
	return &batch, nil
}

// FindBatchByReference retrieves the batch posted for a source document.
func (r *PgxLedgerRepository) FindBatchByReference(ctx context.Context, tenantID string, referenceType string, referenceID string, documentKind domain.DocumentKind) (*domain.PostingBatch, error) {
	query := `
		SELECT batch_id, tenant_id, document_kind, reference_type, reference_id, voucher_number, narration, created_at, created_by
		FROM posting_batches
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3 AND document_kind = $4;
	`
	var m models.PostingBatch
	err := r.Pool.QueryRow(ctx, query, tenantID, referenceType, referenceID, string(documentKind)).Scan(
		&m.BatchID,
		&m.TenantID,
		&m.DocumentKind,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.VoucherNumber,
		&m.Narration,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find posting batch for "+referenceType+" "+referenceID, err)
	}

	batch := mapping.ToDomainPostingBatch(m)
	lines, err := r.findLinesByBatchID(ctx, tenantID, batch.BatchID)
	if err != nil {
		return nil, err
	}
	batch.Lines = lines
	return &batch, nil
}

func (r *PgxLedgerRepository) findLinesByBatchID(ctx context.Context, tenantID string, batchID string) ([]domain.LedgerLine, error) {
	query := `
		SELECT ` + ledgerLineColumns + `
		FROM ledger_lines
		WHERE tenant_id = $1 AND batch_id = $2
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, batchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for batch "+batchID, err)
	}
	defer rows.Close()
	return scanLedgerLines(rows)
}

// ListLinesByReference retrieves every line written for a source document.
func (r *PgxLedgerRepository) ListLinesByReference(ctx context.Context, tenantID string, referenceType string, referenceID string) ([]domain.LedgerLine, error) {
	query := `
		SELECT ` + ledgerLineColumns + `
		FROM ledger_lines
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, referenceType, referenceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for "+referenceType+" "+referenceID, err)
	}
	defer rows.Close()
	return scanLedgerLines(rows)
}

// ListLinesByAccount retrieves a paginated account statement using token-based pagination.
func (r *PgxLedgerRepository) ListLinesByAccount(ctx context.Context, tenantID string, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + ledgerLineColumns + `
		FROM ledger_lines
		WHERE tenant_id = $1 AND account_id = $2
	`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{tenantID, accountID}

	if nextToken != nil && *nextToken != "" {
		lastTransactionDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (transaction_date, created_at) < ($3, $4)`
		args = append(args, lastTransactionDate, lastCreatedAt)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	lines, err := scanLedgerLines(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(lines) > limit {
		last := lines[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		lines = lines[:limit]
	}
	return lines, nextTokenVal, nil
}

// ListBatchesByTenant retrieves a paginated list of posting batches, newest first.
func (r *PgxLedgerRepository) ListBatchesByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.PostingBatch, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT batch_id, tenant_id, document_kind, reference_type, reference_id, voucher_number, narration, created_at, created_by
		FROM posting_batches
		WHERE tenant_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, batch_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{tenantID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND created_at < $2`
		args = append(args, lastCreatedAt)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query posting batches for tenant "+tenantID, err)
	}
	defer rows.Close()

	batches := []models.PostingBatch{}
	for rows.Next() {
		var m models.PostingBatch
		err := rows.Scan(
			&m.BatchID,
			&m.TenantID,
			&m.DocumentKind,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.VoucherNumber,
			&m.Narration,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan posting batch row", err)
		}
		batches = append(batches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating posting batch rows", err)
	}

	var nextTokenVal *string
	if len(batches) > limit {
		token := pagination.EncodeDateBasedToken(batches[limit-1].CreatedAt)
		nextTokenVal = &token
		batches = batches[:limit]
	}

	result := make([]domain.PostingBatch, len(batches))
	for i, m := range batches {
		result[i] = mapping.ToDomainPostingBatch(m)
	}
	return result, nextTokenVal, nil
}

// SumsByKind returns debit/credit totals per transaction kind as of a date.
func (r *PgxLedgerRepository) SumsByKind(ctx context.Context, tenantID string, asOf time.Time) (map[domain.TransactionKind]domain.KindTotals, error) {
	query := `
		SELECT transaction_kind, COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM ledger_lines
		WHERE tenant_id = $1 AND transaction_date <= $2
		GROUP BY transaction_kind;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query kind totals for tenant "+tenantID, err)
	}
	defer rows.Close()

	totals := make(map[domain.TransactionKind]domain.KindTotals)
	for rows.Next() {
		var kind string
		var debit, credit decimal.Decimal
		if err := rows.Scan(&kind, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan kind totals row", err)
		}
		totals[domain.TransactionKind(kind)] = domain.KindTotals{Debit: debit, Credit: credit}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating kind totals rows", err)
	}
	return totals, nil
}

// SumForKind returns the net total (credits minus debits) of one kind for one document.
func (r *PgxLedgerRepository) SumForKind(ctx context.Context, tenantID string, referenceType string, referenceID string, kind domain.TransactionKind) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(credit_amount), 0) - COALESCE(SUM(debit_amount), 0)
		FROM ledger_lines
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3 AND transaction_kind = $4;
	`
	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, referenceType, referenceID, string(kind)).Scan(&net); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum "+string(kind)+" for "+referenceType+" "+referenceID, err)
	}
	return net, nil
}

func scanLedgerLines(rows pgx.Rows) ([]domain.LedgerLine, error) {
	lines := []models.LedgerLine{}
	for rows.Next() {
		var m models.LedgerLine
		err := rows.Scan(
			&m.LineID,
			&m.BatchID,
			&m.TenantID,
			&m.AccountID,
			&m.TransactionDate,
			&m.TransactionKind,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.VoucherNumber,
			&m.Narration,
			&m.BalanceAfter,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line row", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger line rows", err)
	}
	return mapping.ToDomainLedgerLineSlice(lines), nil
}
