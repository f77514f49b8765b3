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

type PgxStockBatchRepository struct {
	BaseRepository
}

// newPgxStockBatchRepository creates a new repository for FIFO stock batch data.
func newPgxStockBatchRepository(pool *pgxpool.Pool) portsrepo.StockBatchRepositoryFacade {
	return &PgxStockBatchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxStockBatchRepository implements portsrepo.StockBatchRepositoryFacade
var _ portsrepo.StockBatchRepositoryFacade = (*PgxStockBatchRepository)(nil)

const stockBatchColumns = `batch_id, tenant_id, item_id, source_ref, purchase_date, quantity_purchased, quantity_remaining, unit_cost, gst_per_unit, purchased_with_gst, status, created_at, created_by, last_updated_at, last_updated_by`

// SaveStockBatch persists a new stock batch created from a purchase.
func (r *PgxStockBatchRepository) SaveStockBatch(ctx context.Context, batch domain.StockBatch) error {
	m := mapping.ToModelStockBatch(batch)
	query := `
		INSERT INTO stock_batches (` + stockBatchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BatchID, m.TenantID, m.ItemID, m.SourceRef, m.PurchaseDate,
		m.QuantityPurchased, m.QuantityRemaining, m.UnitCost, m.GSTPerUnit,
		m.PurchasedWithGST, m.Status, m.CreatedAt, m.CreatedBy,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stock batch "+m.BatchID, err)
	}
	return nil
}

// FindStockBatchByID retrieves a stock batch by its unique identifier.
func (r *PgxStockBatchRepository) FindStockBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.StockBatch, error) {
	query := `
		SELECT ` + stockBatchColumns + `
		FROM stock_batches
		WHERE tenant_id = $1 AND batch_id = $2;
	`
	row := r.Pool.QueryRow(ctx, query, tenantID, batchID)
	m, err := scanStockBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find stock batch "+batchID, err)
	}
	batch := mapping.ToDomainStockBatch(m)
	return &batch, nil
}

// ListStockBatchesByItem retrieves an item's batches, oldest purchase first.
func (r *PgxStockBatchRepository) ListStockBatchesByItem(ctx context.Context, tenantID string, itemID string, includeDepleted bool) ([]domain.StockBatch, error) {
	query := `
		SELECT ` + stockBatchColumns + `
		FROM stock_batches
		WHERE tenant_id = $1 AND item_id = $2
	`
	if !includeDepleted {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY purchase_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, tenantID, itemID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock batches for item "+itemID, err)
	}
	defer rows.Close()

	batches := []models.StockBatch{}
	for rows.Next() {
		m, err := scanStockBatch(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock batch row", err)
		}
		batches = append(batches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock batch rows for item "+itemID, err)
	}
	return mapping.ToDomainStockBatchSlice(batches), nil
}

// AllocateFIFO consumes quantity for an item oldest-batch-first under row
// locks. The whole allocation succeeds or none of it does.
func (r *PgxStockBatchRepository) AllocateFIFO(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) ([]domain.BatchAllocation, error) {
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: allocation quantity must be positive, got %s", apperrors.ErrValidation, quantity.String())
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the item's active batches in FIFO order for the whole allocation.
	query := `
		SELECT ` + stockBatchColumns + `
		FROM stock_batches
		WHERE tenant_id = $1 AND item_id = $2 AND status = 'active'
		ORDER BY purchase_date, created_at
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, tenantID, itemID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock stock batches for item "+itemID, err)
	}

	batches := []models.StockBatch{}
	for rows.Next() {
		m, err := scanStockBatch(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan locked stock batch row", err)
		}
		batches = append(batches, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, apperrors.NewAppError(500, "error iterating locked stock batch rows", err)
	}
	rows.Close()

	now := time.Now()
	remaining := quantity
	allocations := []domain.BatchAllocation{}
	updateQuery := `
		UPDATE stock_batches
		SET quantity_remaining = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND batch_id = $2;
	`
	for _, m := range batches {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(m.QuantityRemaining, remaining)
		if !take.IsPositive() {
			continue
		}
		newRemaining := m.QuantityRemaining.Sub(take)
		status := models.StockActive
		if newRemaining.IsZero() {
			status = models.StockDepleted
		}
		if _, err := tx.Exec(ctx, updateQuery, tenantID, m.BatchID, newRemaining, status, now, updatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to decrement stock batch "+m.BatchID, err)
		}
		allocations = append(allocations, domain.BatchAllocation{
			BatchID:  m.BatchID,
			ItemID:   itemID,
			Quantity: take,
			UnitCost: m.UnitCost,
		})
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		return nil, fmt.Errorf("%w: insufficient stock for item %s, short by %s",
			apperrors.ErrValidation, itemID, remaining.String())
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return allocations, nil
}

// RestockFIFO returns quantity to an item's batches under row locks, refilling
// the most recently consumed capacity first. Locking and refilling happen in
// one transaction so concurrent restocks cannot overfill a batch past its
// purchased quantity.
func (r *PgxStockBatchRepository) RestockFIFO(ctx context.Context, tenantID string, itemID string, quantity decimal.Decimal, updatedBy string) ([]domain.BatchAllocation, error) {
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: restock quantity must be positive, got %s", apperrors.ErrValidation, quantity.String())
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Same lock ordering as AllocateFIFO; depleted batches are included since
	// they carry the most refillable capacity.
	query := `
		SELECT ` + stockBatchColumns + `
		FROM stock_batches
		WHERE tenant_id = $1 AND item_id = $2
		ORDER BY purchase_date, created_at
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, tenantID, itemID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock stock batches for item "+itemID, err)
	}

	batches := []models.StockBatch{}
	for rows.Next() {
		m, err := scanStockBatch(rows)
		if err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan locked stock batch row", err)
		}
		batches = append(batches, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, apperrors.NewAppError(500, "error iterating locked stock batch rows", err)
	}
	rows.Close()

	now := time.Now()
	remaining := quantity
	allocations := []domain.BatchAllocation{}
	updateQuery := `
		UPDATE stock_batches
		SET quantity_remaining = $3, status = 'active', last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND batch_id = $2;
	`
	for i := len(batches) - 1; i >= 0 && remaining.IsPositive(); i-- {
		m := batches[i]
		capacity := m.QuantityPurchased.Sub(m.QuantityRemaining)
		if !capacity.IsPositive() {
			continue
		}
		take := decimal.Min(capacity, remaining)
		newRemaining := m.QuantityRemaining.Add(take)
		if _, err := tx.Exec(ctx, updateQuery, tenantID, m.BatchID, newRemaining, now, updatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to refill stock batch "+m.BatchID, err)
		}
		allocations = append(allocations, domain.BatchAllocation{
			BatchID:  m.BatchID,
			ItemID:   itemID,
			Quantity: take,
			UnitCost: m.UnitCost,
		})
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		return nil, fmt.Errorf("%w: restock quantity %s for item %s exceeds consumed stock",
			apperrors.ErrValidation, quantity.String(), itemID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return allocations, nil
}

// RestockAllocations returns previously consumed quantities to their
// originating batches, reactivating any batch that was depleted.
func (r *PgxStockBatchRepository) RestockAllocations(ctx context.Context, tenantID string, allocations []domain.BatchAllocation, updatedBy string) error {
	if len(allocations) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()
	query := `
		UPDATE stock_batches
		SET quantity_remaining = quantity_remaining + $3, status = 'active', last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND batch_id = $2;
	`
	for _, alloc := range allocations {
		ct, err := tx.Exec(ctx, query, tenantID, alloc.BatchID, alloc.Quantity, now, updatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to restock batch "+alloc.BatchID, err)
		}
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("%w: stock batch %s", apperrors.ErrNotFound, alloc.BatchID)
		}
	}

	return r.Commit(ctx, tx)
}

func scanStockBatch(row pgx.Row) (models.StockBatch, error) {
	var m models.StockBatch
	err := row.Scan(
		&m.BatchID,
		&m.TenantID,
		&m.ItemID,
		&m.SourceRef,
		&m.PurchaseDate,
		&m.QuantityPurchased,
		&m.QuantityRemaining,
		&m.UnitCost,
		&m.GSTPerUnit,
		&m.PurchasedWithGST,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
