package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	"github.com/bahikhata/retail_ledger/internal/models"
	"github.com/bahikhata/retail_ledger/internal/utils/mapping"
)

type PgxDiscrepancyRepository struct {
	BaseRepository
}

// newPgxDiscrepancyRepository creates a new repository for discrepancy records.
func newPgxDiscrepancyRepository(pool *pgxpool.Pool) portsrepo.DiscrepancyRepositoryFacade {
	return &PgxDiscrepancyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDiscrepancyRepository implements portsrepo.DiscrepancyRepositoryFacade
var _ portsrepo.DiscrepancyRepositoryFacade = (*PgxDiscrepancyRepository)(nil)

const discrepancyColumns = `discrepancy_id, tenant_id, batch_id, difference, buckets, status, resolution_note, detected_at, resolved_at, created_at, created_by, last_updated_at, last_updated_by`

// SaveDiscrepancy persists a new discrepancy record.
func (r *PgxDiscrepancyRepository) SaveDiscrepancy(ctx context.Context, discrepancy domain.Discrepancy) error {
	m, err := mapping.ToModelDiscrepancy(discrepancy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to map discrepancy "+discrepancy.DiscrepancyID, err)
	}
	query := `
		INSERT INTO discrepancies (` + discrepancyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.DiscrepancyID, m.TenantID, m.BatchID, m.Difference, m.Buckets,
		m.Status, m.ResolutionNote, m.DetectedAt, m.ResolvedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert discrepancy "+m.DiscrepancyID, err)
	}
	return nil
}

// FindDiscrepancyByID retrieves a discrepancy by its unique identifier.
func (r *PgxDiscrepancyRepository) FindDiscrepancyByID(ctx context.Context, tenantID string, discrepancyID string) (*domain.Discrepancy, error) {
	query := `
		SELECT ` + discrepancyColumns + `
		FROM discrepancies
		WHERE tenant_id = $1 AND discrepancy_id = $2;
	`
	row := r.Pool.QueryRow(ctx, query, tenantID, discrepancyID)
	m, err := scanDiscrepancy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find discrepancy "+discrepancyID, err)
	}
	d, err := mapping.ToDomainDiscrepancy(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map discrepancy "+discrepancyID, err)
	}
	return &d, nil
}

// ListDiscrepanciesByTenant retrieves a tenant's discrepancies, newest first.
func (r *PgxDiscrepancyRepository) ListDiscrepanciesByTenant(ctx context.Context, tenantID string, includeResolved bool) ([]domain.Discrepancy, error) {
	query := `
		SELECT ` + discrepancyColumns + `
		FROM discrepancies
		WHERE tenant_id = $1
	`
	if !includeResolved {
		query += ` AND status = 'OPEN'`
	}
	query += ` ORDER BY detected_at DESC;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query discrepancies for tenant "+tenantID, err)
	}
	defer rows.Close()

	result := []domain.Discrepancy{}
	for rows.Next() {
		m, err := scanDiscrepancy(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan discrepancy row", err)
		}
		d, err := mapping.ToDomainDiscrepancy(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map discrepancy "+m.DiscrepancyID, err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating discrepancy rows", err)
	}
	return result, nil
}

// MarkResolved transitions an open discrepancy to RESOLVED with a note.
func (r *PgxDiscrepancyRepository) MarkResolved(ctx context.Context, tenantID string, discrepancyID string, note string, resolvedBy string) error {
	now := time.Now()
	query := `
		UPDATE discrepancies
		SET status = 'RESOLVED', resolution_note = $3, resolved_at = $4, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND discrepancy_id = $2 AND status = 'OPEN';
	`
	ct, err := r.Pool.Exec(ctx, query, tenantID, discrepancyID, note, now, resolvedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to resolve discrepancy "+discrepancyID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanDiscrepancy(row pgx.Row) (models.Discrepancy, error) {
	var m models.Discrepancy
	err := row.Scan(
		&m.DiscrepancyID,
		&m.TenantID,
		&m.BatchID,
		&m.Difference,
		&m.Buckets,
		&m.Status,
		&m.ResolutionNote,
		&m.DetectedAt,
		&m.ResolvedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
