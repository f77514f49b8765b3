package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	"github.com/bahikhata/retail_ledger/internal/models"
	"github.com/bahikhata/retail_ledger/internal/utils/mapping"
)

type PgxDocumentStatusRepository struct {
	BaseRepository
}

// newPgxDocumentStatusRepository creates a read-side repository for the
// document settlement projection.
func newPgxDocumentStatusRepository(pool *pgxpool.Pool) portsrepo.DocumentStatusReader {
	return &PgxDocumentStatusRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentStatusReader = (*PgxDocumentStatusRepository)(nil)

// FindDocumentStatus retrieves the settlement projection for a source document.
func (r *PgxDocumentStatusRepository) FindDocumentStatus(ctx context.Context, tenantID string, referenceType string, referenceID string) (*domain.DocumentStatus, error) {
	query := `
		SELECT tenant_id, reference_type, reference_id, payment_status, balance_due, updated_at, updated_by
		FROM document_status
		WHERE tenant_id = $1 AND reference_type = $2 AND reference_id = $3;
	`
	var m models.DocumentStatus
	err := r.Pool.QueryRow(ctx, query, tenantID, referenceType, referenceID).Scan(
		&m.TenantID,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.PaymentStatus,
		&m.BalanceDue,
		&m.UpdatedAt,
		&m.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document status for "+referenceType+" "+referenceID, err)
	}
	status := mapping.ToDomainDocumentStatus(m)
	return &status, nil
}

// upsertDocumentStatusInTx writes the settlement projection inside the caller's
// posting transaction, so status and ledger commit or roll back together.
func upsertDocumentStatusInTx(ctx context.Context, tx pgx.Tx, status domain.DocumentStatus) error {
	m := mapping.ToModelDocumentStatus(status)
	query := `
		INSERT INTO document_status (tenant_id, reference_type, reference_id, payment_status, balance_due, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, reference_type, reference_id)
		DO UPDATE SET payment_status = EXCLUDED.payment_status,
			balance_due = EXCLUDED.balance_due,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by;
	`
	_, err := tx.Exec(ctx, query,
		m.TenantID, m.ReferenceType, m.ReferenceID, m.PaymentStatus,
		m.BalanceDue, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert document status for "+m.ReferenceType+" "+m.ReferenceID, err)
	}
	return nil
}
