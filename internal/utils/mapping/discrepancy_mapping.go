package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/bahikhata/retail_ledger/internal/models"
)

// ToModelDiscrepancy converts a domain Discrepancy to a model Discrepancy,
// marshalling the bucket snapshot into its JSONB representation.
func ToModelDiscrepancy(d domain.Discrepancy) (models.Discrepancy, error) {
	buckets, err := json.Marshal(d.Buckets)
	if err != nil {
		return models.Discrepancy{}, fmt.Errorf("failed to marshal discrepancy buckets: %w", err)
	}
	return models.Discrepancy{
		DiscrepancyID:  d.DiscrepancyID,
		TenantID:       d.TenantID,
		BatchID:        d.BatchID,
		Difference:     d.Difference,
		Buckets:        buckets,
		Status:         models.DiscrepancyStatus(d.Status),
		ResolutionNote: d.ResolutionNote,
		DetectedAt:     d.DetectedAt,
		ResolvedAt:     d.ResolvedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

// ToDomainDiscrepancy converts a model Discrepancy to a domain Discrepancy.
func ToDomainDiscrepancy(m models.Discrepancy) (domain.Discrepancy, error) {
	var buckets []domain.BucketRow
	if len(m.Buckets) > 0 {
		if err := json.Unmarshal(m.Buckets, &buckets); err != nil {
			return domain.Discrepancy{}, fmt.Errorf("failed to unmarshal discrepancy buckets: %w", err)
		}
	}
	return domain.Discrepancy{
		DiscrepancyID:  m.DiscrepancyID,
		TenantID:       m.TenantID,
		BatchID:        m.BatchID,
		Difference:     m.Difference,
		Buckets:        buckets,
		Status:         domain.DiscrepancyStatus(m.Status),
		ResolutionNote: m.ResolutionNote,
		DetectedAt:     m.DetectedAt,
		ResolvedAt:     m.ResolvedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}
