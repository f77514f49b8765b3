package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyStatus is the lifecycle of a recorded imbalance incident.
type DiscrepancyStatus string

const (
	DiscrepancyOpen     DiscrepancyStatus = "OPEN"
	DiscrepancyResolved DiscrepancyStatus = "RESOLVED"
)

// Discrepancy records one detected ledger imbalance for operator review.
// Buckets holds the bucket breakdown at detection time as a JSONB column.
type Discrepancy struct {
	DiscrepancyID  string            `db:"discrepancy_id"` // Primary Key (UUID)
	TenantID       string            `db:"tenant_id"`
	BatchID        *string           `db:"batch_id"` // Nullable triggering batch
	Difference     decimal.Decimal   `db:"difference"`
	Buckets        []byte            `db:"buckets"` // JSONB snapshot of bucket rows
	Status         DiscrepancyStatus `db:"status"`
	ResolutionNote string            `db:"resolution_note"`
	DetectedAt     time.Time         `db:"detected_at"`
	ResolvedAt     *time.Time        `db:"resolved_at"` // Nullable
	AuditFields
}
