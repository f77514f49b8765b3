package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// KindTotals holds the aggregate debit/credit sums for one transaction kind.
type KindTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// BucketRow is one aggregate row of the trial balance.
type BucketRow struct {
	Bucket ReportBucket    `json:"bucket"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalance is the aggregate report proving total debits equal total
// credits across all buckets as of a date. It is compiled exclusively from
// ledger lines; there is no fallback to source-document tables.
type TrialBalance struct {
	TenantID    string          `json:"tenantID"`
	AsOf        time.Time       `json:"asOf"`
	Buckets     []BucketRow     `json:"buckets"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	IsBalanced  bool            `json:"isBalanced"`
}

// ReconciliationReport is the result of a full verification run for one
// tenant: the global debit/credit totals, each kind's own totals, and any
// open discrepancies on record.
type ReconciliationReport struct {
	TenantID          string          `json:"tenantID"`
	AsOf              time.Time       `json:"asOf"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	Difference        decimal.Decimal `json:"difference"`
	InBalance         bool            `json:"inBalance"`
	Buckets           []BucketRow     `json:"buckets"`
	OpenDiscrepancies []Discrepancy   `json:"openDiscrepancies"`
}

// DiscrepancyStatus is the lifecycle of a recorded imbalance incident.
type DiscrepancyStatus string

const (
	DiscrepancyOpen     DiscrepancyStatus = "OPEN"
	DiscrepancyResolved DiscrepancyStatus = "RESOLVED"
)

// Discrepancy records one LedgerImbalance incident for operator review: the
// drift that exceeded tolerance, the batch that surfaced it, and the bucket
// breakdown at detection time. It replaces the family of ad hoc diagnose
// endpoints in the system this design supersedes.
type Discrepancy struct {
	DiscrepancyID string            `json:"discrepancyID"`
	TenantID      string            `json:"tenantID"`
	BatchID       *string           `json:"batchID,omitempty"` // Triggering batch, if any
	Difference    decimal.Decimal   `json:"difference"`        // TotalDebit - TotalCredit at detection
	Buckets       []BucketRow       `json:"buckets"`
	Status        DiscrepancyStatus `json:"status"`
	ResolutionNote string           `json:"resolutionNote,omitempty"`
	DetectedAt    time.Time         `json:"detectedAt"`
	ResolvedAt    *time.Time        `json:"resolvedAt,omitempty"`
	AuditFields
}
