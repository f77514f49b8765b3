package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// BucketRowResponse represents one aggregate row of the trial balance response.
type BucketRowResponse struct {
	Bucket string          `json:"bucket"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	AsOf    string              `json:"asOf"`
	Buckets []BucketRowResponse `json:"buckets"`
	Totals  struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// ReconciliationReportResponse represents a verification run's result.
type ReconciliationReportResponse struct {
	AsOf              string                `json:"asOf"`
	TotalDebit        decimal.Decimal       `json:"totalDebit"`
	TotalCredit       decimal.Decimal       `json:"totalCredit"`
	Difference        decimal.Decimal       `json:"difference"`
	InBalance         bool                  `json:"inBalance"`
	Buckets           []BucketRowResponse   `json:"buckets"`
	OpenDiscrepancies []DiscrepancyResponse `json:"openDiscrepancies"`
}

// DiscrepancyResponse defines the data returned for a discrepancy record.
type DiscrepancyResponse struct {
	DiscrepancyID  string              `json:"discrepancyID"`
	BatchID        *string             `json:"batchID,omitempty"`
	Difference     decimal.Decimal     `json:"difference"`
	Buckets        []BucketRowResponse `json:"buckets"`
	Status         string              `json:"status"`
	ResolutionNote string              `json:"resolutionNote,omitempty"`
	DetectedAt     time.Time           `json:"detectedAt"`
	ResolvedAt     *time.Time          `json:"resolvedAt,omitempty"`
}

// ResolveDiscrepancyRequest carries the operator's resolution note.
type ResolveDiscrepancyRequest struct {
	Note string `json:"note" binding:"required"`
}

// ToBucketRowResponses converts domain bucket rows to DTOs.
func ToBucketRowResponses(rows []domain.BucketRow) []BucketRowResponse {
	out := make([]BucketRowResponse, len(rows))
	for i, r := range rows {
		out[i] = BucketRowResponse{
			Bucket: string(r.Bucket),
			Debit:  r.Debit,
			Credit: r.Credit,
		}
	}
	return out
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:       tb.AsOf.Format("2006-01-02"),
		Buckets:    ToBucketRowResponses(tb.Buckets),
		IsBalanced: tb.IsBalanced,
	}
	response.Totals.Debit = tb.TotalDebit
	response.Totals.Credit = tb.TotalCredit
	return response
}

// ToDiscrepancyResponse converts a domain.Discrepancy to a DTO.
func ToDiscrepancyResponse(d *domain.Discrepancy) DiscrepancyResponse {
	return DiscrepancyResponse{
		DiscrepancyID:  d.DiscrepancyID,
		BatchID:        d.BatchID,
		Difference:     d.Difference,
		Buckets:        ToBucketRowResponses(d.Buckets),
		Status:         string(d.Status),
		ResolutionNote: d.ResolutionNote,
		DetectedAt:     d.DetectedAt,
		ResolvedAt:     d.ResolvedAt,
	}
}

// ToDiscrepancyResponses converts a slice of domain.Discrepancy to DTOs.
func ToDiscrepancyResponses(ds []domain.Discrepancy) []DiscrepancyResponse {
	out := make([]DiscrepancyResponse, len(ds))
	for i, d := range ds {
		out[i] = ToDiscrepancyResponse(&d)
	}
	return out
}

// ToReconciliationReportResponse converts a domain report to a DTO response.
func ToReconciliationReportResponse(r *domain.ReconciliationReport) ReconciliationReportResponse {
	return ReconciliationReportResponse{
		AsOf:              r.AsOf.Format("2006-01-02"),
		TotalDebit:        r.TotalDebit,
		TotalCredit:       r.TotalCredit,
		Difference:        r.Difference,
		InBalance:         r.InBalance,
		Buckets:           ToBucketRowResponses(r.Buckets),
		OpenDiscrepancies: ToDiscrepancyResponses(r.OpenDiscrepancies),
	}
}
