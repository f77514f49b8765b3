package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// LedgerLineResponse defines the data returned for a ledger line.
type LedgerLineResponse struct {
	LineID          string           `json:"lineID"`
	BatchID         string           `json:"batchID"`
	AccountID       *string          `json:"accountID,omitempty"`
	TransactionDate time.Time        `json:"transactionDate"`
	TransactionKind string           `json:"transactionKind"`
	DebitAmount     decimal.Decimal  `json:"debitAmount"`
	CreditAmount    decimal.Decimal  `json:"creditAmount"`
	ReferenceType   string           `json:"referenceType"`
	ReferenceID     string           `json:"referenceID"`
	VoucherNumber   string           `json:"voucherNumber"`
	Narration       string           `json:"narration"`
	BalanceAfter    *decimal.Decimal `json:"balanceAfter,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// PostingBatchResponse defines the data returned for a posting batch.
type PostingBatchResponse struct {
	BatchID       string               `json:"batchID"`
	TenantID      string               `json:"tenantID"`
	DocumentKind  string               `json:"documentKind"`
	ReferenceType string               `json:"referenceType"`
	ReferenceID   string               `json:"referenceID"`
	VoucherNumber string               `json:"voucherNumber"`
	Narration     string               `json:"narration"`
	Lines         []LedgerLineResponse `json:"lines"`
	TotalDebit    decimal.Decimal      `json:"totalDebit"`
	TotalCredit   decimal.Decimal      `json:"totalCredit"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// ListLedgerLinesParams defines query parameters for account statement listing.
type ListLedgerLinesParams struct {
	Limit     int     `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerLinesResponse wraps a page of ledger lines.
type ListLedgerLinesResponse struct {
	Lines     []LedgerLineResponse `json:"lines"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ListPostingsParams defines query parameters for listing posting batches.
type ListPostingsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListPostingsResponse wraps a page of posting batches.
type ListPostingsResponse struct {
	Batches   []PostingBatchResponse `json:"batches"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// DocumentStatusResponse defines the settlement state returned for a source document.
type DocumentStatusResponse struct {
	ReferenceType string          `json:"referenceType"`
	ReferenceID   string          `json:"referenceID"`
	PaymentStatus string          `json:"paymentStatus"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToDocumentStatusResponse converts a domain.DocumentStatus to its DTO.
func ToDocumentStatusResponse(s *domain.DocumentStatus) DocumentStatusResponse {
	return DocumentStatusResponse{
		ReferenceType: s.ReferenceType,
		ReferenceID:   s.ReferenceID,
		PaymentStatus: string(s.PaymentStatus),
		BalanceDue:    s.BalanceDue,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToLedgerLineResponse converts a domain.LedgerLine to LedgerLineResponse DTO.
func ToLedgerLineResponse(l *domain.LedgerLine) LedgerLineResponse {
	return LedgerLineResponse{
		LineID:          l.LineID,
		BatchID:         l.BatchID,
		AccountID:       l.AccountID,
		TransactionDate: l.TransactionDate,
		TransactionKind: string(l.Kind),
		DebitAmount:     l.DebitAmount,
		CreditAmount:    l.CreditAmount,
		ReferenceType:   l.ReferenceType,
		ReferenceID:     l.ReferenceID,
		VoucherNumber:   l.VoucherNumber,
		Narration:       l.Narration,
		BalanceAfter:    l.BalanceAfter,
		CreatedAt:       l.CreatedAt,
	}
}

// ToLedgerLineResponses converts a slice of domain.LedgerLine to DTOs.
func ToLedgerLineResponses(lines []domain.LedgerLine) []LedgerLineResponse {
	responses := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		responses[i] = ToLedgerLineResponse(&l)
	}
	return responses
}

// ToPostingBatchResponse converts a domain.PostingBatch to PostingBatchResponse DTO.
func ToPostingBatchResponse(b *domain.PostingBatch) PostingBatchResponse {
	return PostingBatchResponse{
		BatchID:       b.BatchID,
		TenantID:      b.TenantID,
		DocumentKind:  string(b.DocumentKind),
		ReferenceType: b.ReferenceType,
		ReferenceID:   b.ReferenceID,
		VoucherNumber: b.VoucherNumber,
		Narration:     b.Narration,
		Lines:         ToLedgerLineResponses(b.Lines),
		TotalDebit:    b.DebitTotal(),
		TotalCredit:   b.CreditTotal(),
		CreatedAt:     b.CreatedAt,
		CreatedBy:     b.CreatedBy,
	}
}
