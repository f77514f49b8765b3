package mapping

import (
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/bahikhata/retail_ledger/internal/models"
)

// ToModelPostingBatch converts a domain PostingBatch to a model PostingBatch
func ToModelPostingBatch(d domain.PostingBatch) models.PostingBatch {
	return models.PostingBatch{
		BatchID:       d.BatchID,
		TenantID:      d.TenantID,
		DocumentKind:  string(d.DocumentKind),
		ReferenceType: d.ReferenceType,
		ReferenceID:   d.ReferenceID,
		VoucherNumber: d.VoucherNumber,
		Narration:     d.Narration,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainPostingBatch converts a model PostingBatch to a domain PostingBatch
func ToDomainPostingBatch(m models.PostingBatch) domain.PostingBatch {
	return domain.PostingBatch{
		BatchID:       m.BatchID,
		TenantID:      m.TenantID,
		DocumentKind:  domain.DocumentKind(m.DocumentKind),
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		VoucherNumber: m.VoucherNumber,
		Narration:     m.Narration,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToModelLedgerLine converts a domain LedgerLine to a model LedgerLine
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	return models.LedgerLine{
		LineID:          d.LineID,
		BatchID:         d.BatchID,
		TenantID:        d.TenantID,
		AccountID:       d.AccountID,
		TransactionDate: d.TransactionDate,
		TransactionKind: string(d.Kind),
		DebitAmount:     d.DebitAmount,
		CreditAmount:    d.CreditAmount,
		ReferenceType:   d.ReferenceType,
		ReferenceID:     d.ReferenceID,
		VoucherNumber:   d.VoucherNumber,
		Narration:       d.Narration,
		BalanceAfter:    d.BalanceAfter,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainLedgerLine converts a model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:          m.LineID,
		BatchID:         m.BatchID,
		TenantID:        m.TenantID,
		AccountID:       m.AccountID,
		TransactionDate: m.TransactionDate,
		Kind:            domain.TransactionKind(m.TransactionKind),
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		VoucherNumber:   m.VoucherNumber,
		Narration:       m.Narration,
		BalanceAfter:    m.BalanceAfter,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}

// ToDomainLedgerLineSlice converts a slice of model LedgerLines to domain LedgerLines
func ToDomainLedgerLineSlice(ms []models.LedgerLine) []domain.LedgerLine {
	ds := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerLine(m)
	}
	return ds
}
