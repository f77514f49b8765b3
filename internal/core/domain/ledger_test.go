package domain_test

import (
	"testing"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func debitLine(kind domain.TransactionKind, amount string) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:      "line-d",
		Kind:        kind,
		DebitAmount: decimal.RequireFromString(amount),
	}
}

func creditLine(kind domain.TransactionKind, amount string) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:       "line-c",
		Kind:         kind,
		CreditAmount: decimal.RequireFromString(amount),
	}
}

func TestLedgerLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.LedgerLine
		wantErr bool
	}{
		{
			name:    "debit only is valid",
			line:    debitLine(domain.KindAccountsReceivable, "100"),
			wantErr: false,
		},
		{
			name:    "credit only is valid",
			line:    creditLine(domain.KindSalesIncome, "100"),
			wantErr: false,
		},
		{
			name: "both sides set is invalid",
			line: domain.LedgerLine{
				Kind:         domain.KindSalesIncome,
				DebitAmount:  decimal.NewFromInt(10),
				CreditAmount: decimal.NewFromInt(10),
			},
			wantErr: true,
		},
		{
			name: "both sides zero is invalid",
			line: domain.LedgerLine{
				Kind: domain.KindSalesIncome,
			},
			wantErr: true,
		},
		{
			name: "negative amount is invalid",
			line: domain.LedgerLine{
				Kind:        domain.KindSalesIncome,
				DebitAmount: decimal.NewFromInt(-5),
			},
			wantErr: true,
		},
		{
			name: "unknown kind is invalid",
			line: domain.LedgerLine{
				Kind:        domain.TransactionKind("mystery"),
				DebitAmount: decimal.NewFromInt(5),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostingBatch_Validate(t *testing.T) {
	t.Run("balanced batch passes", func(t *testing.T) {
		batch := domain.PostingBatch{
			BatchID: "b-1",
			Lines: []domain.LedgerLine{
				debitLine(domain.KindAccountsReceivable, "1180"),
				creditLine(domain.KindSalesIncome, "1000"),
				creditLine(domain.KindGSTPayableCGST, "90"),
				creditLine(domain.KindGSTPayableSGST, "90"),
			},
		}
		assert.NoError(t, batch.Validate())
	})

	t.Run("unbalanced batch fails", func(t *testing.T) {
		batch := domain.PostingBatch{
			BatchID: "b-2",
			Lines: []domain.LedgerLine{
				debitLine(domain.KindAccountsReceivable, "1180"),
				creditLine(domain.KindSalesIncome, "1000"),
			},
		}
		assert.Error(t, batch.Validate())
	})

	t.Run("single line fails", func(t *testing.T) {
		batch := domain.PostingBatch{
			BatchID: "b-3",
			Lines: []domain.LedgerLine{
				debitLine(domain.KindAccountsReceivable, "100"),
			},
		}
		assert.Error(t, batch.Validate())
	})
}

func TestLedgerLine_Amount(t *testing.T) {
	assert.True(t, debitLine(domain.KindCOGS, "42.50").Amount().Equal(decimal.RequireFromString("42.50")))
	assert.True(t, creditLine(domain.KindSalesIncome, "17").Amount().Equal(decimal.NewFromInt(17)))
}

func TestBucketFor_CoversEveryKind(t *testing.T) {
	for _, kind := range domain.AllTransactionKinds {
		bucket, err := domain.BucketFor(kind)
		assert.NoError(t, err, "kind %s has no bucket", kind)
		assert.NotEmpty(t, bucket)
	}

	_, err := domain.BucketFor(domain.TransactionKind("mystery"))
	assert.Error(t, err)
}
