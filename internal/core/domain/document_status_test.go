package domain_test

import (
	"testing"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusFor(t *testing.T) {
	total := decimal.RequireFromString("1180")

	tests := []struct {
		name       string
		balanceDue string
		want       domain.PaymentStatus
	}{
		{name: "zero balance is paid", balanceDue: "0", want: domain.PaymentStatusPaid},
		{name: "overpaid balance is paid", balanceDue: "-0.01", want: domain.PaymentStatusPaid},
		{name: "partial balance", balanceDue: "500", want: domain.PaymentStatusPartial},
		{name: "full balance is unpaid", balanceDue: "1180", want: domain.PaymentStatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.PaymentStatusFor(total, decimal.RequireFromString(tt.balanceDue))
			assert.Equal(t, tt.want, got)
		})
	}
}

// The status values are persisted and enforced by a database CHECK constraint,
// so the string forms are part of the storage contract.
func TestPaymentStatus_StorageValues(t *testing.T) {
	assert.Equal(t, "UNPAID", string(domain.PaymentStatusUnpaid))
	assert.Equal(t, "PARTIAL", string(domain.PaymentStatusPartial))
	assert.Equal(t, "PAID", string(domain.PaymentStatusPaid))
}
