package gst

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate_SameState(t *testing.T) {
	tests := []struct {
		name    string
		taxable string
		rate    string
		cgst    string
		sgst    string
	}{
		{"standard 18 percent", "1000.00", "18", "90.00", "90.00"},
		{"five percent", "200.00", "5", "5.00", "5.00"},
		{"odd paise halves round independently", "99.99", "18", "9.00", "9.00"},
		{"half paise rounds up", "100.28", "18", "9.03", "9.03"},
		{"twenty eight percent", "350.00", "28", "49.00", "49.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := Calculate(d(tt.taxable), d(tt.rate), true)
			require.NoError(t, err)
			assert.True(t, split.CGST.Equal(d(tt.cgst)), "cgst: got %s want %s", split.CGST, tt.cgst)
			assert.True(t, split.SGST.Equal(d(tt.sgst)), "sgst: got %s want %s", split.SGST, tt.sgst)
			assert.True(t, split.IGST.IsZero())
			assert.True(t, split.Total().Equal(split.CGST.Add(split.SGST)))
		})
	}
}

func TestCalculate_DifferentState(t *testing.T) {
	split, err := Calculate(d("1000.00"), d("18"), false)
	require.NoError(t, err)
	assert.True(t, split.CGST.IsZero())
	assert.True(t, split.SGST.IsZero())
	assert.True(t, split.IGST.Equal(d("180.00")))
}

func TestCalculate_ZeroRate(t *testing.T) {
	split, err := Calculate(d("5000.00"), d("0"), true)
	require.NoError(t, err)
	assert.True(t, split.Total().IsZero())
}

func TestCalculate_ZeroTaxable(t *testing.T) {
	split, err := Calculate(decimal.Zero, d("18"), true)
	require.NoError(t, err)
	assert.True(t, split.Total().IsZero())
}

func TestCalculate_InvalidRate(t *testing.T) {
	for _, rate := range []string{"3", "15", "18.5", "-5", "100"} {
		_, err := Calculate(d("100.00"), d(rate), true)
		assert.True(t, errors.Is(err, apperrors.ErrValidation), "rate %s should be rejected", rate)
	}
}

func TestCalculate_NegativeTaxable(t *testing.T) {
	_, err := Calculate(d("-10.00"), d("18"), true)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestValidRate(t *testing.T) {
	assert.True(t, ValidRate(d("0")))
	assert.True(t, ValidRate(d("28")))
	assert.False(t, ValidRate(d("10")))
}
