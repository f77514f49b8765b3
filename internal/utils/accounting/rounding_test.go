package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.004", "10.00"},
		{"10.005", "10.01"},
		{"10.999", "11.00"},
		{"-2.005", "-2.01"},
		{"0", "0.00"},
	}
	for _, tt := range tests {
		got := RoundCurrency(d(tt.in))
		assert.True(t, got.Equal(d(tt.want)), "RoundCurrency(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestRoundWholeRupee(t *testing.T) {
	assert.True(t, RoundWholeRupee(d("12.49")).Equal(d("12")))
	assert.True(t, RoundWholeRupee(d("12.50")).Equal(d("13")))
	assert.True(t, RoundWholeRupee(d("12.51")).Equal(d("13")))
}

func TestCalculateCommission(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		percent string
		want    string
	}{
		{"exact", "1000.00", "10", "100"},
		{"rounds to whole rupee", "1234.56", "2.5", "31"},
		{"rounds down", "999.00", "1", "10"},
		{"zero percent", "1000.00", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateCommission(d(tt.amount), d(tt.percent))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestProportionOf(t *testing.T) {
	// A 500 return against a 2360 invoice carrying 180.00 of tax.
	got := ProportionOf(d("180.00"), d("500.00"), d("2360.00"))
	assert.True(t, got.Equal(d("38.14")), "got %s", got)

	// Full return reproduces the original amount.
	full := ProportionOf(d("180.00"), d("2360.00"), d("2360.00"))
	assert.True(t, full.Equal(d("180.00")))

	// Zero total must not divide by zero.
	zero := ProportionOf(d("180.00"), d("500.00"), decimal.Zero)
	assert.True(t, zero.IsZero())
}
