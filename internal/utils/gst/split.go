// Package gst implements the GST split calculation for Indian Goods and
// Services Tax: intrastate supplies split the tax into equal CGST and SGST
// halves, interstate supplies carry the whole amount as IGST.
package gst

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	"github.com/bahikhata/retail_ledger/internal/utils/accounting"
)

// Rates are the GST slabs in force. Anything else is rejected before any
// calculation happens.
var Rates = []int64{0, 5, 12, 18, 28}

// Split holds the three-way GST decomposition of a taxable value.
type Split struct {
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	IGST decimal.Decimal `json:"igst"`
}

// Total is the full tax amount of the split.
func (s Split) Total() decimal.Decimal {
	return s.CGST.Add(s.SGST).Add(s.IGST)
}

// ValidRate reports whether rate is one of the GST slabs.
func ValidRate(rate decimal.Decimal) bool {
	for _, r := range Rates {
		if rate.Equal(decimal.NewFromInt(r)) {
			return true
		}
	}
	return false
}

// Calculate splits the GST on a taxable value. Same-state supplies halve the
// tax into CGST and SGST, each half rounded independently to 2dp so the total
// is re-derived from the rounded halves rather than rounded separately;
// different-state supplies put the whole rounded tax into IGST. A zero rate
// yields an all-zero split.
//
// The function is pure: it never touches storage and never adjusts anything
// beyond its own return value.
func Calculate(taxableValue, rate decimal.Decimal, sameState bool) (Split, error) {
	if taxableValue.IsNegative() {
		return Split{}, fmt.Errorf("%w: taxable value must not be negative, got %s",
			apperrors.ErrValidation, taxableValue.String())
	}
	if !ValidRate(rate) {
		return Split{}, fmt.Errorf("%w: unsupported GST rate %s", apperrors.ErrValidation, rate.String())
	}

	split := Split{CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero}
	if rate.IsZero() {
		return split, nil
	}

	tax := taxableValue.Mul(rate).Div(decimal.NewFromInt(100))
	if sameState {
		half := accounting.RoundCurrency(tax.Div(decimal.NewFromInt(2)))
		split.CGST = half
		split.SGST = half
	} else {
		split.IGST = accounting.RoundCurrency(tax)
	}
	return split, nil
}
