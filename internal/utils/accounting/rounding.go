package accounting

import (
	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the standard currency precision (paise).
const CurrencyPlaces = 2

// RoundCurrency rounds an amount to 2 decimal places, half up.
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPlaces)
}

// RoundWholeRupee rounds an amount to the nearest whole rupee, half up.
// Cash-heavy retail businesses settle commissions and round-offs in whole
// rupees.
func RoundWholeRupee(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}

// CalculateCommission computes an agent's commission on an invoice amount,
// rounded to the whole rupee. Commission is always computed against the
// original invoice amount; returns reverse it proportionally rather than
// recomputing from a net figure.
func CalculateCommission(invoiceAmount, percentage decimal.Decimal) decimal.Decimal {
	commission := invoiceAmount.Mul(percentage).Div(decimal.NewFromInt(100))
	return RoundWholeRupee(commission)
}

// ProportionOf scales an original amount by returned/total and rounds to
// currency precision. Used to reverse tax and commission legs proportionally
// on returns, with the same rounding rule as the original posting.
func ProportionOf(original, returned, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return RoundCurrency(original.Mul(returned).Div(total))
}
