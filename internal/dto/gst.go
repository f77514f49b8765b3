package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/utils/gst"
)

// GSTSplitRequest defines the inputs for a standalone GST split calculation.
type GSTSplitRequest struct {
	TaxableValue decimal.Decimal `json:"taxableValue" binding:"required"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	SameState    bool            `json:"sameState"`
}

// GSTSplitResponse returns the three-way decomposition of the tax.
type GSTSplitResponse struct {
	TaxableValue decimal.Decimal `json:"taxableValue"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalTax     decimal.Decimal `json:"totalTax"`
	GrossValue   decimal.Decimal `json:"grossValue"`
}

// ToGSTSplitResponse builds the response from a computed split.
func ToGSTSplitResponse(taxable decimal.Decimal, split gst.Split) GSTSplitResponse {
	total := split.Total()
	return GSTSplitResponse{
		TaxableValue: taxable,
		CGST:         split.CGST,
		SGST:         split.SGST,
		IGST:         split.IGST,
		TotalTax:     total,
		GrossValue:   taxable.Add(total),
	}
}
