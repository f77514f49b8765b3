package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/core/domain"
)

// CreatePostingRequest is the envelope for posting a business document to the
// ledger. DocumentKind selects the posting rule; exactly one of the payload
// fields must be set, matching the kind.
type CreatePostingRequest struct {
	DocumentKind domain.DocumentKind `json:"documentKind" binding:"required,oneof=sale_invoice purchase_bill sales_return refund_payment commission_expense commission_reversal payroll_run opening_balance inventory_cogs"`

	SaleInvoice    *SaleInvoicePayload    `json:"saleInvoice,omitempty"`
	PurchaseBill   *PurchaseBillPayload   `json:"purchaseBill,omitempty"`
	SalesReturn    *SalesReturnPayload    `json:"salesReturn,omitempty"`
	RefundPayment  *RefundPaymentPayload  `json:"refundPayment,omitempty"`
	Commission     *CommissionPayload     `json:"commission,omitempty"`
	PayrollRun     *PayrollRunPayload     `json:"payrollRun,omitempty"`
	OpeningBalance *OpeningBalancePayload `json:"openingBalance,omitempty"`
	InventoryCOGS  *InventoryCOGSPayload  `json:"inventoryCOGS,omitempty"`
}

// SaleInvoicePayload carries a finalized sale invoice.
type SaleInvoicePayload struct {
	InvoiceID     string          `json:"invoiceID" binding:"required"`
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	InvoiceDate   time.Time       `json:"invoiceDate" binding:"required"`
	CustomerName  string          `json:"customerName"`
	CustomerState string          `json:"customerState"`
	TaxableValue  decimal.Decimal `json:"taxableValue" binding:"required"`
	GSTRate       decimal.Decimal `json:"gstRate"`
	Paid          bool            `json:"paid"`
	AccountID     string          `json:"accountID"`
}

// PurchaseBillPayload carries an approved purchase bill. ItemID and Quantity
// are set when the bill stocks inventory; a zero quantity means a pure
// expense bill.
type PurchaseBillPayload struct {
	BillID       string          `json:"billID" binding:"required"`
	BillNumber   string          `json:"billNumber" binding:"required"`
	BillDate     time.Time       `json:"billDate" binding:"required"`
	VendorName   string          `json:"vendorName"`
	VendorState  string          `json:"vendorState"`
	TaxableValue decimal.Decimal `json:"taxableValue" binding:"required"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	Paid         bool            `json:"paid"`
	AccountID    string          `json:"accountID"`
	ItemID       string          `json:"itemID"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// SalesReturnPayload carries an approved sales return against an invoice.
type SalesReturnPayload struct {
	ReturnID       string              `json:"returnID" binding:"required"`
	ReturnNumber   string              `json:"returnNumber" binding:"required"`
	ReturnDate     time.Time           `json:"returnDate" binding:"required"`
	InvoiceID      string              `json:"invoiceID" binding:"required"`
	ReturnedGross  decimal.Decimal     `json:"returnedGross" binding:"required"`
	RestockedItems []RestockItemPayload `json:"restockedItems"`
}

// RestockItemPayload is one returned item going back into stock.
type RestockItemPayload struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// RefundPaymentPayload carries the money leg of a cash/bank refund.
type RefundPaymentPayload struct {
	ReturnID     string               `json:"returnID" binding:"required"`
	ReturnNumber string               `json:"returnNumber" binding:"required"`
	RefundDate   time.Time            `json:"refundDate" binding:"required"`
	RefundMethod domain.PaymentMethod `json:"refundMethod" binding:"required,oneof=cash bank"`
	Amount       decimal.Decimal      `json:"amount" binding:"required"`
	AccountID    string               `json:"accountID" binding:"required"`
	CustomerName string               `json:"customerName"`
}

// CommissionPayload serves both standalone commission expenses and their
// proportional reversals. ReturnedAmount and ReturnID are set only for a
// reversal.
type CommissionPayload struct {
	CommissionID   string          `json:"commissionID" binding:"required"`
	InvoiceID      string          `json:"invoiceID" binding:"required"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	AgentName      string          `json:"agentName" binding:"required"`
	EventDate      time.Time       `json:"eventDate" binding:"required"`
	InvoiceAmount  decimal.Decimal `json:"invoiceAmount" binding:"required"`
	Percentage     decimal.Decimal `json:"percentage" binding:"required"`
	Paid           bool            `json:"paid"`
	AccountID      string          `json:"accountID"`
	ReturnedAmount decimal.Decimal `json:"returnedAmount"`
	ReturnID       string          `json:"returnID"`
}

// PayrollRunPayload carries one payroll run with per-employee slips.
type PayrollRunPayload struct {
	RunID     string               `json:"runID" binding:"required"`
	RunNumber string               `json:"runNumber" binding:"required"`
	PayDate   time.Time            `json:"payDate" binding:"required"`
	AccountID string               `json:"accountID" binding:"required"`
	Items     []PayrollItemPayload `json:"items" binding:"required,min=1,dive"`
}

// PayrollItemPayload is one employee's slip.
type PayrollItemPayload struct {
	EmployeeID   string          `json:"employeeID" binding:"required"`
	EmployeeName string          `json:"employeeName" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// OpeningBalancePayload seeds an asset with its equity counterpart.
type OpeningBalancePayload struct {
	OpeningID   string                    `json:"openingID" binding:"required"`
	AsOfDate    time.Time                 `json:"asOfDate" binding:"required"`
	Kind        domain.OpeningBalanceKind `json:"kind" binding:"required,oneof=cash bank inventory"`
	Amount      decimal.Decimal           `json:"amount" binding:"required"`
	AccountID   string                    `json:"accountID"`
	Description string                    `json:"description"`
}

// InventoryCOGSPayload carries the cost-of-goods leg for an invoice's items.
type InventoryCOGSPayload struct {
	InvoiceID     string            `json:"invoiceID" binding:"required"`
	InvoiceNumber string            `json:"invoiceNumber"`
	InvoiceDate   time.Time         `json:"invoiceDate" binding:"required"`
	Items         []SoldItemPayload `json:"items" binding:"required,min=1,dive"`
}

// SoldItemPayload is one invoice item to be costed against stock batches.
type SoldItemPayload struct {
	ItemID   string          `json:"itemID" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ToSaleInvoiceDoc converts the payload to its domain document.
func (p *SaleInvoicePayload) ToSaleInvoiceDoc() domain.SaleInvoiceDoc {
	return domain.SaleInvoiceDoc{
		InvoiceID:     p.InvoiceID,
		InvoiceNumber: p.InvoiceNumber,
		InvoiceDate:   p.InvoiceDate,
		CustomerName:  p.CustomerName,
		CustomerState: p.CustomerState,
		TaxableValue:  p.TaxableValue,
		GSTRate:       p.GSTRate,
		Paid:          p.Paid,
		AccountID:     p.AccountID,
	}
}

// ToPurchaseBillDoc converts the payload to its domain document.
func (p *PurchaseBillPayload) ToPurchaseBillDoc() domain.PurchaseBillDoc {
	return domain.PurchaseBillDoc{
		BillID:       p.BillID,
		BillNumber:   p.BillNumber,
		BillDate:     p.BillDate,
		VendorName:   p.VendorName,
		VendorState:  p.VendorState,
		TaxableValue: p.TaxableValue,
		GSTRate:      p.GSTRate,
		Paid:         p.Paid,
		AccountID:    p.AccountID,
		ItemID:       p.ItemID,
		Quantity:     p.Quantity,
	}
}

// ToSalesReturnDoc converts the payload to its domain document.
func (p *SalesReturnPayload) ToSalesReturnDoc() domain.SalesReturnDoc {
	items := make([]domain.RestockItem, len(p.RestockedItems))
	for i, it := range p.RestockedItems {
		items[i] = domain.RestockItem{ItemID: it.ItemID, Quantity: it.Quantity}
	}
	return domain.SalesReturnDoc{
		ReturnID:       p.ReturnID,
		ReturnNumber:   p.ReturnNumber,
		ReturnDate:     p.ReturnDate,
		InvoiceID:      p.InvoiceID,
		ReturnedGross:  p.ReturnedGross,
		RestockedItems: items,
	}
}

// ToRefundPaymentDoc converts the payload to its domain document.
func (p *RefundPaymentPayload) ToRefundPaymentDoc() domain.RefundPaymentDoc {
	return domain.RefundPaymentDoc{
		ReturnID:     p.ReturnID,
		ReturnNumber: p.ReturnNumber,
		RefundDate:   p.RefundDate,
		RefundMethod: p.RefundMethod,
		Amount:       p.Amount,
		AccountID:    p.AccountID,
		CustomerName: p.CustomerName,
	}
}

// ToCommissionDoc converts the payload to its domain document.
func (p *CommissionPayload) ToCommissionDoc() domain.CommissionDoc {
	return domain.CommissionDoc{
		CommissionID:   p.CommissionID,
		InvoiceID:      p.InvoiceID,
		InvoiceNumber:  p.InvoiceNumber,
		AgentName:      p.AgentName,
		EventDate:      p.EventDate,
		InvoiceAmount:  p.InvoiceAmount,
		Percentage:     p.Percentage,
		Paid:           p.Paid,
		AccountID:      p.AccountID,
		ReturnedAmount: p.ReturnedAmount,
		ReturnID:       p.ReturnID,
	}
}

// ToPayrollRunDoc converts the payload to its domain document.
func (p *PayrollRunPayload) ToPayrollRunDoc() domain.PayrollRunDoc {
	items := make([]domain.PayrollItem, len(p.Items))
	for i, it := range p.Items {
		items[i] = domain.PayrollItem{
			EmployeeID:   it.EmployeeID,
			EmployeeName: it.EmployeeName,
			Amount:       it.Amount,
		}
	}
	return domain.PayrollRunDoc{
		RunID:     p.RunID,
		RunNumber: p.RunNumber,
		PayDate:   p.PayDate,
		AccountID: p.AccountID,
		Items:     items,
	}
}

// ToOpeningBalanceDoc converts the payload to its domain document.
func (p *OpeningBalancePayload) ToOpeningBalanceDoc() domain.OpeningBalanceDoc {
	return domain.OpeningBalanceDoc{
		OpeningID:   p.OpeningID,
		AsOfDate:    p.AsOfDate,
		Kind:        p.Kind,
		Amount:      p.Amount,
		AccountID:   p.AccountID,
		Description: p.Description,
	}
}

// ToInventoryCOGSDoc converts the payload to its domain document.
func (p *InventoryCOGSPayload) ToInventoryCOGSDoc() domain.InventoryCOGSDoc {
	items := make([]domain.SoldItem, len(p.Items))
	for i, it := range p.Items {
		items[i] = domain.SoldItem{ItemID: it.ItemID, Quantity: it.Quantity}
	}
	return domain.InventoryCOGSDoc{
		InvoiceID:     p.InvoiceID,
		InvoiceNumber: p.InvoiceNumber,
		InvoiceDate:   p.InvoiceDate,
		Items:         items,
	}
}
