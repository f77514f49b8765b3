package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind identifies which posting rule produced a batch. Together with
// the document reference it forms the idempotency key: one committed batch per
// (tenant, reference_type, reference_id, document_kind).
type DocumentKind string

const (
	DocSaleInvoice        DocumentKind = "sale_invoice"
	DocPurchaseBill       DocumentKind = "purchase_bill"
	DocSalesReturn        DocumentKind = "sales_return"
	DocRefundPayment      DocumentKind = "refund_payment"
	DocCommissionExpense  DocumentKind = "commission_expense"
	DocCommissionReversal DocumentKind = "commission_reversal"
	DocPayrollRun         DocumentKind = "payroll_run"
	DocOpeningBalance     DocumentKind = "opening_balance"
	DocInventoryCOGS      DocumentKind = "inventory_cogs"
	DocCOGSReversal       DocumentKind = "cogs_reversal"
)

// PaymentMethod is how money moved for a paid document.
type PaymentMethod string

const (
	PaymentOnCredit PaymentMethod = "credit" // No money moved yet
	PaymentCash     PaymentMethod = "cash"
	PaymentBank     PaymentMethod = "bank"
)

// SaleInvoiceDoc is the payload a finalized sale invoice posts with.
type SaleInvoiceDoc struct {
	InvoiceID     string
	InvoiceNumber string
	InvoiceDate   time.Time
	CustomerName  string
	CustomerState string
	TaxableValue  decimal.Decimal
	GSTRate       decimal.Decimal // 0 for a non-GST (kaccha) invoice
	Paid          bool
	AccountID     string // Receiving bank/cash account; required when Paid
}

// PurchaseBillDoc is the payload an approved purchase bill posts with.
type PurchaseBillDoc struct {
	BillID       string
	BillNumber   string
	BillDate     time.Time
	VendorName   string
	VendorState  string
	TaxableValue decimal.Decimal
	GSTRate      decimal.Decimal // 0 when the bill carries no GST; no ITC then
	Paid         bool
	AccountID    string // Paying bank/cash account; required when Paid
	// Stock batch creation input; quantity zero means a pure expense bill.
	ItemID   string
	Quantity decimal.Decimal
}

// SalesReturnDoc is the payload an approved sales return posts with. Tax legs
// are derived proportionally from the original invoice's posted lines, so the
// original invoice reference is mandatory.
type SalesReturnDoc struct {
	ReturnID       string
	ReturnNumber   string
	ReturnDate     time.Time
	InvoiceID      string          // Original sale invoice reference
	ReturnedGross  decimal.Decimal // Gross amount returned, tax inclusive
	RestockedItems []RestockItem   // Items going back to stock; drives COGS reversal
}

// RestockItem is one returned item going back on the shelf.
type RestockItem struct {
	ItemID   string
	Quantity decimal.Decimal
}

// RefundPaymentDoc posts the money leg of a return refunded via cash/bank.
// The posting engine requires it whenever the refund method is cash or bank;
// its absence was the single most common defect in the system this replaces.
type RefundPaymentDoc struct {
	ReturnID     string
	ReturnNumber string
	RefundDate   time.Time
	RefundMethod PaymentMethod // cash or bank; credit notes post no refund batch
	Amount       decimal.Decimal
	AccountID    string
	CustomerName string
}

// CommissionDoc posts a commission expense for an agent on an invoice, or its
// proportional reversal when the invoice is partially or fully returned.
// Commission is always computed against the original invoice amount.
type CommissionDoc struct {
	CommissionID  string
	InvoiceID     string
	InvoiceNumber string
	AgentName     string
	EventDate     time.Time
	InvoiceAmount decimal.Decimal
	Percentage    decimal.Decimal
	Paid          bool   // Paid now vs accrued to Commission Payable
	AccountID     string // Required when Paid
	// Reversal input: portion of the invoice returned, zero for an expense.
	ReturnedAmount decimal.Decimal
	ReturnID       string
}

// PayrollRunDoc posts one batch per payroll run with one salary expense line
// per employee for audit granularity.
type PayrollRunDoc struct {
	RunID     string
	RunNumber string
	PayDate   time.Time
	AccountID string
	Items     []PayrollItem
}

// PayrollItem is one employee's slip within a payroll run.
type PayrollItem struct {
	EmployeeID   string
	EmployeeName string
	Amount       decimal.Decimal
}

// OpeningBalanceKind selects which asset an opening balance seeds.
type OpeningBalanceKind string

const (
	OpeningCash      OpeningBalanceKind = "cash"
	OpeningBank      OpeningBalanceKind = "bank"
	OpeningInventory OpeningBalanceKind = "inventory"
)

// OpeningBalanceDoc seeds an asset with its matching owner's-equity
// counterpart. The rule emits exactly one equity line per asset line.
type OpeningBalanceDoc struct {
	OpeningID   string
	AsOfDate    time.Time
	Kind        OpeningBalanceKind
	Amount      decimal.Decimal
	AccountID   string // Required for cash/bank openings
	Description string
}

// InventoryCOGSDoc posts the cost-of-goods leg for an invoice's items, costed
// by FIFO batch allocation.
type InventoryCOGSDoc struct {
	InvoiceID     string
	InvoiceNumber string
	InvoiceDate   time.Time
	Items         []SoldItem
}

// SoldItem is one invoice item to be costed against stock batches.
type SoldItem struct {
	ItemID   string
	Quantity decimal.Decimal
}
