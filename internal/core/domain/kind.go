package domain

import "fmt"

// TransactionKind is the closed set of ledger line classifications. Every
// line belongs to exactly one kind and every kind maps to exactly one report
// bucket; the mapping is exhaustive so a new kind cannot silently drop out of
// the trial balance.
type TransactionKind string

const (
	// Sale invoice legs.
	KindSalesIncome        TransactionKind = "sales_income"
	KindAccountsReceivable TransactionKind = "accounts_receivable"
	KindInvoicePayment     TransactionKind = "invoice_payment"
	KindGSTPayableCGST     TransactionKind = "gst_payable_cgst"
	KindGSTPayableSGST     TransactionKind = "gst_payable_sgst"
	KindGSTPayableIGST     TransactionKind = "gst_payable_igst"

	// Purchase bill legs.
	KindInventoryValue         TransactionKind = "inventory_value"
	KindInputTaxCredit         TransactionKind = "input_tax_credit"
	KindAccountsPayable        TransactionKind = "accounts_payable"
	KindAccountsPayablePayment TransactionKind = "accounts_payable_payment"

	// Sales return and refund legs.
	KindSalesReturn   TransactionKind = "sales_return"
	KindGSTReturnCGST TransactionKind = "gst_return_cgst"
	KindGSTReturnSGST TransactionKind = "gst_return_sgst"
	KindGSTReturnIGST TransactionKind = "gst_return_igst"
	KindRefundPayment TransactionKind = "refund_payment"

	// Inventory valuation legs.
	KindCOGS         TransactionKind = "cogs"
	KindCOGSReversal TransactionKind = "cogs_reversal"

	// Commission legs.
	KindCommissionExpense  TransactionKind = "commission_expense"
	KindCommissionReversal TransactionKind = "commission_reversal"
	KindCommissionPayable  TransactionKind = "commission_payable"
	KindCommissionPayment  TransactionKind = "commission_payment"

	// Payroll legs.
	KindSalaryExpense TransactionKind = "salary_expense"
	KindSalaryPayment TransactionKind = "salary_payment"

	// Miscellaneous operating expense leg.
	KindOperatingExpense TransactionKind = "operating_expense"

	// Opening balances. Each asset line is paired with its equity counterpart
	// in the same batch, never created alone.
	KindOpeningBalanceCash            TransactionKind = "opening_balance_cash"
	KindOpeningBalanceInventoryAsset  TransactionKind = "opening_balance_inventory_asset"
	KindOpeningBalanceEquity          TransactionKind = "opening_balance_equity"
	KindOpeningBalanceInventoryEquity TransactionKind = "opening_balance_inventory_equity"

	// KindRoundingAdjustment is the single equity-side line the reconciler may
	// append when the global invariant drifts within tolerance. It is the only
	// kind written outside a document posting rule.
	KindRoundingAdjustment TransactionKind = "rounding_adjustment"
)

// AllTransactionKinds lists every member of the closed set, in reporting
// order. The bucket mapping test iterates this to prove exhaustiveness.
var AllTransactionKinds = []TransactionKind{
	KindSalesIncome,
	KindAccountsReceivable,
	KindInvoicePayment,
	KindGSTPayableCGST,
	KindGSTPayableSGST,
	KindGSTPayableIGST,
	KindInventoryValue,
	KindInputTaxCredit,
	KindAccountsPayable,
	KindAccountsPayablePayment,
	KindSalesReturn,
	KindGSTReturnCGST,
	KindGSTReturnSGST,
	KindGSTReturnIGST,
	KindRefundPayment,
	KindCOGS,
	KindCOGSReversal,
	KindCommissionExpense,
	KindCommissionReversal,
	KindCommissionPayable,
	KindCommissionPayment,
	KindSalaryExpense,
	KindSalaryPayment,
	KindOperatingExpense,
	KindOpeningBalanceCash,
	KindOpeningBalanceInventoryAsset,
	KindOpeningBalanceEquity,
	KindOpeningBalanceInventoryEquity,
	KindRoundingAdjustment,
}

// ReportBucket is a named aggregate in the trial balance.
type ReportBucket string

const (
	BucketCashBank      ReportBucket = "Cash/Bank"
	BucketReceivables   ReportBucket = "Receivables"
	BucketInventory     ReportBucket = "Inventory"
	BucketPayables      ReportBucket = "Payables"
	BucketEquity        ReportBucket = "Equity"
	BucketIncome        ReportBucket = "Income"
	BucketExpense       ReportBucket = "Expense"
	BucketTaxPayable    ReportBucket = "Tax Payable"
	BucketTaxReceivable ReportBucket = "Tax Receivable"
)

// ReportBuckets lists the buckets in trial balance display order.
var ReportBuckets = []ReportBucket{
	BucketCashBank,
	BucketReceivables,
	BucketInventory,
	BucketPayables,
	BucketEquity,
	BucketIncome,
	BucketExpense,
	BucketTaxPayable,
	BucketTaxReceivable,
}

// BucketFor maps a transaction kind to its trial balance bucket. The switch is
// exhaustive over the closed set; an unknown kind is an error, never a silent
// omission.
func BucketFor(kind TransactionKind) (ReportBucket, error) {
	switch kind {
	case KindInvoicePayment, KindRefundPayment, KindAccountsPayablePayment,
		KindSalaryPayment, KindCommissionPayment, KindOpeningBalanceCash:
		return BucketCashBank, nil
	case KindAccountsReceivable:
		return BucketReceivables, nil
	case KindInventoryValue, KindOpeningBalanceInventoryAsset:
		return BucketInventory, nil
	case KindAccountsPayable, KindCommissionPayable:
		return BucketPayables, nil
	case KindOpeningBalanceEquity, KindOpeningBalanceInventoryEquity, KindRoundingAdjustment:
		return BucketEquity, nil
	case KindSalesIncome, KindSalesReturn:
		return BucketIncome, nil
	case KindCOGS, KindCOGSReversal, KindCommissionExpense, KindCommissionReversal,
		KindSalaryExpense, KindOperatingExpense:
		return BucketExpense, nil
	case KindGSTPayableCGST, KindGSTPayableSGST, KindGSTPayableIGST,
		KindGSTReturnCGST, KindGSTReturnSGST, KindGSTReturnIGST:
		return BucketTaxPayable, nil
	case KindInputTaxCredit:
		return BucketTaxReceivable, nil
	}
	return "", fmt.Errorf("unrecognized transaction kind %q", kind)
}

// IsValid reports whether kind is a member of the closed set.
func (k TransactionKind) IsValid() bool {
	_, err := BucketFor(k)
	return err == nil
}
