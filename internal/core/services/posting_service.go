package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bahikhata/retail_ledger/internal/apperrors"
	"github.com/bahikhata/retail_ledger/internal/core/domain"
	portsrepo "github.com/bahikhata/retail_ledger/internal/core/ports/repositories"
	portssvc "github.com/bahikhata/retail_ledger/internal/core/ports/services"
	"github.com/bahikhata/retail_ledger/internal/dto"
	"github.com/bahikhata/retail_ledger/internal/utils/accounting"
	"github.com/bahikhata/retail_ledger/internal/utils/gst"
	"github.com/bahikhata/retail_ledger/pkg/cache"
)

// Reference types tie ledger lines back to the source document tables of the
// upstream billing system. They are opaque labels here; no posting ever reads
// a source table.
const (
	refTypeInvoice        = "invoice"
	refTypePurchaseBill   = "purchase_bill"
	refTypeSalesReturn    = "sales_return"
	refTypeRefund         = "refund"
	refTypeCommission     = "commission"
	refTypePayrollRun     = "payroll_run"
	refTypeOpeningBalance = "opening_balance"
)

// postingService turns business documents into balanced ledger batches. Each
// document kind has exactly one rule; the rules are the only place ledger
// lines are ever constructed.
type postingService struct {
	BaseService
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	docStatusRepo   portsrepo.DocumentStatusReader
	discrepancyRepo portsrepo.DiscrepancyRepositoryFacade
	inventory       portssvc.InventorySvc
	reportCache     *cache.TrialBalanceCache
	tolerance       decimal.Decimal
	companyState    string
}

// NewPostingService creates the posting engine. tolerance is the maximum
// absolute rounding drift auto-absorbed per posting; companyState decides
// intrastate vs interstate GST treatment.
func NewPostingService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	docStatusRepo portsrepo.DocumentStatusReader,
	discrepancyRepo portsrepo.DiscrepancyRepositoryFacade,
	inventory portssvc.InventorySvc,
	reportCache *cache.TrialBalanceCache,
	tolerance decimal.Decimal,
	companyState string,
) portssvc.PostingSvcFacade {
	return &postingService{
		ledgerRepo:      ledgerRepo,
		docStatusRepo:   docStatusRepo,
		discrepancyRepo: discrepancyRepo,
		inventory:       inventory,
		reportCache:     reportCache,
		tolerance:       tolerance,
		companyState:    companyState,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostDocument dispatches to the rule for the request's document kind and
// appends the resulting batch.
func (s *postingService) PostDocument(ctx context.Context, tenantID string, req dto.CreatePostingRequest, creatorID string) (*domain.PostingBatch, error) {
	var (
		batch *domain.PostingBatch
		err   error
	)
	switch req.DocumentKind {
	case domain.DocSaleInvoice:
		if req.SaleInvoice == nil {
			return nil, missingPayloadErr(req.DocumentKind)
		}
		batch, err = s.postSaleInvoice(ctx, tenantID, req.SaleInvoice.ToSaleInvoiceDoc(), creatorID)
	case domain.DocPurchaseBill:
		if req.PurchaseBill == nil {
			return nil, missingPayloadErr(req.DocumentKind)
		}
		batch, err = s.postPurchaseBill(ctx, tenantID, req.PurchaseBill.ToPurchaseBillDoc(), creatorID)
	case domain.DocSalesReturn:
		if req.SalesReturn == nil {
			return nil, missingPayloadErr(req.DocumentKind)
		}
		batch, err = s.postSalesReturn(ctx, tenantID, req.SalesReturn.ToSalesReturnDoc(), creatorID)
	case domain.DocRefundPayment:
		if req.RefundPayment == nil {
			return nil, missingPayloadErr(req.DocumentKind)
		}
		batch, err = s.postRefundPayment(ctx, tenantID, req.RefundPayment.ToRefundPaymentDoc(), creatorID)
	case domain.DocCommissionExpense:
		if req.Commission == nil {
			return nil, missingPayloadErr(req.DocumentKind)
		}
		batch, err = s.postCommissionExpense(ctx, tenantID, req.Commission.ToCommissionDoc(), creatorID)
	case domain.DocCommissionReversal:
		if req.Commission == nil {
			return nil, missingPayloadErr(req.DocumentKind)
		}
		batch, err = s.postCommissionReversal(ctx, tenantID, req.Commission.ToCommissionDoc(), creatorID)
	case domain.DocPayrollRun:
		if req.PayrollRun == nil {
			return nil, missingPayloadErr(req.DocumentKind)
		}
		batch, err = s.postPayrollRun(ctx, tenantID, req.PayrollRun.ToPayrollRunDoc(), creatorID)
	case domain.DocOpeningBalance:
		if req.OpeningBalance == nil {
			return nil, missingPayloadErr(req.DocumentKind)
		}
		batch, err = s.postOpeningBalance(ctx, tenantID, req.OpeningBalance.ToOpeningBalanceDoc(), creatorID)
	case domain.DocInventoryCOGS:
		if req.InventoryCOGS == nil {
			return nil, missingPayloadErr(req.DocumentKind)
		}
		batch, err = s.postInventoryCOGS(ctx, tenantID, req.InventoryCOGS.ToInventoryCOGSDoc(), creatorID)
	default:
		return nil, fmt.Errorf("%w: unsupported document kind %q", apperrors.ErrValidation, req.DocumentKind)
	}

	if err != nil {
		return nil, err
	}

	s.reportCache.Invalidate(ctx, tenantID)
	s.LogInfo(ctx, "Document posted",
		slog.String("batch_id", batch.BatchID),
		slog.String("document_kind", string(batch.DocumentKind)),
		slog.String("reference_id", batch.ReferenceID))
	return batch, nil
}

func missingPayloadErr(kind domain.DocumentKind) error {
	return fmt.Errorf("%w: missing payload for document kind %q", apperrors.ErrValidation, kind)
}

func (s *postingService) sameState(otherState string) bool {
	// An unknown counterparty state is treated as intrastate, matching how
	// retail invoices without a state code are taxed.
	return otherState == "" || otherState == s.companyState
}

func (s *postingService) newBatch(tenantID string, kind domain.DocumentKind, refType, refID, voucher, narration, creatorID string) domain.PostingBatch {
	return domain.PostingBatch{
		BatchID:       uuid.NewString(),
		TenantID:      tenantID,
		DocumentKind:  kind,
		ReferenceType: refType,
		ReferenceID:   refID,
		VoucherNumber: voucher,
		Narration:     narration,
		CreatedAt:     time.Now(),
		CreatedBy:     creatorID,
	}
}

func newLine(batch *domain.PostingBatch, date time.Time, kind domain.TransactionKind, debit, credit decimal.Decimal, accountID *string, narration string) domain.LedgerLine {
	return domain.LedgerLine{
		LineID:          uuid.NewString(),
		BatchID:         batch.BatchID,
		TenantID:        batch.TenantID,
		AccountID:       accountID,
		TransactionDate: date,
		Kind:            kind,
		DebitAmount:     debit,
		CreditAmount:    credit,
		ReferenceType:   batch.ReferenceType,
		ReferenceID:     batch.ReferenceID,
		VoucherNumber:   batch.VoucherNumber,
		Narration:       narration,
	}
}

// statusEffect builds the settlement projection a rule attaches to its batch.
// The projection may target a different document than the batch's own
// reference, e.g. a return adjusting the invoice it reverses.
func statusEffect(batch *domain.PostingBatch, refType, refID string, total, balanceDue decimal.Decimal) *domain.DocumentStatus {
	return &domain.DocumentStatus{
		TenantID:      batch.TenantID,
		ReferenceType: refType,
		ReferenceID:   refID,
		PaymentStatus: domain.PaymentStatusFor(total, balanceDue),
		BalanceDue:    balanceDue,
		UpdatedAt:     batch.CreatedAt,
		UpdatedBy:     batch.CreatedBy,
	}
}

// postSaleInvoice books income plus the GST legs. A paid invoice debits the
// receiving account directly; an unpaid one debits receivables.
func (s *postingService) postSaleInvoice(ctx context.Context, tenantID string, doc domain.SaleInvoiceDoc, creatorID string) (*domain.PostingBatch, error) {
	if !doc.TaxableValue.IsPositive() {
		return nil, fmt.Errorf("%w: invoice %s taxable value must be positive", apperrors.ErrValidation, doc.InvoiceID)
	}
	split, err := gst.Calculate(doc.TaxableValue, doc.GSTRate, s.sameState(doc.CustomerState))
	if err != nil {
		return nil, err
	}
	gross := doc.TaxableValue.Add(split.Total())

	batch := s.newBatch(tenantID, domain.DocSaleInvoice, refTypeInvoice, doc.InvoiceID, doc.InvoiceNumber,
		fmt.Sprintf("Sale to %s", doc.CustomerName), creatorID)

	if doc.Paid {
		if doc.AccountID == "" {
			return nil, fmt.Errorf("%w: paid invoice %s requires a receiving account", apperrors.ErrValidation, doc.InvoiceID)
		}
		accID := doc.AccountID
		batch.Lines = append(batch.Lines, newLine(&batch, doc.InvoiceDate, domain.KindInvoicePayment,
			gross, decimal.Zero, &accID, "Payment received against "+doc.InvoiceNumber))
	} else {
		batch.Lines = append(batch.Lines, newLine(&batch, doc.InvoiceDate, domain.KindAccountsReceivable,
			gross, decimal.Zero, nil, "Receivable from "+doc.CustomerName))
	}

	batch.Lines = append(batch.Lines, newLine(&batch, doc.InvoiceDate, domain.KindSalesIncome,
		decimal.Zero, doc.TaxableValue, nil, "Sales income"))

	if split.CGST.IsPositive() {
		batch.Lines = append(batch.Lines,
			newLine(&batch, doc.InvoiceDate, domain.KindGSTPayableCGST, decimal.Zero, split.CGST, nil, "CGST output tax"),
			newLine(&batch, doc.InvoiceDate, domain.KindGSTPayableSGST, decimal.Zero, split.SGST, nil, "SGST output tax"))
	}
	if split.IGST.IsPositive() {
		batch.Lines = append(batch.Lines,
			newLine(&batch, doc.InvoiceDate, domain.KindGSTPayableIGST, decimal.Zero, split.IGST, nil, "IGST output tax"))
	}

	due := gross
	if doc.Paid {
		due = decimal.Zero
	}
	batch.StatusEffect = statusEffect(&batch, refTypeInvoice, doc.InvoiceID, gross, due)

	return s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance)
}

// postPurchaseBill books inventory (or expense) plus input tax credit, then
// creates the FIFO stock batch for stockable purchases.
func (s *postingService) postPurchaseBill(ctx context.Context, tenantID string, doc domain.PurchaseBillDoc, creatorID string) (*domain.PostingBatch, error) {
	if !doc.TaxableValue.IsPositive() {
		return nil, fmt.Errorf("%w: bill %s taxable value must be positive", apperrors.ErrValidation, doc.BillID)
	}
	split, err := gst.Calculate(doc.TaxableValue, doc.GSTRate, s.sameState(doc.VendorState))
	if err != nil {
		return nil, err
	}
	taxTotal := split.Total()
	gross := doc.TaxableValue.Add(taxTotal)

	batch := s.newBatch(tenantID, domain.DocPurchaseBill, refTypePurchaseBill, doc.BillID, doc.BillNumber,
		fmt.Sprintf("Purchase from %s", doc.VendorName), creatorID)

	stockable := doc.ItemID != "" && doc.Quantity.IsPositive()
	valueKind := domain.KindOperatingExpense
	valueNarration := "Operating expense"
	if stockable {
		valueKind = domain.KindInventoryValue
		valueNarration = "Inventory purchased"
	}
	batch.Lines = append(batch.Lines, newLine(&batch, doc.BillDate, valueKind,
		doc.TaxableValue, decimal.Zero, nil, valueNarration))

	if taxTotal.IsPositive() {
		batch.Lines = append(batch.Lines, newLine(&batch, doc.BillDate, domain.KindInputTaxCredit,
			taxTotal, decimal.Zero, nil, "Input tax credit on "+doc.BillNumber))
	}

	if doc.Paid {
		if doc.AccountID == "" {
			return nil, fmt.Errorf("%w: paid bill %s requires a paying account", apperrors.ErrValidation, doc.BillID)
		}
		accID := doc.AccountID
		batch.Lines = append(batch.Lines, newLine(&batch, doc.BillDate, domain.KindAccountsPayablePayment,
			decimal.Zero, gross, &accID, "Payment to "+doc.VendorName))
	} else {
		batch.Lines = append(batch.Lines, newLine(&batch, doc.BillDate, domain.KindAccountsPayable,
			decimal.Zero, gross, nil, "Payable to "+doc.VendorName))
	}

	due := gross
	if doc.Paid {
		due = decimal.Zero
	}
	batch.StatusEffect = statusEffect(&batch, refTypePurchaseBill, doc.BillID, gross, due)

	posted, err := s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance)
	if err != nil {
		return nil, err
	}

	if stockable {
		gstPerUnit := decimal.Zero
		if taxTotal.IsPositive() {
			gstPerUnit = accounting.RoundCurrency(taxTotal.Div(doc.Quantity))
		}
		if _, err := s.inventory.RecordPurchase(ctx, tenantID, doc, gstPerUnit, creatorID); err != nil {
			// The ledger batch is already committed, so the inventory value is
			// booked without a stock batch behind it. Put the gap on the
			// reconciliation worklist rather than unwind the posting.
			s.LogError(ctx, err, "Posted bill but failed to create stock batch", slog.String("bill_id", doc.BillID))
			s.recordStockDiscrepancy(ctx, tenantID, posted.BatchID, doc.TaxableValue, creatorID)
		}
	}
	return posted, nil
}

// postSalesReturn reverses a slice of the original invoice, deriving tax legs
// proportionally from what that invoice actually posted rather than
// recomputing GST from scratch.
func (s *postingService) postSalesReturn(ctx context.Context, tenantID string, doc domain.SalesReturnDoc, creatorID string) (*domain.PostingBatch, error) {
	if !doc.ReturnedGross.IsPositive() {
		return nil, fmt.Errorf("%w: return %s gross must be positive", apperrors.ErrValidation, doc.ReturnID)
	}

	// Net what the invoice actually posted per kind rather than recomputing
	// GST from scratch; the aggregates also absorb any partial reversals
	// already booked against the invoice.
	var origTaxable, origCGST, origSGST, origIGST decimal.Decimal
	for _, sum := range []struct {
		kind domain.TransactionKind
		into *decimal.Decimal
	}{
		{domain.KindSalesIncome, &origTaxable},
		{domain.KindGSTPayableCGST, &origCGST},
		{domain.KindGSTPayableSGST, &origSGST},
		{domain.KindGSTPayableIGST, &origIGST},
	} {
		total, err := s.ledgerRepo.SumForKind(ctx, tenantID, refTypeInvoice, doc.InvoiceID, sum.kind)
		if err != nil {
			return nil, err
		}
		*sum.into = total
	}
	origGross := origTaxable.Add(origCGST).Add(origSGST).Add(origIGST)
	if !origGross.IsPositive() {
		return nil, fmt.Errorf("%w: invoice %s has no posted lines to return against", apperrors.ErrValidation, doc.InvoiceID)
	}
	if doc.ReturnedGross.GreaterThan(origGross) {
		return nil, fmt.Errorf("%w: return %s exceeds invoice %s gross %s",
			apperrors.ErrValidation, doc.ReturnID, doc.InvoiceID, origGross.String())
	}

	retCGST := accounting.ProportionOf(origCGST, doc.ReturnedGross, origGross)
	retSGST := accounting.ProportionOf(origSGST, doc.ReturnedGross, origGross)
	retIGST := accounting.ProportionOf(origIGST, doc.ReturnedGross, origGross)
	retTaxable := doc.ReturnedGross.Sub(retCGST).Sub(retSGST).Sub(retIGST)

	batch := s.newBatch(tenantID, domain.DocSalesReturn, refTypeSalesReturn, doc.ReturnID, doc.ReturnNumber,
		fmt.Sprintf("Return against invoice %s", doc.InvoiceID), creatorID)

	if retTaxable.IsPositive() {
		batch.Lines = append(batch.Lines, newLine(&batch, doc.ReturnDate, domain.KindSalesReturn,
			retTaxable, decimal.Zero, nil, "Sales return"))
	}
	if retCGST.IsPositive() {
		batch.Lines = append(batch.Lines,
			newLine(&batch, doc.ReturnDate, domain.KindGSTReturnCGST, retCGST, decimal.Zero, nil, "CGST reversed on return"))
	}
	if retSGST.IsPositive() {
		batch.Lines = append(batch.Lines,
			newLine(&batch, doc.ReturnDate, domain.KindGSTReturnSGST, retSGST, decimal.Zero, nil, "SGST reversed on return"))
	}
	if retIGST.IsPositive() {
		batch.Lines = append(batch.Lines,
			newLine(&batch, doc.ReturnDate, domain.KindGSTReturnIGST, retIGST, decimal.Zero, nil, "IGST reversed on return"))
	}
	batch.Lines = append(batch.Lines, newLine(&batch, doc.ReturnDate, domain.KindAccountsReceivable,
		decimal.Zero, doc.ReturnedGross, nil, "Credit owed to customer"))

	// The returned portion no longer falls due on the invoice; lower its
	// outstanding balance along with the reversal.
	current, err := s.docStatusRepo.FindDocumentStatus(ctx, tenantID, refTypeInvoice, doc.InvoiceID)
	switch {
	case err == nil:
		newDue := current.BalanceDue.Sub(doc.ReturnedGross)
		if newDue.IsNegative() {
			newDue = decimal.Zero
		}
		batch.StatusEffect = statusEffect(&batch, refTypeInvoice, doc.InvoiceID, origGross, newDue)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	posted, err := s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance)
	if err != nil {
		return nil, err
	}

	// Restocked items reverse their cost-of-goods in a companion batch keyed
	// to the same return, so replays cannot double-restock.
	if len(doc.RestockedItems) > 0 {
		if restocked, err := s.postCOGSReversal(ctx, tenantID, doc, creatorID); err != nil {
			// Whatever made it back into stock has no ledger leg yet; record
			// the gap so reconciliation surfaces it.
			s.LogError(ctx, err, "Posted return but failed COGS reversal", slog.String("return_id", doc.ReturnID))
			s.recordStockDiscrepancy(ctx, tenantID, posted.BatchID, restocked, creatorID)
		}
	}
	return posted, nil
}

// postCOGSReversal restocks the returned items and books the cost reversal.
// The returned amount is the cost already back in stock when an error occurs,
// which is the size of the ledger-vs-stock gap the caller records.
func (s *postingService) postCOGSReversal(ctx context.Context, tenantID string, doc domain.SalesReturnDoc, creatorID string) (decimal.Decimal, error) {
	totalCost := decimal.Zero
	for _, item := range doc.RestockedItems {
		cost, err := s.inventory.Restock(ctx, tenantID, item.ItemID, item.Quantity, creatorID)
		if err != nil {
			return totalCost, err
		}
		totalCost = totalCost.Add(cost)
	}
	if !totalCost.IsPositive() {
		return decimal.Zero, nil
	}

	batch := s.newBatch(tenantID, domain.DocCOGSReversal, refTypeSalesReturn, doc.ReturnID, doc.ReturnNumber,
		"Cost reversal for restocked return", creatorID)
	batch.Lines = append(batch.Lines,
		newLine(&batch, doc.ReturnDate, domain.KindInventoryValue, totalCost, decimal.Zero, nil, "Inventory restocked"),
		newLine(&batch, doc.ReturnDate, domain.KindCOGSReversal, decimal.Zero, totalCost, nil, "COGS reversed"))

	if _, err := s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance); err != nil {
		return totalCost, err
	}
	return totalCost, nil
}

// recordStockDiscrepancy leaves an open discrepancy when a stock side effect
// of an already committed posting fails. difference is the booked value the
// stock subledger does not (or no longer does) back.
func (s *postingService) recordStockDiscrepancy(ctx context.Context, tenantID string, batchID string, difference decimal.Decimal, createdBy string) {
	now := time.Now()
	if err := s.discrepancyRepo.SaveDiscrepancy(ctx, domain.Discrepancy{
		DiscrepancyID: uuid.NewString(),
		TenantID:      tenantID,
		BatchID:       &batchID,
		Difference:    difference,
		Status:        domain.DiscrepancyOpen,
		DetectedAt:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}); err != nil {
		s.LogError(ctx, err, "Failed to record stock discrepancy", slog.String("batch_id", batchID))
	}
}

// postRefundPayment books the money leg of a cash/bank refund: the customer's
// credit is cleared and money leaves the account.
func (s *postingService) postRefundPayment(ctx context.Context, tenantID string, doc domain.RefundPaymentDoc, creatorID string) (*domain.PostingBatch, error) {
	if !doc.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: refund %s amount must be positive", apperrors.ErrValidation, doc.ReturnID)
	}
	if doc.RefundMethod != domain.PaymentCash && doc.RefundMethod != domain.PaymentBank {
		return nil, fmt.Errorf("%w: refund method must be cash or bank, got %q", apperrors.ErrValidation, doc.RefundMethod)
	}
	if doc.AccountID == "" {
		return nil, fmt.Errorf("%w: refund %s requires a paying account", apperrors.ErrValidation, doc.ReturnID)
	}

	batch := s.newBatch(tenantID, domain.DocRefundPayment, refTypeRefund, doc.ReturnID, doc.ReturnNumber,
		fmt.Sprintf("Refund to %s", doc.CustomerName), creatorID)
	accID := doc.AccountID
	batch.Lines = append(batch.Lines,
		newLine(&batch, doc.RefundDate, domain.KindAccountsReceivable, doc.Amount, decimal.Zero, nil, "Customer credit settled"),
		newLine(&batch, doc.RefundDate, domain.KindRefundPayment, decimal.Zero, doc.Amount, &accID, "Refund paid out"))

	return s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance)
}

// postCommissionExpense books an agent's commission, always computed on the
// original invoice amount and rounded to the whole rupee.
func (s *postingService) postCommissionExpense(ctx context.Context, tenantID string, doc domain.CommissionDoc, creatorID string) (*domain.PostingBatch, error) {
	commission := accounting.CalculateCommission(doc.InvoiceAmount, doc.Percentage)
	if !commission.IsPositive() {
		return nil, fmt.Errorf("%w: commission for %s rounds to zero", apperrors.ErrValidation, doc.CommissionID)
	}

	batch := s.newBatch(tenantID, domain.DocCommissionExpense, refTypeCommission, doc.CommissionID, doc.InvoiceNumber,
		fmt.Sprintf("Commission for %s on invoice %s", doc.AgentName, doc.InvoiceID), creatorID)

	batch.Lines = append(batch.Lines, newLine(&batch, doc.EventDate, domain.KindCommissionExpense,
		commission, decimal.Zero, nil, "Commission expense"))
	if doc.Paid {
		if doc.AccountID == "" {
			return nil, fmt.Errorf("%w: paid commission %s requires a paying account", apperrors.ErrValidation, doc.CommissionID)
		}
		accID := doc.AccountID
		batch.Lines = append(batch.Lines, newLine(&batch, doc.EventDate, domain.KindCommissionPayment,
			decimal.Zero, commission, &accID, "Commission paid to "+doc.AgentName))
	} else {
		batch.Lines = append(batch.Lines, newLine(&batch, doc.EventDate, domain.KindCommissionPayable,
			decimal.Zero, commission, nil, "Commission payable to "+doc.AgentName))
	}

	return s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance)
}

// postCommissionReversal reverses the returned slice of a commission. The
// original commission is recomputed from the invoice amount, then scaled by
// the returned portion.
func (s *postingService) postCommissionReversal(ctx context.Context, tenantID string, doc domain.CommissionDoc, creatorID string) (*domain.PostingBatch, error) {
	if !doc.ReturnedAmount.IsPositive() {
		return nil, fmt.Errorf("%w: commission reversal for %s requires a returned amount", apperrors.ErrValidation, doc.CommissionID)
	}
	if doc.ReturnedAmount.GreaterThan(doc.InvoiceAmount) {
		return nil, fmt.Errorf("%w: returned amount exceeds invoice amount for commission %s", apperrors.ErrValidation, doc.CommissionID)
	}

	commission := accounting.CalculateCommission(doc.InvoiceAmount, doc.Percentage)
	reversal := accounting.ProportionOf(commission, doc.ReturnedAmount, doc.InvoiceAmount)
	if !reversal.IsPositive() {
		return nil, fmt.Errorf("%w: commission reversal for %s rounds to zero", apperrors.ErrValidation, doc.CommissionID)
	}

	// The reversal is keyed to the return so a commission can be reversed
	// piecewise across multiple returns.
	refID := doc.CommissionID
	if doc.ReturnID != "" {
		refID = doc.CommissionID + ":" + doc.ReturnID
	}
	batch := s.newBatch(tenantID, domain.DocCommissionReversal, refTypeCommission, refID, doc.InvoiceNumber,
		fmt.Sprintf("Commission reversal for %s on return", doc.AgentName), creatorID)

	batch.Lines = append(batch.Lines,
		newLine(&batch, doc.EventDate, domain.KindCommissionPayable, reversal, decimal.Zero, nil, "Commission payable reduced"),
		newLine(&batch, doc.EventDate, domain.KindCommissionReversal, decimal.Zero, reversal, nil, "Commission expense reversed"))

	return s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance)
}

// postPayrollRun books one salary expense line per employee and a single
// credit against the paying account.
func (s *postingService) postPayrollRun(ctx context.Context, tenantID string, doc domain.PayrollRunDoc, creatorID string) (*domain.PostingBatch, error) {
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("%w: payroll run %s has no items", apperrors.ErrValidation, doc.RunID)
	}
	if doc.AccountID == "" {
		return nil, fmt.Errorf("%w: payroll run %s requires a paying account", apperrors.ErrValidation, doc.RunID)
	}

	batch := s.newBatch(tenantID, domain.DocPayrollRun, refTypePayrollRun, doc.RunID, doc.RunNumber,
		"Payroll run "+doc.RunNumber, creatorID)

	total := decimal.Zero
	for _, item := range doc.Items {
		if !item.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payroll amount for %s must be positive", apperrors.ErrValidation, item.EmployeeID)
		}
		batch.Lines = append(batch.Lines, newLine(&batch, doc.PayDate, domain.KindSalaryExpense,
			item.Amount, decimal.Zero, nil, "Salary for "+item.EmployeeName))
		total = total.Add(item.Amount)
	}
	accID := doc.AccountID
	batch.Lines = append(batch.Lines, newLine(&batch, doc.PayDate, domain.KindSalaryPayment,
		decimal.Zero, total, &accID, "Salaries paid"))

	return s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance)
}

// postOpeningBalance seeds one asset with its owner's-equity counterpart.
func (s *postingService) postOpeningBalance(ctx context.Context, tenantID string, doc domain.OpeningBalanceDoc, creatorID string) (*domain.PostingBatch, error) {
	if !doc.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: opening balance %s amount must be positive", apperrors.ErrValidation, doc.OpeningID)
	}

	batch := s.newBatch(tenantID, domain.DocOpeningBalance, refTypeOpeningBalance, doc.OpeningID, "",
		"Opening balance: "+string(doc.Kind), creatorID)

	switch doc.Kind {
	case domain.OpeningCash, domain.OpeningBank:
		if doc.AccountID == "" {
			return nil, fmt.Errorf("%w: %s opening balance requires an account", apperrors.ErrValidation, doc.Kind)
		}
		accID := doc.AccountID
		batch.Lines = append(batch.Lines,
			newLine(&batch, doc.AsOfDate, domain.KindOpeningBalanceCash, doc.Amount, decimal.Zero, &accID, doc.Description),
			newLine(&batch, doc.AsOfDate, domain.KindOpeningBalanceEquity, decimal.Zero, doc.Amount, nil, "Opening capital"))
	case domain.OpeningInventory:
		batch.Lines = append(batch.Lines,
			newLine(&batch, doc.AsOfDate, domain.KindOpeningBalanceInventoryAsset, doc.Amount, decimal.Zero, nil, doc.Description),
			newLine(&batch, doc.AsOfDate, domain.KindOpeningBalanceInventoryEquity, decimal.Zero, doc.Amount, nil, "Opening inventory capital"))
	default:
		return nil, fmt.Errorf("%w: unsupported opening balance kind %q", apperrors.ErrValidation, doc.Kind)
	}

	return s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance)
}

// postInventoryCOGS consumes stock FIFO for an invoice's items and books the
// extended cost. A failed append returns the consumed stock.
func (s *postingService) postInventoryCOGS(ctx context.Context, tenantID string, doc domain.InventoryCOGSDoc, creatorID string) (*domain.PostingBatch, error) {
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("%w: invoice %s has no items to cost", apperrors.ErrValidation, doc.InvoiceID)
	}

	// Fail fast on replays before any stock moves.
	if _, err := s.ledgerRepo.FindBatchByReference(ctx, tenantID, refTypeInvoice, doc.InvoiceID, domain.DocInventoryCOGS); err == nil {
		return nil, fmt.Errorf("%w: invoice %s already costed", apperrors.ErrDuplicatePosting, doc.InvoiceID)
	}

	consumed := []domain.BatchAllocation{}
	totalCost := decimal.Zero
	for _, item := range doc.Items {
		allocations, cost, err := s.inventory.ConsumeFIFO(ctx, tenantID, item.ItemID, item.Quantity, creatorID)
		if err != nil {
			if undoErr := s.inventory.UndoConsume(ctx, tenantID, consumed, creatorID); undoErr != nil {
				s.LogError(ctx, undoErr, "Failed to undo stock consumption after allocation error", slog.String("invoice_id", doc.InvoiceID))
			}
			return nil, err
		}
		consumed = append(consumed, allocations...)
		totalCost = totalCost.Add(cost)
	}
	if !totalCost.IsPositive() {
		return nil, fmt.Errorf("%w: invoice %s items carry no cost", apperrors.ErrValidation, doc.InvoiceID)
	}

	batch := s.newBatch(tenantID, domain.DocInventoryCOGS, refTypeInvoice, doc.InvoiceID, doc.InvoiceNumber,
		"Cost of goods sold for "+doc.InvoiceNumber, creatorID)
	batch.Lines = append(batch.Lines,
		newLine(&batch, doc.InvoiceDate, domain.KindCOGS, totalCost, decimal.Zero, nil, "Cost of goods sold"),
		newLine(&batch, doc.InvoiceDate, domain.KindInventoryValue, decimal.Zero, totalCost, nil, "Inventory consumed"))

	posted, err := s.ledgerRepo.AppendBatch(ctx, batch, s.tolerance)
	if err != nil {
		if undoErr := s.inventory.UndoConsume(ctx, tenantID, consumed, creatorID); undoErr != nil {
			s.LogError(ctx, undoErr, "Failed to undo stock consumption after posting error", slog.String("invoice_id", doc.InvoiceID))
		}
		return nil, err
	}
	return posted, nil
}

// GetBatchByID retrieves a posting batch with its lines.
func (s *postingService) GetBatchByID(ctx context.Context, tenantID string, batchID string) (*domain.PostingBatch, error) {
	return s.ledgerRepo.FindBatchByID(ctx, tenantID, batchID)
}

// GetBatchByReference retrieves the batch posted for a source document.
func (s *postingService) GetBatchByReference(ctx context.Context, tenantID string, referenceType string, referenceID string, documentKind domain.DocumentKind) (*domain.PostingBatch, error) {
	return s.ledgerRepo.FindBatchByReference(ctx, tenantID, referenceType, referenceID, documentKind)
}

// GetDocumentStatus retrieves the settlement projection for a source document.
func (s *postingService) GetDocumentStatus(ctx context.Context, tenantID string, referenceType string, referenceID string) (*domain.DocumentStatus, error) {
	return s.docStatusRepo.FindDocumentStatus(ctx, tenantID, referenceType, referenceID)
}

// ListDocumentLines retrieves every ledger line referencing a source document.
func (s *postingService) ListDocumentLines(ctx context.Context, tenantID string, referenceType string, referenceID string) ([]domain.LedgerLine, error) {
	return s.ledgerRepo.ListLinesByReference(ctx, tenantID, referenceType, referenceID)
}

// ListBatches retrieves a paginated list of posting batches, newest first.
func (s *postingService) ListBatches(ctx context.Context, tenantID string, params dto.ListPostingsParams) (*dto.ListPostingsResponse, error) {
	batches, nextToken, err := s.ledgerRepo.ListBatchesByTenant(ctx, tenantID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := &dto.ListPostingsResponse{
		Batches:   make([]dto.PostingBatchResponse, len(batches)),
		NextToken: nextToken,
	}
	for i := range batches {
		resp.Batches[i] = dto.ToPostingBatchResponse(&batches[i])
	}
	return resp, nil
}
