package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks before any
// persistence was attempted.
var ErrValidation = errors.New("validation error")

// ErrDuplicatePosting indicates the same document/kind was already posted.
// Callers should treat it as success-already-happened, never as a reason to
// delete and re-post.
var ErrDuplicatePosting = errors.New("document already posted")

// AppError wraps a lower-level failure with an HTTP-ish status code and a
// message safe to surface.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// BucketDelta is one row of the per-bucket breakdown attached to a
// LedgerImbalanceError so the diverging bucket is visible without ad hoc SQL.
type BucketDelta struct {
	Bucket string          `json:"bucket"`
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// LedgerImbalanceError reports that the global debit=credit invariant failed
// beyond tolerance. The triggering batch is never committed; the error carries
// enough detail to diagnose which bucket diverged.
type LedgerImbalanceError struct {
	TenantID   string          `json:"tenantID"`
	BatchID    string          `json:"batchID,omitempty"`
	Difference decimal.Decimal `json:"difference"` // total debits - total credits
	Buckets    []BucketDelta   `json:"buckets"`
}

func (e *LedgerImbalanceError) Error() string {
	return fmt.Sprintf("ledger imbalance for tenant %s: debits minus credits is %s",
		e.TenantID, e.Difference.String())
}

// IsLedgerImbalance extracts a LedgerImbalanceError from an error chain.
func IsLedgerImbalance(err error) (*LedgerImbalanceError, bool) {
	var imbalance *LedgerImbalanceError
	if errors.As(err, &imbalance) {
		return imbalance, true
	}
	return nil, false
}
