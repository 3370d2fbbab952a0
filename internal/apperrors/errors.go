package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPrecondition indicates that the inputs are well formed but not in a state
// that allows processing (unvalidated snapshot, unfinished opening balance, ...).
var ErrPrecondition = errors.New("precondition failed")

// ErrReconciliation indicates that a cross-statement identity does not hold.
var ErrReconciliation = errors.New("reconciliation failed")

// ErrMissingClosingAccount is returned when no transaction touches the 911 income-summary account.
var ErrMissingClosingAccount = fmt.Errorf("%w: tài khoản 911 không tồn tại trong dữ liệu GL, không thể lập báo cáo kết chuyển lãi lỗ", ErrPrecondition)

// AppError carries an HTTP-ish status code alongside a wrapped error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// ReconciliationError reports a failed books identity together with the discrepancy found.
type ReconciliationError struct {
	Check       string
	Discrepancy decimal.Decimal
	Detail      string
}

func (e *ReconciliationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s check failed: %s (discrepancy %s)", e.Check, e.Detail, e.Discrepancy.String())
	}
	return fmt.Sprintf("%s check failed (discrepancy %s)", e.Check, e.Discrepancy.String())
}

// Is lets errors.Is(err, ErrReconciliation) match.
func (e *ReconciliationError) Is(target error) bool { return target == ErrReconciliation }

// InvalidRecordsError reports ledger rows whose posting date falls outside the reporting range.
type InvalidRecordsError struct {
	Count int
}

func (e *InvalidRecordsError) Error() string {
	return fmt.Sprintf("Dữ liệu có ngày hạch toán nằm ngoài kỳ báo cáo. Có %d bản ghi không hợp lệ", e.Count)
}

// Is lets errors.Is(err, ErrPrecondition) match.
func (e *InvalidRecordsError) Is(target error) bool { return target == ErrPrecondition }
