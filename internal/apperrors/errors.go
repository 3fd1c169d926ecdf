package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInsufficientBalance indicates that a withdrawal or payment exceeds the
// derived available funds or outstanding obligation.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrHasChildren indicates that an account cannot be deleted because child
// accounts reference it as parent.
var ErrHasChildren = errors.New("account has child accounts")

// ErrInUse indicates that an account cannot be deleted because journal lines
// reference it.
var ErrInUse = errors.New("account is referenced by journal lines")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish status code and message.
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// LedgerConfigError reports chart-of-account codes referenced by a posting
// that do not exist. It signals a setup defect, not a user input error, and is
// surfaced distinctly from validation failures.
type LedgerConfigError struct {
	MissingCodes []string
}

func (e *LedgerConfigError) Error() string {
	return "ledger configuration error: unknown account codes: " + strings.Join(e.MissingCodes, ", ")
}

// AsLedgerConfigError returns the LedgerConfigError in err's chain, if any.
func AsLedgerConfigError(err error) (*LedgerConfigError, bool) {
	var cfgErr *LedgerConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr, true
	}
	return nil, false
}
