package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an operation that is not valid for the entry's
// current status, e.g. editing lines of a posted entry or cancelling a draft.
var ErrInvalidState = errors.New("operation not valid for current entry status")

// ErrInvalidAmount indicates a malformed debit/credit pair on a journal line:
// negative, both non-zero, or both zero.
var ErrInvalidAmount = errors.New("invalid debit/credit amount")

// ErrNotBalanced indicates a post attempt on an entry whose debits and credits
// do not sum to the same total, or on an entry with no lines.
var ErrNotBalanced = errors.New("journal entry is not balanced")

// ErrAlreadyApplied is the posting coordinator's double-invocation guard: the
// budget effect of this entry has already been applied or reversed.
var ErrAlreadyApplied = errors.New("posting already applied for this entry")

// ErrInvalidFiscalYear indicates a malformed fiscal year input to a reporting query.
var ErrInvalidFiscalYear = errors.New("invalid fiscal year")

// ErrPersistence indicates a storage failure during an atomic step. The
// operation left state untouched and the caller may retry.
var ErrPersistence = errors.New("persistence failure")

// AppError wraps a lower-level error with a status code and message.
// Used mainly by the pgsql repositories for infrastructure failures.
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

// NewAppError creates an AppError with the given code, message and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
