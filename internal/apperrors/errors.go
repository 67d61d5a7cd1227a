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

// ErrConflict indicates the request clashes with the current state of a resource.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected failure, usually in storage.
var ErrInternal = errors.New("internal error")

// ErrUnbalanced indicates a journal entry whose debits and credits differ.
var ErrUnbalanced = errors.New("debits and credits must balance")

// ErrInactiveAccount indicates a posting against a deactivated account.
var ErrInactiveAccount = errors.New("account is inactive")

// ErrPeriodClosed indicates a posting dated inside a closed fiscal period.
var ErrPeriodClosed = errors.New("fiscal period is closed")

// Unique constraint violations the posting path reacts to individually.
// Each one still matches ErrDuplicate through errors.Is.
var (
	ErrDuplicateEntryNumber   = fmt.Errorf("%w: entry number", ErrDuplicate)
	ErrDuplicateIdempotentKey = fmt.Errorf("%w: idempotency key", ErrDuplicate)
	ErrAlreadyReversed        = fmt.Errorf("%w: entry already reversed", ErrDuplicate)
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
// Storage adapters use it for driver failures that have no domain meaning.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets 5xx AppErrors match ErrInternal.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= 500
}
