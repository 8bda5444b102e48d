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

// ErrForbidden indicates that the authenticated user may not perform the action.
var ErrForbidden = errors.New("insufficient permissions")

// ErrInsufficientFunds indicates a trade or settlement would leave a wallet
// balance negative. The original quote is stale; callers must re-quote rather
// than retry.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrRateUnavailable indicates the upstream market-data source failed or
// returned an unusable rate. Safe to retry later.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrStorageConflict indicates the database aborted a transaction due to a
// concurrent conflicting transaction (serialization failure or deadlock).
// Safe to retry.
var ErrStorageConflict = errors.New("storage conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish status code and a
// message suitable for logs. Repositories return these for infrastructure
// failures; sentinel errors above cover the domain taxonomy.
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

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches apperrors.ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
