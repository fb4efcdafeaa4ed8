// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps exactly one of these, so callers
// can match either the precise failure or its category with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrBusinessRule = errors.New("business rule violation")
	ErrNotFound     = errors.New("resource not found")
	ErrPersistence  = errors.New("persistence failure")
)

// Validation errors.
var (
	ErrInvalidInput        = fmt.Errorf("%w: invalid input provided", ErrValidation)
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be a positive whole number", ErrValidation)
	ErrBelowMinimum        = fmt.Errorf("%w: amount is below the minimum withdrawal", ErrValidation)
	ErrMissingDestination  = fmt.Errorf("%w: payout destination required", ErrValidation)
	ErrInvalidPayoutMethod = fmt.Errorf("%w: payout method must be UPI or Bank", ErrValidation)
)

// Business rule violations.
var (
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrBusinessRule)
	ErrDailyLimitReached   = fmt.Errorf("%w: daily click limit reached", ErrBusinessRule)
	ErrInvalidTransition   = fmt.Errorf("%w: invalid withdrawal status transition", ErrBusinessRule)
	ErrDuplicateEntry      = fmt.Errorf("%w: duplicate entry", ErrBusinessRule) // e.g. registering an existing email
)

// Not found errors.
var (
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", ErrNotFound)
	ErrWithdrawalNotFound = fmt.Errorf("%w: withdrawal not found", ErrNotFound)
)

// ErrConcurrentUpdate signals a lost optimistic-lock race or a serialization
// failure. The whole unit of work may be retried.
var ErrConcurrentUpdate = fmt.Errorf("%w: concurrent update conflict", ErrPersistence)

// Authentication errors, used only at the HTTP boundary.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

// ErrorCode returns the stable machine-readable code for err, used in API error bodies.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrDailyLimitReached):
		return "DailyLimitReached"
	case errors.Is(err, ErrBelowMinimum):
		return "BelowMinimum"
	case errors.Is(err, ErrInsufficientBalance):
		return "InsufficientBalance"
	case errors.Is(err, ErrMissingDestination):
		return "MissingDestination"
	case errors.Is(err, ErrInvalidTransition):
		return "InvalidTransition"
	case errors.Is(err, ErrDuplicateEntry):
		return "DuplicateEntry"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrForbidden):
		return "Forbidden"
	case errors.Is(err, ErrPersistence):
		return "PersistenceFailure"
	default:
		return "InternalError"
	}
}
