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

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller lacks permission for the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource is in a state that does not allow the action.
var ErrConflict = errors.New("conflict")

// ErrInvariant indicates an internal ledger invariant would be broken.
// It is never user-triggerable; the surrounding database transaction must be aborted.
var ErrInvariant = errors.New("ledger invariant violation")

// ErrOTPExpired indicates the one-time password has passed its expiry time.
var ErrOTPExpired = errors.New("otp expired")

// ErrRefreshTokenExpired indicates the stored refresh token has passed its expiry time.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInternal is a generic internal error for failures we don't want to detail to callers.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with a status code and a message
// suitable for logging. Match with errors.Is against the wrapped error.
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

// NewAppError creates a new AppError wrapping the given error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
