package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrSigning           = errors.New("signing failure")

	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrCodeCollision  = errors.New("auth code collision")
	ErrInvalidCode    = errors.New("invalid code")

	ErrTransport    = errors.New("transport failure")
	ErrNotification = errors.New("notification failure")
	ErrStore        = errors.New("store failure")
	ErrStoreTimeout = errors.New("store timeout")
)

// ValidationError carries a client-facing message for malformed or missing input.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }
