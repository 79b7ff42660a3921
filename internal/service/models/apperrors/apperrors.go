package apperrors

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP statuses.
var (
	// ErrInvalidID marks an identifier that is not a well-formed UUID.
	ErrInvalidID = errors.New("invalid id")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken marks a customer create/update with an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrValidation marks a payload that failed field validation.
	ErrValidation = errors.New("validation failed")

	// ErrRateUnavailable marks an exchange-rate fetch that failed or returned
	// an unusable payload.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrInvalidTotal marks a computed order total that is negative.
	ErrInvalidTotal = errors.New("invalid total")
)
