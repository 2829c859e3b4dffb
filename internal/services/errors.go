package services

import "errors"

// Sentinel errors for the engine's failure taxonomy. Handlers map
// these to HTTP statuses with errors.Is; everything else is treated as
// an internal failure and logged with context.
var (
	// ErrConflict means requested tickets were no longer AVAILABLE at
	// reservation time. No mutation is left behind; the caller must
	// re-select.
	ErrConflict = errors.New("selected numbers are no longer available")

	// ErrNotFound covers unknown ids and ownership mismatches alike, so
	// existence is never leaked to non-owners.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyFinal means the transaction is already in a terminal
	// state incompatible with the request. Benign no-op.
	ErrAlreadyFinal = errors.New("transaction is already finalized")

	// ErrAlreadyDrawn means the prize already has a recorded winner.
	ErrAlreadyDrawn = errors.New("prize has already been drawn")

	// ErrNoEligibleTickets means the campaign has no PAID tickets to
	// draw from.
	ErrNoEligibleTickets = errors.New("campaign has no paid tickets to draw from")

	// ErrPaymentProvider means the PIX provider call failed. The
	// reservation it was created for stays PENDING until the sweeper
	// reclaims it.
	ErrPaymentProvider = errors.New("payment provider unavailable")
)

// ValidationError is malformed input rejected before any mutation
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
