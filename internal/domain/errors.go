package domain

import "errors"

// Common domain errors shared across entities.
var (
	// ErrValidation is the base error for all domain validation failures.
	// Entity-specific errors wrap more detail but callers can match this
	// with errors.Is for a generic "bad data" check.
	ErrValidation = errors.New("validation error")

	// ErrInvalidStatusTransition is returned when a work item status
	// transition violates the status machine.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
