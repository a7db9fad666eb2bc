package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidStatus marks a booking status outside the allowed set.
	ErrInvalidStatus = errors.New("invalid booking status")
	// ErrStorage wraps any persistence failure, constraint violations included.
	ErrStorage = errors.New("storage error")
	// ErrConstraint marks a write rejected by the ledger's reference checks.
	ErrConstraint = errors.New("constraint violation")
)
