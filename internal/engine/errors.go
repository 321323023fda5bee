package engine

import "errors"

// Engine-level errors. All are local and recoverable by the caller; none
// are process-fatal.
var (
	// ErrInvalidInput marks inputs rejected before any calculation runs:
	// non-positive price, down payment at or above price, and similar.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIncompleteProfile marks a profile missing required fields for the
	// selected variant. The wrapped message names the missing fields.
	ErrIncompleteProfile = errors.New("incomplete profile")
)
