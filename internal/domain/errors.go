package domain

import "errors"

var (
	// ErrBookNotFound is returned when a title matches nothing in the
	// catalog. An expected outcome, not a failure.
	ErrBookNotFound = errors.New("book not found")

	// ErrUnknownStrategy is returned for strategy names outside
	// content/popularity/hybrid, so the boundary layer can report a
	// client-input error rather than data absence.
	ErrUnknownStrategy = errors.New("unknown strategy")
)
