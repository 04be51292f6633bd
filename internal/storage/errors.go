package storage

import "errors"

// Storage errors for the append-only price history store.
var (
	// ErrNotFound is returned when no observation exists for a pair.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when attempting to insert an observation
	// whose id already exists. The history table is append-only and never
	// updates rows in place.
	ErrDuplicateKey = errors.New("duplicate key: append-only store does not allow updates")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
