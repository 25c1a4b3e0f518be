package model

import "errors"

// Error taxonomy shared by repositories, services and the cached decorators.
// The decorators pass these through unchanged; cache failures never map onto
// any of them.
var (
	// ErrNotFound means the entity is absent in the system of record.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input is malformed (bad date range,
	// out-of-range status code, guest count over capacity).
	ErrValidation = errors.New("validation failed")

	// ErrConflict means a business rule was violated (duplicate email,
	// no rooms left for the requested dates).
	ErrConflict = errors.New("conflict")
)
