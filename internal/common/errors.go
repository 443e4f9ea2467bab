// Package common defines shared sentinel errors and small helpers used
// across the jobtrack stores and front ends. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Account store errors.
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Errors shared by both stores.
	ErrUnauthenticated = errors.New("you must be logged in")
	ErrNotFound        = errors.New("not found")

	// Import errors.
	ErrInvalidFormat = errors.New("invalid import data: must be an array")

	// Storage errors. ErrStorageCorrupt is soft: the stores downgrade it to
	// an empty collection instead of surfacing it to callers.
	ErrStorageCorrupt = errors.New("stored value is corrupt")
)
