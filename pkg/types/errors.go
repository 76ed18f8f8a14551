package types

import "errors"

// Validation errors. These are raised before any statement is issued.
var (
	ErrMissingPrice  = errors.New("sale requires a chaos or divine price")
	ErrInvalidName   = errors.New("item name must not be empty")
	ErrInvalidLeague = errors.New("league must not be empty")
	ErrInvalidPlugin = errors.New("plugin id must not be empty")
)

// Migration errors.
var (
	// ErrColumnNotAllowed is returned when a migration step asks for a
	// column addition that is not in the fixed allow-list. Column names
	// are interpolated into ALTER TABLE text, so only vetted
	// (table, column) pairs may pass.
	ErrColumnNotAllowed = errors.New("column not in migration allow-list")
)
