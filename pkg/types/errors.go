package types

import "errors"

// Config validation errors.
var (
	ErrDatabaseEmpty   = errors.New("database name must not be empty")
	ErrStrategyUnknown = errors.New("unknown filter strategy")
)

// Store lifecycle errors.
var (
	// ErrAlreadyOpen is returned by Open when another store is open in this
	// process and has not been closed.
	ErrAlreadyOpen = errors.New("a store is already open")

	// ErrNotOpen is returned by operations on a closed store.
	ErrNotOpen = errors.New("store is not open")

	// ErrStoreNotFound is returned when discovery reaches the filesystem
	// root without finding the store file.
	ErrStoreNotFound = errors.New("no store file found in this or any parent directory")
)

// Operation argument errors. Both fail the single call before the store is
// touched.
var (
	ErrEmptyPath = errors.New("file path must not be empty")
	ErrEmptyTag  = errors.New("tag name must not be empty")
)
