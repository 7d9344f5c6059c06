package store

import "errors"

// ErrNotFound is returned by reads for a deviceID the store has never seen.
var ErrNotFound = errors.New("not found")

const (
	// DefaultLogCapacity is the canonical bound on each log store. Oldest
	// entries are dropped silently once a store exceeds it.
	DefaultLogCapacity = 500

	// DefaultQueryLimit applies when a query names no limit; MaxQueryLimit
	// caps the limit regardless of what the caller asked for.
	DefaultQueryLimit = 50
	MaxQueryLimit     = 100
)
