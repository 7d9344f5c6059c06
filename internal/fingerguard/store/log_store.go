package store

import (
	"context"

	"github.com/fingerguard/server/internal/fingerguard/types"
)

// LogQuery filters and bounds a log read. DeviceID, when non-empty, is an
// exact match. Limit <= 0 falls back to DefaultQueryLimit; anything above
// MaxQueryLimit is clamped down.
type LogQuery struct {
	DeviceID string
	Limit    int
}

// LogStore is a bounded, insertion-ordered, newest-first sequence of log
// entries. The access log and the device-event log are two independent
// instances of the same contract.
type LogStore interface {
	// Append inserts entry at the front and truncates the tail beyond
	// capacity. Returns the entry's id.
	Append(ctx context.Context, entry types.LogEntry) (string, error)

	// Query returns at most the clamped limit of entries from the front
	// (most recent first), plus the total number of retained entries
	// matching the filter before the limit was applied.
	Query(ctx context.Context, q LogQuery) ([]types.LogEntry, int, error)
}
