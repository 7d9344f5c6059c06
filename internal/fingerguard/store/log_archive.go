package store

import (
	"context"
	"time"

	"github.com/fingerguard/server/internal/fingerguard/types"
)

// LogArchive is the optional durable collaborator behind the in-memory
// log stores. Archive writes are fire-and-forget: they must never block
// the response path, and their failure is logged, not surfaced. The
// in-memory bounded stores remain authoritative for the API.
type LogArchive interface {
	ArchiveAccess(entry types.LogEntry)
	ArchiveEvent(entry types.LogEntry)

	// PruneOlderThan deletes archived rows received before cutoff and
	// returns how many were removed.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
