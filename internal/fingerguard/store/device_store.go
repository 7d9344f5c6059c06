package store

import (
	"context"
	"time"

	"github.com/fingerguard/server/internal/fingerguard/types"
)

// DeviceStore holds the last-known state of every device that has
// reported in. Records are process-lifetime only and never deleted.
type DeviceStore interface {
	// Heartbeat upserts the record for deviceID: lastSeen is set to at,
	// status (if non-empty) replaces the stored token verbatim, and tel
	// (if non-nil) is merged field-by-field. An unseen deviceID gets a
	// default record with an empty users list and status "online".
	// Returns the post-update record and whether it was newly created.
	Heartbeat(ctx context.Context, deviceID, status string, tel *types.Telemetry, at time.Time) (types.Device, bool, error)

	// SetUsers replaces the enrolled-user list (and merges telemetry) on
	// an existing record. A status report for an unseen deviceID is a
	// no-op and returns false: heartbeat is the canonical creation path.
	SetUsers(ctx context.Context, deviceID string, users []types.User, tel *types.Telemetry) (bool, error)

	// NoteAccess bumps the access tallies on an existing record. Unseen
	// deviceID is a no-op (the log entry is still retained elsewhere).
	NoteAccess(ctx context.Context, deviceID string, granted bool) error

	Get(ctx context.Context, deviceID string) (types.Device, error)
	List(ctx context.Context) ([]types.Device, error)
}
