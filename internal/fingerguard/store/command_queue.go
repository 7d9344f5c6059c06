package store

import (
	"context"

	"github.com/fingerguard/server/internal/fingerguard/types"
)

// CommandQueue maps each deviceID to its ordered list of pending commands.
// Commands are appended by operator actions and drained whenever the
// device next reports in. No persistence: a process restart loses all
// undelivered commands.
type CommandQueue interface {
	// Enqueue appends cmd to the tail of deviceID's list, creating the
	// list if absent.
	Enqueue(ctx context.Context, deviceID string, cmd types.Command) error

	// Drain returns deviceID's full pending list in FIFO order (oldest
	// first) and atomically resets it to empty. Two drains can never
	// observe the same command; this is the core correctness property.
	Drain(ctx context.Context, deviceID string) ([]types.Command, error)

	// PendingCount reports the total number of undelivered commands
	// across all devices.
	PendingCount(ctx context.Context) (int, error)
}
