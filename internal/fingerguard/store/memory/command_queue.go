package memory

import (
	"context"
	"sync"

	"github.com/fingerguard/server/internal/fingerguard/types"
)

type CommandQueue struct {
	mu      sync.Mutex
	pending map[string][]types.Command
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{pending: make(map[string][]types.Command)}
}

func (q *CommandQueue) Enqueue(_ context.Context, deviceID string, cmd types.Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending[deviceID] = append(q.pending[deviceID], cmd)
	return nil
}

// Drain hands the whole list over and deletes the key under one lock
// acquisition, so no two drains can see the same command.
func (q *CommandQueue) Drain(_ context.Context, deviceID string) ([]types.Command, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	cmds := q.pending[deviceID]
	delete(q.pending, deviceID)
	return cmds, nil
}

func (q *CommandQueue) PendingCount(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, cmds := range q.pending {
		n += len(cmds)
	}
	return n, nil
}
