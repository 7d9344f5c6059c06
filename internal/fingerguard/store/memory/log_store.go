package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pborman/uuid"

	"github.com/fingerguard/server/internal/fingerguard/store"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

// LogStore keeps a bounded newest-first slice of entries. Truncation
// happens inline at append time; there is no background compaction.
type LogStore struct {
	mu       sync.RWMutex
	capacity int
	entries  []types.LogEntry
}

func NewLogStore(capacity int) *LogStore {
	if capacity <= 0 {
		capacity = store.DefaultLogCapacity
	}
	return &LogStore{capacity: capacity}
}

func (s *LogStore) Append(_ context.Context, entry types.LogEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New()
	}
	if entry.ReceivedAt.IsZero() {
		entry.ReceivedAt = time.Now().UTC()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = entry.ReceivedAt
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]types.LogEntry{entry}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
	return entry.ID, nil
}

func (s *LogStore) Query(_ context.Context, q store.LogQuery) ([]types.LogEntry, int, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = store.DefaultQueryLimit
	}
	if limit > store.MaxQueryLimit {
		limit = store.MaxQueryLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.LogEntry, 0, limit)
	total := 0
	for _, e := range s.entries {
		if q.DeviceID != "" && e.DeviceID != q.DeviceID {
			continue
		}
		total++
		if len(out) < limit {
			out = append(out, e)
		}
	}
	return out, total, nil
}
