package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fingerguard/server/internal/fingerguard/service"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

// fakeArchive records prune calls so tests can observe the pruner's
// behavior without a database.
type fakeArchive struct {
	mu     sync.Mutex
	prunes []time.Time
}

func (f *fakeArchive) ArchiveAccess(types.LogEntry) {}
func (f *fakeArchive) ArchiveEvent(types.LogEntry)  {}

func (f *fakeArchive) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prunes = append(f.prunes, cutoff)
	return 0, nil
}

func (f *fakeArchive) pruneCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prunes)
}

func TestArchivePruner_DisabledWhenRetentionZero(t *testing.T) {
	fa := &fakeArchive{}
	pruner := service.NewArchivePruner(fa, service.PrunerConfig{
		RetentionDays: 0,
		IntervalHours: 1,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pruner.Start(ctx)
	// Stop should return immediately without a prune having run.
	pruner.Stop()

	if fa.pruneCount() != 0 {
		t.Errorf("expected no prunes with retention=0, got %d", fa.pruneCount())
	}
}

func TestArchivePruner_PrunesImmediatelyOnStart(t *testing.T) {
	fa := &fakeArchive{}
	pruner := service.NewArchivePruner(fa, service.PrunerConfig{
		RetentionDays: 30,
		IntervalHours: 1,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pruner.Start(ctx)

	// The startup prune runs before the ticker; give it a moment.
	deadline := time.Now().Add(2 * time.Second)
	for fa.pruneCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	pruner.Stop()

	if fa.pruneCount() < 1 {
		t.Fatal("expected an immediate prune on startup")
	}

	// Cutoff must be roughly retention ago.
	fa.mu.Lock()
	cutoff := fa.prunes[0]
	fa.mu.Unlock()
	want := time.Now().UTC().AddDate(0, 0, -30)
	if cutoff.Before(want.Add(-time.Minute)) || cutoff.After(want.Add(time.Minute)) {
		t.Errorf("unexpected cutoff %v, want about %v", cutoff, want)
	}
}

func TestArchivePruner_StopIsIdempotent(t *testing.T) {
	fa := &fakeArchive{}
	pruner := service.NewArchivePruner(fa, service.PrunerConfig{
		RetentionDays: 30,
		IntervalHours: 1,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	pruner.Start(ctx)

	cancel()
	// Multiple stops should not panic.
	pruner.Stop()
	pruner.Stop()
}
