package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fingerguard/server/internal/db"
	"github.com/fingerguard/server/internal/fingerguard/store/sqlite"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

func TestLogArchive_ArchiveAccessLands(t *testing.T) {
	conn := openTestDB(t)
	writer := db.NewWorker(conn)

	archive := sqlite.NewLogArchive(conn, writer, zerolog.Nop())

	granted := true
	now := time.Now().UTC()
	archive.ArchiveAccess(types.LogEntry{
		ID:         "entry-1",
		DeviceID:   "dev-1",
		UserID:     3,
		UserName:   "Alice",
		CardID:     "C3",
		Granted:    &granted,
		Timestamp:  now,
		ReceivedAt: now,
	})

	// Close drains the worker queue, so the write has landed.
	writer.Close()

	var userName string
	var grantedCol int
	err := conn.QueryRow(
		"SELECT user_name, granted FROM access_logs WHERE id = ?;", "entry-1",
	).Scan(&userName, &grantedCol)
	if err != nil {
		t.Fatalf("select archived row: %v", err)
	}
	if userName != "Alice" || grantedCol != 1 {
		t.Errorf("unexpected row: user=%q granted=%d", userName, grantedCol)
	}
}

func TestLogArchive_ArchiveEventLands(t *testing.T) {
	conn := openTestDB(t)
	writer := db.NewWorker(conn)

	archive := sqlite.NewLogArchive(conn, writer, zerolog.Nop())

	now := time.Now().UTC()
	archive.ArchiveEvent(types.LogEntry{
		ID:         "event-1",
		DeviceID:   "dev-1",
		Action:     "boot",
		Message:    "sensor ready",
		Timestamp:  now,
		ReceivedAt: now,
	})

	writer.Close()

	var action string
	err := conn.QueryRow("SELECT action FROM event_logs WHERE id = ?;", "event-1").Scan(&action)
	if err != nil {
		t.Fatalf("select archived row: %v", err)
	}
	if action != "boot" {
		t.Errorf("expected action boot, got %q", action)
	}
}

func TestLogArchive_PruneOlderThan(t *testing.T) {
	conn := openTestDB(t)
	writer := db.NewWorker(conn)
	defer writer.Close()

	archive := sqlite.NewLogArchive(conn, writer, zerolog.Nop())

	granted := false
	old := time.Now().UTC().AddDate(0, 0, -40)
	recent := time.Now().UTC().AddDate(0, 0, -1)

	archive.ArchiveAccess(types.LogEntry{
		ID: "old-access", DeviceID: "dev-1", UserName: "Alice",
		Granted: &granted, Timestamp: old, ReceivedAt: old,
	})
	archive.ArchiveEvent(types.LogEntry{
		ID: "old-event", DeviceID: "dev-1", Action: "boot",
		Timestamp: old, ReceivedAt: old,
	})
	archive.ArchiveAccess(types.LogEntry{
		ID: "recent-access", DeviceID: "dev-1", UserName: "Bob",
		Granted: &granted, Timestamp: recent, ReceivedAt: recent,
	})

	// Prune runs through the same worker: queued archive writes are
	// applied before it, so no explicit flush is needed.
	cutoff := time.Now().UTC().AddDate(0, 0, -30)
	deleted, err := archive.PruneOlderThan(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 rows pruned, got %d", deleted)
	}

	var remaining int
	if err := conn.QueryRow("SELECT COUNT(*) FROM access_logs;").Scan(&remaining); err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 1 {
		t.Errorf("expected 1 access row to survive, got %d", remaining)
	}
}
