package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	dbpkg "github.com/fingerguard/server/internal/db"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

// LogArchive writes accepted log entries to SQLite through the
// single-writer worker. Writes are fire-and-forget: failures (including
// a full worker queue) are logged and dropped, never surfaced to the
// request path. The in-memory stores stay authoritative for the API;
// the archive exists for retention beyond their capacity.
type LogArchive struct {
	db     *sql.DB
	writer *dbpkg.Worker
	logger zerolog.Logger
}

func NewLogArchive(db *sql.DB, writer *dbpkg.Worker, logger zerolog.Logger) *LogArchive {
	return &LogArchive{db: db, writer: writer, logger: logger}
}

func (s *LogArchive) ArchiveAccess(entry types.LogEntry) {
	granted := 0
	if entry.Granted != nil && *entry.Granted {
		granted = 1
	}
	s.background("access", entry.ID, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO access_logs(
  id, device_id, user_id, user_name, card_id, granted, event_at_ms, received_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`,
			entry.ID, entry.DeviceID, entry.UserID, entry.UserName, entry.CardID,
			granted, entry.Timestamp.UTC().UnixMilli(), entry.ReceivedAt.UTC().UnixMilli(),
		); err != nil {
			return fmt.Errorf("ArchiveAccess insert: %w", err)
		}
		return nil
	})
}

func (s *LogArchive) ArchiveEvent(entry types.LogEntry) {
	s.background("event", entry.ID, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO event_logs(
  id, device_id, action, message, user_id, card_id, event_at_ms, received_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`,
			entry.ID, entry.DeviceID, entry.Action, entry.Message, entry.UserID,
			entry.CardID, entry.Timestamp.UTC().UnixMilli(), entry.ReceivedAt.UTC().UnixMilli(),
		); err != nil {
			return fmt.Errorf("ArchiveEvent insert: %w", err)
		}
		return nil
	})
}

// background submits fn to the writer, wrapping it so execution failures
// are logged here rather than lost (fire-and-forget jobs report to no one).
func (s *LogArchive) background(kind, id string, fn dbpkg.TxFn) {
	err := s.writer.Background(func(ctx context.Context, tx *sql.Tx) error {
		if err := fn(ctx, tx); err != nil {
			s.logger.Error().Err(err).Str("kind", kind).Str("id", id).Msg("archive write failed")
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Str("id", id).Msg("archive write dropped")
	}
}

// PruneOlderThan deletes archived rows received before cutoff from both
// tables. Runs synchronously through the writer; only the pruner calls it.
func (s *LogArchive) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoffMs := cutoff.UTC().UnixMilli()

	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, table := range []string{"access_logs", "event_logs"} {
			res, err := tx.ExecContext(ctx,
				fmt.Sprintf("DELETE FROM %s WHERE received_at_ms < ?;", table), cutoffMs)
			if err != nil {
				return fmt.Errorf("PruneOlderThan %s: %w", table, err)
			}
			n, _ := res.RowsAffected()
			deleted += n
		}
		return nil
	})
	return deleted, err
}
