package service

import (
	"context"
	"strings"
	"time"

	"github.com/fingerguard/server/internal/fingerguard/store"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

// LogService ingests and queries the two bounded log stores. The optional
// archive receives a copy of every accepted entry; archive writes are
// fire-and-forget and never block or fail the request.
type LogService struct {
	access   store.LogStore
	events   store.LogStore
	registry *DeviceRegistry
	archive  store.LogArchive // nil when archival is disabled
}

func NewLogService(access, events store.LogStore, reg *DeviceRegistry, archive store.LogArchive) *LogService {
	return &LogService{access: access, events: events, registry: reg, archive: archive}
}

// RecordAccess appends one grant/deny decision. Duplicate delivery
// produces duplicate entries; there is no deduplication by design.
func (s *LogService) RecordAccess(ctx context.Context, req types.AccessLogRequest) (types.LogEntry, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		return types.LogEntry{}, ErrDeviceIDRequired
	}
	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		return types.LogEntry{}, ErrUserNameRequired
	}

	now := time.Now().UTC()
	granted := req.Granted
	entry := types.LogEntry{
		DeviceID:   deviceID,
		UserID:     req.UserID.Int(),
		UserName:   userName,
		CardID:     strings.TrimSpace(req.CardID),
		Granted:    &granted,
		Timestamp:  eventTime(req.Timestamp, now),
		ReceivedAt: now,
	}

	id, err := s.access.Append(ctx, entry)
	if err != nil {
		return types.LogEntry{}, err
	}
	entry.ID = id

	// Tallies on the device record are advisory; an unseen device simply
	// isn't counted.
	_ = s.registry.NoteAccess(ctx, deviceID, granted)

	if s.archive != nil {
		s.archive.ArchiveAccess(entry)
	}
	return entry, nil
}

// RecordEvent appends one device event (boot, sensor fault, enrollment
// progress and the like).
func (s *LogService) RecordEvent(ctx context.Context, req types.EventLogRequest) (types.LogEntry, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		return types.LogEntry{}, ErrDeviceIDRequired
	}
	action := strings.TrimSpace(req.Action)
	if action == "" {
		return types.LogEntry{}, ErrActionRequired
	}

	now := time.Now().UTC()
	entry := types.LogEntry{
		DeviceID:   deviceID,
		UserID:     req.UserID.Int(),
		CardID:     strings.TrimSpace(req.CardID),
		Action:     action,
		Message:    strings.TrimSpace(req.Message),
		Timestamp:  eventTime(req.Timestamp, now),
		ReceivedAt: now,
	}

	id, err := s.events.Append(ctx, entry)
	if err != nil {
		return types.LogEntry{}, err
	}
	entry.ID = id

	if s.archive != nil {
		s.archive.ArchiveEvent(entry)
	}
	return entry, nil
}

func (s *LogService) QueryAccess(ctx context.Context, q store.LogQuery) ([]types.LogEntry, int, error) {
	return s.access.Query(ctx, q)
}

func (s *LogService) QueryEvents(ctx context.Context, q store.LogQuery) ([]types.LogEntry, int, error) {
	return s.events.Query(ctx, q)
}

// eventTime resolves the device-reported timestamp. Devices with drifted
// or unset clocks send garbage here, so anything unparsable falls back to
// the server receive time and the raw value is dropped.
func eventTime(reported string, receivedAt time.Time) time.Time {
	reported = strings.TrimSpace(reported)
	if reported == "" {
		return receivedAt
	}
	if t, err := time.Parse(time.RFC3339, reported); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339Nano, reported); err == nil {
		return t.UTC()
	}
	return receivedAt
}
