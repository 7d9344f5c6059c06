package service

import (
	"context"
	"strings"
	"time"

	"github.com/fingerguard/server/internal/fingerguard/store"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

// DeviceRegistry fronts the device store with the validation the embedded
// clients don't do themselves.
type DeviceRegistry struct {
	store store.DeviceStore
}

func NewDeviceRegistry(st store.DeviceStore) *DeviceRegistry {
	return &DeviceRegistry{store: st}
}

// Heartbeat upserts the device record. Heartbeat is the canonical
// creation path for unseen devices.
func (r *DeviceRegistry) Heartbeat(ctx context.Context, req types.HeartbeatRequest) (types.Device, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		return types.Device{}, ErrDeviceIDRequired
	}

	// Status tokens are stored verbatim, not validated. The dashboard
	// treats anything other than "online" as offline-ish.
	status := strings.TrimSpace(req.Status)

	dev, _, err := r.store.Heartbeat(ctx, deviceID, status, req.Telemetry, time.Now().UTC())
	return dev, err
}

// ReportStatus replaces the enrolled-user list on an existing record. A
// report for an unseen deviceID is a no-op rather than an implicit
// registration; the returned bool says whether anything was updated.
func (r *DeviceRegistry) ReportStatus(ctx context.Context, req types.StatusRequest) (bool, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		return false, ErrDeviceIDRequired
	}
	return r.store.SetUsers(ctx, deviceID, req.Users, req.Telemetry)
}

// NoteAccess bumps the per-device access tallies. Best effort: an unseen
// device just doesn't get counted.
func (r *DeviceRegistry) NoteAccess(ctx context.Context, deviceID string, granted bool) error {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil
	}
	return r.store.NoteAccess(ctx, deviceID, granted)
}

func (r *DeviceRegistry) Get(ctx context.Context, deviceID string) (types.Device, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return types.Device{}, store.ErrNotFound
	}
	return r.store.Get(ctx, deviceID)
}

func (r *DeviceRegistry) List(ctx context.Context) ([]types.Device, error) {
	return r.store.List(ctx)
}
