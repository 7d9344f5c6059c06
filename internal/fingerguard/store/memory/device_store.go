package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fingerguard/server/internal/fingerguard/store"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

type DeviceStore struct {
	mu      sync.RWMutex
	devices map[string]*types.Device
}

func NewDeviceStore() *DeviceStore {
	return &DeviceStore{devices: make(map[string]*types.Device)}
}

func (s *DeviceStore) Heartbeat(_ context.Context, deviceID, status string, tel *types.Telemetry, at time.Time) (types.Device, bool, error) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.devices[deviceID]
	if !ok {
		d = &types.Device{
			DeviceID: deviceID,
			Status:   "online",
			Users:    []types.User{},
		}
		s.devices[deviceID] = d
	}

	d.LastSeen = at
	if status != "" {
		d.Status = status
	}
	if tel != nil {
		d.Telemetry.Merge(*tel)
	}

	return cloneDevice(d), !ok, nil
}

func (s *DeviceStore) SetUsers(_ context.Context, deviceID string, users []types.User, tel *types.Telemetry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.devices[deviceID]
	if !ok {
		return false, nil
	}

	if users == nil {
		users = []types.User{}
	}
	d.Users = append([]types.User(nil), users...)
	if tel != nil {
		d.Telemetry.Merge(*tel)
	}

	return true, nil
}

func (s *DeviceStore) NoteAccess(_ context.Context, deviceID string, granted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.devices[deviceID]
	if !ok {
		return nil
	}

	d.AccessCount++
	if granted {
		d.GrantedCount++
	} else {
		d.DeniedCount++
	}
	return nil
}

func (s *DeviceStore) Get(_ context.Context, deviceID string) (types.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.devices[deviceID]
	if !ok {
		return types.Device{}, store.ErrNotFound
	}
	return cloneDevice(d), nil
}

func (s *DeviceStore) List(_ context.Context) ([]types.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Device, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, cloneDevice(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out, nil
}

// cloneDevice copies the record so callers can't mutate store state
// through the returned users slice.
func cloneDevice(d *types.Device) types.Device {
	out := *d
	out.Users = append([]types.User(nil), d.Users...)
	return out
}
