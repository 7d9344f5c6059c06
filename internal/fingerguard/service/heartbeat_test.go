package service_test

import (
	"context"
	"testing"

	"github.com/fingerguard/server/internal/fingerguard/service"
	"github.com/fingerguard/server/internal/fingerguard/store/memory"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

func newTestHeartbeatService() (*service.HeartbeatService, *service.CommandService) {
	registry := service.NewDeviceRegistry(memory.NewDeviceStore())
	commands := service.NewCommandService(memory.NewCommandQueue())
	return service.NewHeartbeatService(registry, commands), commands
}

func TestHeartbeat_DrainsQueuedCommandsOnce(t *testing.T) {
	svc, commands := newTestHeartbeatService()
	ctx := context.Background()

	if _, err := commands.Enqueue(ctx, types.CommandRequest{
		DeviceID: "dev-1",
		Type:     "enroll",
		ID:       flexInt(5),
		Name:     "Alice",
		CardID:   "C5",
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	resp, err := svc.Record(ctx, types.HeartbeatRequest{DeviceID: "dev-1", Status: "online"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if len(resp.Commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(resp.Commands))
	}

	cmd := resp.Commands[0]
	if cmd.Type != types.CommandEnroll || cmd.ID != 5 || cmd.Name != "Alice" || cmd.Phone != "" || cmd.CardID != "C5" {
		t.Errorf("unexpected command: %+v", cmd)
	}
	if cmd.Timestamp.IsZero() {
		t.Error("expected command timestamp")
	}

	// An immediate second heartbeat must come back empty.
	resp, err = svc.Record(ctx, types.HeartbeatRequest{DeviceID: "dev-1"})
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if len(resp.Commands) != 0 {
		t.Errorf("expected empty commands on second heartbeat, got %d", len(resp.Commands))
	}
	if resp.Commands == nil {
		t.Error("commands must be an empty slice, not nil")
	}
}

func TestHeartbeat_ServerTimeSet(t *testing.T) {
	svc, _ := newTestHeartbeatService()

	resp, err := svc.Record(context.Background(), types.HeartbeatRequest{DeviceID: "dev-1"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if resp.ServerTime == "" {
		t.Error("expected serverTime")
	}
	if resp.DeviceID != "dev-1" {
		t.Errorf("expected deviceId echoed, got %q", resp.DeviceID)
	}
}
