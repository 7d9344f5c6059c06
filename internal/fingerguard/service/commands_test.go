package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fingerguard/server/internal/fingerguard/service"
	"github.com/fingerguard/server/internal/fingerguard/store/memory"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

func flexInt(n int) *types.FlexInt {
	f := types.FlexInt(n)
	return &f
}

func TestEnqueue_EnrollDefaultsOptionalFields(t *testing.T) {
	svc := service.NewCommandService(memory.NewCommandQueue())

	cmd, err := svc.Enqueue(context.Background(), types.CommandRequest{
		DeviceID: "dev-1",
		Type:     "enroll",
		ID:       flexInt(5),
		Name:     "Alice",
		CardID:   "C5",
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if cmd.Type != types.CommandEnroll || cmd.ID != 5 || cmd.Name != "Alice" {
		t.Errorf("unexpected command: %+v", cmd)
	}
	if cmd.Phone != "" {
		t.Errorf("expected phone defaulted to empty string, got %q", cmd.Phone)
	}
	if cmd.CardID != "C5" {
		t.Errorf("expected cardId C5, got %q", cmd.CardID)
	}
	if cmd.Timestamp.IsZero() {
		t.Error("expected creation timestamp")
	}
}

func TestEnqueue_ValidationErrors(t *testing.T) {
	svc := service.NewCommandService(memory.NewCommandQueue())
	ctx := context.Background()

	cases := []struct {
		name string
		req  types.CommandRequest
		want error
	}{
		{"missing deviceId", types.CommandRequest{Type: "clear"}, service.ErrDeviceIDRequired},
		{"unknown type", types.CommandRequest{DeviceID: "d", Type: "reboot"}, service.ErrUnknownCommandType},
		{"empty type", types.CommandRequest{DeviceID: "d"}, service.ErrUnknownCommandType},
		{"enroll without id", types.CommandRequest{DeviceID: "d", Type: "enroll", Name: "Alice"}, service.ErrCommandIDRequired},
		{"enroll without name", types.CommandRequest{DeviceID: "d", Type: "enroll", ID: flexInt(1)}, service.ErrCommandNameRequired},
		{"delete without id", types.CommandRequest{DeviceID: "d", Type: "delete"}, service.ErrCommandIDRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Enqueue(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEnqueue_ClearNeedsNoPayload(t *testing.T) {
	svc := service.NewCommandService(memory.NewCommandQueue())

	cmd, err := svc.Enqueue(context.Background(), types.CommandRequest{DeviceID: "dev-1", Type: "clear"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if cmd.Type != types.CommandClear || cmd.ID != 0 {
		t.Errorf("unexpected command: %+v", cmd)
	}
}

func TestDrain_NeverReturnsNil(t *testing.T) {
	svc := service.NewCommandService(memory.NewCommandQueue())

	cmds, err := svc.Drain(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if cmds == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(cmds) != 0 {
		t.Errorf("expected no commands, got %d", len(cmds))
	}
}

// Embedded clients send user ids both as numbers and as digit strings;
// the request type accepts either, and rejects anything else outright.
func TestCommandRequest_FlexibleID(t *testing.T) {
	var req types.CommandRequest
	if err := json.Unmarshal([]byte(`{"deviceId":"d","type":"delete","id":"17"}`), &req); err != nil {
		t.Fatalf("unmarshal string id: %v", err)
	}
	if req.ID == nil || req.ID.Int() != 17 {
		t.Errorf("expected id 17, got %v", req.ID)
	}

	if err := json.Unmarshal([]byte(`{"deviceId":"d","type":"delete","id":17}`), &req); err != nil {
		t.Fatalf("unmarshal numeric id: %v", err)
	}
	if req.ID == nil || req.ID.Int() != 17 {
		t.Errorf("expected id 17, got %v", req.ID)
	}

	if err := json.Unmarshal([]byte(`{"deviceId":"d","type":"delete","id":"not-a-number"}`), &req); err == nil {
		t.Error("expected an error for a garbage id")
	}
}
