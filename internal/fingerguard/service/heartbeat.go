package service

import (
	"context"
	"time"

	"github.com/fingerguard/server/internal/fingerguard/types"
)

// HeartbeatService ties a device heartbeat to its two effects: the
// registry upsert and the command-queue drain. Draining here, on the
// heartbeat path, gives commands their at-most-once delivery.
type HeartbeatService struct {
	registry *DeviceRegistry
	commands *CommandService
}

func NewHeartbeatService(reg *DeviceRegistry, cmds *CommandService) *HeartbeatService {
	return &HeartbeatService{registry: reg, commands: cmds}
}

func (s *HeartbeatService) Record(ctx context.Context, req types.HeartbeatRequest) (types.HeartbeatResponse, error) {
	dev, err := s.registry.Heartbeat(ctx, req)
	if err != nil {
		return types.HeartbeatResponse{}, err
	}

	cmds, err := s.commands.Drain(ctx, dev.DeviceID)
	if err != nil {
		return types.HeartbeatResponse{}, err
	}

	return types.HeartbeatResponse{
		Success:    true,
		DeviceID:   dev.DeviceID,
		Commands:   cmds,
		ServerTime: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}
