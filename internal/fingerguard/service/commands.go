package service

import (
	"context"
	"strings"
	"time"

	"github.com/fingerguard/server/internal/fingerguard/store"
	"github.com/fingerguard/server/internal/fingerguard/types"
)

// CommandService validates and normalizes operator commands before they
// reach the queue. Missing required fields are a typed error, optional
// fields get explicit defaults; nothing is silently coerced.
type CommandService struct {
	queue store.CommandQueue
}

func NewCommandService(q store.CommandQueue) *CommandService {
	return &CommandService{queue: q}
}

// Enqueue normalizes req into a Command and appends it to the device's
// queue. The normalized command is returned so the API can echo it.
func (s *CommandService) Enqueue(ctx context.Context, req types.CommandRequest) (types.Command, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		return types.Command{}, ErrDeviceIDRequired
	}

	cmd, err := normalizeCommand(req)
	if err != nil {
		return types.Command{}, err
	}
	cmd.Timestamp = time.Now().UTC()

	if err := s.queue.Enqueue(ctx, deviceID, cmd); err != nil {
		return types.Command{}, err
	}
	return cmd, nil
}

// Drain empties the device's pending queue. Never returns nil so the
// heartbeat response serializes an empty array, not null.
func (s *CommandService) Drain(ctx context.Context, deviceID string) ([]types.Command, error) {
	cmds, err := s.queue.Drain(ctx, strings.TrimSpace(deviceID))
	if err != nil {
		return nil, err
	}
	if cmds == nil {
		cmds = []types.Command{}
	}
	return cmds, nil
}

func (s *CommandService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.PendingCount(ctx)
}

func normalizeCommand(req types.CommandRequest) (types.Command, error) {
	switch types.CommandType(strings.TrimSpace(req.Type)) {
	case types.CommandEnroll:
		if req.ID == nil {
			return types.Command{}, ErrCommandIDRequired
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return types.Command{}, ErrCommandNameRequired
		}
		// phone and cardId are optional on enroll; the device expects
		// the fields present, so absent means empty string.
		return types.Command{
			Type:   types.CommandEnroll,
			ID:     req.ID.Int(),
			Name:   name,
			Phone:  strings.TrimSpace(req.Phone),
			CardID: strings.TrimSpace(req.CardID),
		}, nil

	case types.CommandDelete:
		if req.ID == nil {
			return types.Command{}, ErrCommandIDRequired
		}
		return types.Command{
			Type: types.CommandDelete,
			ID:   req.ID.Int(),
		}, nil

	case types.CommandClear:
		return types.Command{Type: types.CommandClear}, nil

	default:
		return types.Command{}, ErrUnknownCommandType
	}
}
