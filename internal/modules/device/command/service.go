// Package command dispatches one-shot command envelopes to a device's
// topic. Commands skip merge and validation: nothing is persisted, the
// broadcast is the whole operation.
package command

import (
	"context"
	"fmt"

	"github.com/boardlink/core/internal/realtime"
	"github.com/boardlink/core/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	store  *store.Store
	pub    *realtime.Publisher
	logger *zap.Logger
}

func NewService(st *store.Store, pub *realtime.Publisher, logger *zap.Logger) *Service {
	return &Service{store: st, pub: pub, logger: logger}
}

// Send gates the caller, then broadcasts {type, payload} on the device's
// topic. Returns a receipt id for the caller's logs; the id is not part of
// the envelope, devices only see the command itself.
func (s *Service) Send(ctx context.Context, caller store.Capability, deviceID, cmdType string, payload map[string]interface{}) (string, error) {
	if _, err := s.store.AuthorizeDevice(ctx, caller, deviceID); err != nil {
		return "", err
	}

	envelope := realtime.NewCommand(cmdType, payload)
	if err := s.pub.Publish(ctx, deviceID, envelope); err != nil {
		// Unlike config applies there is no durable fallback here, so a
		// failed broadcast fails the request.
		return "", fmt.Errorf("command broadcast: %w", err)
	}

	receipt := uuid.NewString()
	s.logger.Info("command dispatched",
		zap.String("device_id", deviceID),
		zap.String("type", cmdType),
		zap.String("receipt", receipt),
	)
	return receipt, nil
}
