// Package override manages time-boxed manual pins of which live event a
// device displays. Only the records live here; the device's own selection
// logic consumes them.
package override

import (
	"context"
	"errors"
	"time"

	"github.com/boardlink/core/internal/store"
)

var errExpiryInPast = errors.New("expires_at must be in the future")

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service { return &Service{store: st} }

// Create gates the caller and inserts the override record.
func (s *Service) Create(ctx context.Context, caller store.Capability, userID string, o store.GameOverride) (*store.GameOverride, error) {
	if _, err := s.store.AuthorizeDevice(ctx, caller, o.DeviceID); err != nil {
		return nil, err
	}
	if !o.ExpiresAt.After(time.Now()) {
		return nil, errExpiryInPast
	}
	o.CreatedBy = userID
	return s.store.InsertOverride(ctx, s.store.Service(), o)
}

// List gates the caller and returns the device's override records.
func (s *Service) List(ctx context.Context, caller store.Capability, deviceID string) ([]store.GameOverride, error) {
	if _, err := s.store.AuthorizeDevice(ctx, caller, deviceID); err != nil {
		return nil, err
	}
	return s.store.ListOverrides(ctx, s.store.Service(), deviceID)
}

// Delete gates the caller and removes one override record.
func (s *Service) Delete(ctx context.Context, caller store.Capability, deviceID, overrideID string) error {
	if _, err := s.store.AuthorizeDevice(ctx, caller, deviceID); err != nil {
		return err
	}
	return s.store.DeleteOverride(ctx, s.store.Service(), deviceID, overrideID)
}
