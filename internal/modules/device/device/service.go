// Package device exposes read-only views of the caller's registered
// displays. Registration and liveness writes happen outside this service.
package device

import (
	"context"

	"github.com/boardlink/core/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service { return &Service{store: st} }

// List returns every device the caller's row-level policy exposes.
func (s *Service) List(ctx context.Context, caller store.Capability) ([]store.Device, error) {
	return s.store.ListDevices(ctx, caller)
}

// Get returns one owned device; the lookup doubles as the ownership gate.
func (s *Service) Get(ctx context.Context, caller store.Capability, deviceID string) (*store.Device, error) {
	return s.store.AuthorizeDevice(ctx, caller, deviceID)
}
