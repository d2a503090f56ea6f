// Package token mints device-scoped credentials for the on-device agent.
// Tokens are stateless: validity is solely signature plus expiry, and there
// is no revocation short of rotating the signing secret.
package token

import (
	"context"
	"time"

	"github.com/boardlink/core/internal/pkg/jwt"
	"github.com/boardlink/core/internal/store"
)

type Service struct {
	store          *store.Store
	defaultTTLDays int
}

func NewService(st *store.Store, defaultTTLDays int) *Service {
	return &Service{store: st, defaultTTLDays: defaultTTLDays}
}

// Issue gates the caller and mints a token scoped to one device id.
func (s *Service) Issue(ctx context.Context, caller store.Capability, deviceID string, ttlDays int) (string, time.Time, error) {
	if _, err := s.store.AuthorizeDevice(ctx, caller, deviceID); err != nil {
		return "", time.Time{}, err
	}
	if ttlDays <= 0 {
		ttlDays = s.defaultTTLDays
	}
	return jwt.SignDeviceToken(deviceID, time.Duration(ttlDays)*24*time.Hour)
}
