package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Device is one registered display. Registration happens elsewhere; this
// subsystem only reads devices.
type Device struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	OwnerID  string     `json:"owner_id"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// AuthorizeDevice is the ownership gate. It queries the device under the
// caller's own capability, so the decision is delegated to the row-level
// policy that also protects direct data access. Zero rows means the device
// is not owned by the caller or does not exist; the caller cannot tell the
// difference and neither can we.
func (s *Store) AuthorizeDevice(ctx context.Context, caller Capability, deviceID string) (*Device, error) {
	var rows []Device
	resp, err := s.request(caller).
		SetContext(ctx).
		SetQueryParam("id", eq(deviceID)).
		SetQueryParam("select", "id,name,owner_id,last_seen").
		SetResult(&rows).
		Get("/devices")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		s.logger.Info("ownership gate denied", zap.String("device_id", deviceID))
		return nil, ErrNotOwned
	}
	return &rows[0], nil
}

// ListDevices returns the devices visible to the caller's capability.
func (s *Store) ListDevices(ctx context.Context, caller Capability) ([]Device, error) {
	var rows []Device
	resp, err := s.request(caller).
		SetContext(ctx).
		SetQueryParam("select", "id,name,owner_id,last_seen").
		SetQueryParam("order", "name.asc").
		SetResult(&rows).
		Get("/devices")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return rows, nil
}
