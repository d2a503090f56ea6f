package store

import (
	"context"
	"time"
)

// ConfigVersion is one immutable full configuration document for a device.
// Versions are append-only; "current" is the most recently created row.
type ConfigVersion struct {
	ID        string                 `json:"id,omitempty"`
	DeviceID  string                 `json:"device_id"`
	Content   map[string]interface{} `json:"content"`
	Source    string                 `json:"source"`
	Author    string                 `json:"author"`
	CreatedAt time.Time              `json:"created_at,omitempty"`
}

// LatestConfig returns the newest configuration version for a device, or
// nil when the device has never been configured.
func (s *Store) LatestConfig(ctx context.Context, as Capability, deviceID string) (*ConfigVersion, error) {
	var rows []ConfigVersion
	resp, err := s.request(as).
		SetContext(ctx).
		SetQueryParam("device_id", eq(deviceID)).
		SetQueryParam("order", "created_at.desc").
		SetQueryParam("limit", "1").
		SetResult(&rows).
		Get("/device_configs")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// InsertConfig appends a new configuration version. Exactly one insert per
// apply request; past versions are never mutated.
func (s *Store) InsertConfig(ctx context.Context, as Capability, version ConfigVersion) (*ConfigVersion, error) {
	var rows []ConfigVersion
	resp, err := s.request(as).
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(version).
		SetResult(&rows).
		Post("/device_configs")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
