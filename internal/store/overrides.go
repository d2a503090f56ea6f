package store

import (
	"context"
	"time"
)

// GameOverride is a time-boxed manual pin of which live event a device
// displays, superseding priority-based selection. Selection itself happens
// on the device; only the record lives here.
type GameOverride struct {
	ID          string    `json:"id,omitempty"`
	DeviceID    string    `json:"device_id"`
	Sport       string    `json:"sport"`
	GameEventID string    `json:"game_event_id"`
	Reason      string    `json:"reason,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// InsertOverride creates a game override record.
func (s *Store) InsertOverride(ctx context.Context, as Capability, o GameOverride) (*GameOverride, error) {
	var rows []GameOverride
	resp, err := s.request(as).
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(o).
		SetResult(&rows).
		Post("/game_overrides")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// ListOverrides returns the overrides for a device, newest first.
func (s *Store) ListOverrides(ctx context.Context, as Capability, deviceID string) ([]GameOverride, error) {
	var rows []GameOverride
	resp, err := s.request(as).
		SetContext(ctx).
		SetQueryParam("device_id", eq(deviceID)).
		SetQueryParam("order", "created_at.desc").
		SetResult(&rows).
		Get("/game_overrides")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteOverride removes one override record for a device.
func (s *Store) DeleteOverride(ctx context.Context, as Capability, deviceID, overrideID string) error {
	resp, err := s.request(as).
		SetContext(ctx).
		SetQueryParam("id", eq(overrideID)).
		SetQueryParam("device_id", eq(deviceID)).
		Delete("/game_overrides")
	return checkResponse(resp, err)
}
