package store

import "context"

// SportEntry is the stored per-device, per-sport configuration row. At most
// one entry exists per (device_id, sport).
type SportEntry struct {
	DeviceID      string   `json:"device_id"`
	Sport         string   `json:"sport"`
	Enabled       bool     `json:"enabled"`
	Priority      int      `json:"priority"`
	FavoriteTeams []string `json:"favorite_team_references"`
}

// ListSportEntries returns the stored sport entries for a device, highest
// priority first.
func (s *Store) ListSportEntries(ctx context.Context, as Capability, deviceID string) ([]SportEntry, error) {
	var rows []SportEntry
	resp, err := s.request(as).
		SetContext(ctx).
		SetQueryParam("device_id", eq(deviceID)).
		SetQueryParam("order", "priority.asc").
		SetResult(&rows).
		Get("/device_sports")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return rows, nil
}
