package store

import "context"

// TeamRow is one team directory catalog entry for a sport. The directory is
// seeded out-of-band and read-only here.
type TeamRow struct {
	Sport        string `json:"sport"`
	ExternalID   string `json:"external_id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// ListTeams returns the team directory for one sport.
func (s *Store) ListTeams(ctx context.Context, as Capability, sport string) ([]TeamRow, error) {
	var rows []TeamRow
	resp, err := s.request(as).
		SetContext(ctx).
		SetQueryParam("sport", eq(sport)).
		SetQueryParam("order", "name.asc").
		SetResult(&rows).
		Get("/teams")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return rows, nil
}
