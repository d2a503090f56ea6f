package teams

import (
	"strings"

	"github.com/boardlink/core/internal/store"
)

// Team is the canonical triple a favorite reference resolves to.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Resolve maps a loosely specified reference onto the directory. Precedence:
// exact external id, then abbreviation (case-insensitive), then display name
// (case-insensitive). An unknown reference never hard-fails: it comes back
// as a degenerate triple so the caller can see exactly what missed.
func Resolve(directory []store.TeamRow, reference string) Team {
	for _, row := range directory {
		if row.ExternalID == reference {
			return fromRow(row)
		}
	}
	for _, row := range directory {
		if strings.EqualFold(row.Abbreviation, reference) {
			return fromRow(row)
		}
	}
	for _, row := range directory {
		if strings.EqualFold(row.Name, reference) {
			return fromRow(row)
		}
	}
	return Team{ID: reference, Name: reference, Abbreviation: reference}
}

func fromRow(row store.TeamRow) Team {
	return Team{ID: row.ExternalID, Name: row.Name, Abbreviation: row.Abbreviation}
}
