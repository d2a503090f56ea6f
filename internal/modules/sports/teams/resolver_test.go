package teams

import (
	"testing"

	"github.com/boardlink/core/internal/store"
	"github.com/stretchr/testify/assert"
)

var wnbaDirectory = []store.TeamRow{
	{Sport: "wnba", ExternalID: "18", Name: "Seattle Storm", Abbreviation: "SEA"},
	{Sport: "wnba", ExternalID: "17", Name: "Las Vegas Aces", Abbreviation: "LVA"},
}

func TestResolvePrecedence(t *testing.T) {
	storm := Team{ID: "18", Name: "Seattle Storm", Abbreviation: "SEA"}

	for _, ref := range []string{"18", "SEA", "sea", "Seattle Storm", "seattle storm"} {
		assert.Equal(t, storm, Resolve(wnbaDirectory, ref), "reference %q", ref)
	}
}

func TestResolveIDBeatsAbbreviation(t *testing.T) {
	// A directory where one team's id collides with another's abbreviation:
	// the exact id match must win.
	directory := []store.TeamRow{
		{ExternalID: "SEA", Name: "Sea Dogs", Abbreviation: "SD"},
		{ExternalID: "18", Name: "Seattle Storm", Abbreviation: "SEA"},
	}
	assert.Equal(t, Team{ID: "SEA", Name: "Sea Dogs", Abbreviation: "SD"}, Resolve(directory, "SEA"))
}

func TestResolveUnknownFallsThrough(t *testing.T) {
	got := Resolve(wnbaDirectory, "ZZZ")
	assert.Equal(t, Team{ID: "ZZZ", Name: "ZZZ", Abbreviation: "ZZZ"}, got,
		"unknown references pass through unresolved instead of hard-failing")
}

func TestResolveEmptyDirectory(t *testing.T) {
	got := Resolve(nil, "Seattle Storm")
	assert.Equal(t, Team{ID: "Seattle Storm", Name: "Seattle Storm", Abbreviation: "Seattle Storm"}, got)
}
