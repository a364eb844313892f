package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/gamedeck/internal/domain"
)

func names(games []domain.GameSummary) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}

func TestRank(t *testing.T) {
	games := []domain.GameSummary{
		{ID: 1, Name: "Master Chief Collection: Halo"},
		{ID: 2, Name: "Halo Infinite"},
		{ID: 3, Name: "Fable"},
		{ID: 4, Name: "Halo"},
		{ID: 5, Name: "Halo 3"},
	}

	ranked := Rank(games, "Halo")

	assert.Equal(t, []string{
		"Halo",
		"Halo Infinite", // prefix ties keep catalog order
		"Halo 3",
		"Master Chief Collection: Halo",
		"Fable",
	}, names(ranked))
	assert.Equal(t, "Master Chief Collection: Halo", games[0].Name, "input is not reordered")
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, "halo"))
}

func TestMatchScore(t *testing.T) {
	assert.Equal(t, 0, MatchScore("Portal", "portal"))
	assert.Equal(t, 10, MatchScore("Portal 2", "portal"))
	assert.Equal(t, 50, MatchScore("Bridge Constructor Portal", "portal"))
	assert.Equal(t, 75, MatchScore("Portal Knights", "ptkn"))
	assert.Greater(t, MatchScore("Fable", "portal"), 100)
}

func TestFavoritesIndexFilter(t *testing.T) {
	idx := NewFavoritesIndex([]domain.GameSummary{
		{ID: 1, Name: "The Witcher 3: Wild Hunt"},
		{ID: 2, Name: "Grand Theft Auto V"},
		{ID: 3, Name: "Portal 2"},
	})
	require.Equal(t, 3, idx.Len())
	assert.Equal(t, "portal 2", idx.String(2))

	matches := idx.Filter("witch")
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Game.ID)
	assert.Len(t, matches[0].MatchedIndexes, 5)

	assert.Empty(t, idx.Filter("zzzz"))

	all := idx.Filter("  ")
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[1].Game.ID)
}
