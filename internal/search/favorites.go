package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/gamedeck/internal/domain"
)

// FavoritesIndex implements sahilm/fuzzy.Source over the favorites list
type FavoritesIndex struct {
	games      []domain.GameSummary
	lowerNames []string // Pre-computed lowercase names
}

// NewFavoritesIndex builds an index over games.
func NewFavoritesIndex(games []domain.GameSummary) *FavoritesIndex {
	idx := &FavoritesIndex{
		games:      games,
		lowerNames: make([]string, len(games)),
	}
	for i, g := range games {
		idx.lowerNames[i] = strings.ToLower(g.Name)
	}
	return idx
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *FavoritesIndex) String(i int) string { return idx.lowerNames[i] }

// Len returns the number of games (implements fuzzy.Source)
func (idx *FavoritesIndex) Len() int { return len(idx.games) }

// FavoriteMatch is a filtered favorite with the matched rune positions of
// its name, for highlighting.
type FavoriteMatch struct {
	Game           domain.GameSummary
	MatchedIndexes []int
}

// Filter returns the favorites matching query, best first. An empty query
// returns every favorite in its original order.
func (idx *FavoritesIndex) Filter(query string) []FavoriteMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]FavoriteMatch, len(idx.games))
		for i, g := range idx.games {
			out[i] = FavoriteMatch{Game: g}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, idx)
	out := make([]FavoriteMatch, len(matches))
	for i, m := range matches {
		out[i] = FavoriteMatch{
			Game:           idx.games[m.Index],
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return out
}
