// Package search ranks catalog search results and filters the favorites
// list as the user types.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/gamedeck/internal/domain"
)

// Rank orders games by how well their names match query. Games with equal
// scores keep their catalog order. The input slice is not modified.
func Rank(games []domain.GameSummary, query string) []domain.GameSummary {
	if len(games) == 0 {
		return games
	}

	query = strings.ToLower(strings.TrimSpace(query))

	type rankedGame struct {
		game  domain.GameSummary
		score int
	}

	ranked := make([]rankedGame, 0, len(games))
	for _, g := range games {
		ranked = append(ranked, rankedGame{game: g, score: MatchScore(g.Name, query)})
	}

	// Sort by score (lower is better)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.GameSummary, len(ranked))
	for i, r := range ranked {
		results[i] = r.game
	}
	return results
}

// MatchScore scores how well name matches a lowercase query.
// Lower score = better match
func MatchScore(name, query string) int {
	title := strings.ToLower(name)

	// Exact match is best
	if title == query {
		return 0
	}

	// Prefix match is very good
	if strings.HasPrefix(title, query) {
		return 10
	}

	// Contains match is good
	if strings.Contains(title, query) {
		return 50
	}

	// Every query rune appears in order
	if fuzzy.MatchFold(query, title) {
		return 75
	}

	return 100 + fuzzy.LevenshteinDistance(query, title)
}
