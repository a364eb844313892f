package domain

import (
	"context"
	"net/url"
)

// CatalogRepository provides access to the game catalog API
type CatalogRepository interface {
	// Game returns the base record of a single game.
	// Screenshots and Videos are left empty; the service merges them in.
	Game(ctx context.Context, id int) (*GameDetail, error)

	// Screenshots returns the first page of screenshots for a game
	Screenshots(ctx context.Context, id int, pageSize int) ([]Screenshot, error)

	// Movies returns the trailers published for a game
	Movies(ctx context.Context, id int) ([]Video, error)

	// Search returns games whose name matches the query
	Search(ctx context.Context, name string, pageSize int) ([]GameSummary, error)

	// Games returns one page of the filtered listing described by query
	Games(ctx context.Context, query url.Values) (GamePage, error)
}

// InsightProvider produces AI insights for a game
type InsightProvider interface {
	Analyze(ctx context.Context, game GameDetail) (*Insights, error)
}
