// Package games fetches catalog data, merges the per-game endpoints into
// one record and caches the results.
package games

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/gamedeck/internal/cache"
	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/tracing"
)

// Cache names, used as metric labels
const (
	DetailCache = "game_detail"
	ListCache   = "game_list"
)

// Options tune caching and name search enrichment.
type Options struct {
	Capacity       int
	DetailTTL      time.Duration
	ListTTL        time.Duration
	SearchPageSize int
	EnrichLimit    int // concurrent enrichment requests
	MediaPerGame   int // screenshots fetched per search result
	Clock          cache.Clock
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Capacity:       cache.DefaultCapacity,
		DetailTTL:      30 * time.Minute,
		ListTTL:        10 * time.Minute,
		SearchPageSize: 20,
		EnrichLimit:    4,
		MediaPerGame:   4,
	}
}

// Service orchestrates catalog requests and the fetch caches.
type Service struct {
	catalog domain.CatalogRepository
	details *cache.Cache[*domain.GameDetail]
	pages   *cache.Cache[domain.GamePage]
	opts    Options
	logger  *slog.Logger
}

// NewService creates a new games service.
func NewService(catalog domain.CatalogRepository, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultOptions()
	if opts.EnrichLimit <= 0 {
		opts.EnrichLimit = def.EnrichLimit
	}
	if opts.SearchPageSize <= 0 {
		opts.SearchPageSize = def.SearchPageSize
	}

	cacheOpts := func(ttl time.Duration) []cache.Option {
		return []cache.Option{
			cache.WithCapacity(opts.Capacity),
			cache.WithTTL(ttl),
			cache.WithClock(opts.Clock),
			cache.WithLogger(logger),
		}
	}

	return &Service{
		catalog: catalog,
		details: cache.New[*domain.GameDetail](DetailCache, cacheOpts(opts.DetailTTL)...),
		pages:   cache.New[domain.GamePage](ListCache, cacheOpts(opts.ListTTL)...),
		opts:    opts,
		logger:  logger,
	}
}

// GameByID returns the full record of one game: the base record merged
// with its screenshots and trailers. The three requests run in parallel and
// the first failure cancels the rest; nothing is cached unless all succeed.
func (s *Service) GameByID(ctx context.Context, id int) (detail *domain.GameDetail, err error) {
	ctx, span := tracing.StartSpan(ctx, "games.GameByID", attribute.Int("game.id", id))
	defer func() { tracing.EndSpan(span, err) }()

	detail, err = s.details.Do(ctx, strconv.Itoa(id), func(ctx context.Context) (*domain.GameDetail, error) {
		return s.fetchDetail(ctx, id)
	})
	if err != nil {
		s.logger.Error("failed to fetch game", "gameID", id, "error", err)
		return nil, err
	}
	return detail, nil
}

func (s *Service) fetchDetail(ctx context.Context, id int) (*domain.GameDetail, error) {
	var (
		base   *domain.GameDetail
		shots  []domain.Screenshot
		videos []domain.Video
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		base, err = s.catalog.Game(gctx, id)
		if err != nil {
			return fmt.Errorf("game %d: %w", id, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		shots, err = s.catalog.Screenshots(gctx, id, 0)
		if err != nil {
			return fmt.Errorf("game %d screenshots: %w", id, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		videos, err = s.catalog.Movies(gctx, id)
		if err != nil {
			return fmt.Errorf("game %d movies: %w", id, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := *base
	merged.Screenshots = shots
	merged.Videos = videos
	s.logger.Debug("fetched game", "gameID", id, "screenshots", len(shots), "videos", len(videos))
	return &merged, nil
}

// GamesByName searches the catalog by name and attaches a few screenshots
// and trailers to each result. A game whose enrichment fails keeps empty
// media; the search itself still succeeds. Results are not cached.
func (s *Service) GamesByName(ctx context.Context, name string) (results []domain.GameSummary, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	ctx, span := tracing.StartSpan(ctx, "games.GamesByName", attribute.String("search.query", name))
	defer func() { tracing.EndSpan(span, err) }()

	results, err = s.catalog.Search(ctx, name, s.opts.SearchPageSize)
	if err != nil {
		s.logger.Error("search failed", "query", name, "error", err)
		return nil, err
	}

	var g errgroup.Group
	g.SetLimit(s.opts.EnrichLimit)
	for i := range results {
		game := &results[i]
		g.Go(func() error {
			s.enrich(ctx, game)
			return nil
		})
	}
	_ = g.Wait() // enrich never fails

	s.logger.Debug("search complete", "query", name, "count", len(results))
	return results, nil
}

func (s *Service) enrich(ctx context.Context, game *domain.GameSummary) {
	shots, err := s.catalog.Screenshots(ctx, game.ID, s.opts.MediaPerGame)
	if err != nil {
		s.logger.Warn("screenshot enrichment failed", "gameID", game.ID, "error", err)
		game.Screenshots, game.Videos = []domain.Screenshot{}, []domain.Video{}
		return
	}
	videos, err := s.catalog.Movies(ctx, game.ID)
	if err != nil {
		s.logger.Warn("trailer enrichment failed", "gameID", game.ID, "error", err)
		game.Screenshots, game.Videos = []domain.Screenshot{}, []domain.Video{}
		return
	}
	game.Screenshots = shots
	game.Videos = videos
}

// FilteredGames returns one page of the catalog listing matching filters.
// Concurrent requests for the same filters and page share a single fetch.
func (s *Service) FilteredGames(ctx context.Context, filters domain.FilterSet, page int) (result domain.GamePage, err error) {
	key := CacheKey(filters, page)

	ctx, span := tracing.StartSpan(ctx, "games.FilteredGames", attribute.String("cache.key", key))
	defer func() { tracing.EndSpan(span, err) }()

	query := BuildQuery(filters, page)
	result, err = s.pages.Do(ctx, key, func(ctx context.Context) (domain.GamePage, error) {
		return s.catalog.Games(ctx, query)
	})
	if err != nil {
		s.logger.Error("failed to fetch games", "key", key, "error", err)
		return domain.GamePage{}, err
	}
	return result, nil
}

// CacheStats reports the detail and listing cache counters.
func (s *Service) CacheStats() (detail, list cache.Stats) {
	return s.details.Stats(), s.pages.Stats()
}

// InvalidateAll drops every cached record.
func (s *Service) InvalidateAll() {
	s.details.Purge()
	s.pages.Purge()
	s.logger.Info("invalidated all cache")
}
