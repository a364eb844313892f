package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/state"
)

// Timeouts for async operations
const (
	listingTimeout  = 30 * time.Second
	searchTimeout   = 30 * time.Second
	detailTimeout   = 30 * time.Second
	insightsTimeout = 90 * time.Second

	// SearchDebounce is the pause after the last keystroke before a
	// catalog search is sent.
	SearchDebounce = 300 * time.Millisecond
)

// GameService loads full game records and owns the fetch cache.
type GameService interface {
	GameByID(ctx context.Context, id int) (*domain.GameDetail, error)
	InvalidateAll()
}

// storeCmd runs a store action with a timeout. The store publishes the
// resulting state itself, so success produces no message.
func storeCmd(timeout time.Duration, errContext string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			return ErrMsg{Err: err, Context: errContext}
		}
		return nil
	}
}

// RefreshCmd loads the current listing page
func RefreshCmd(store *state.Store) tea.Cmd {
	return storeCmd(listingTimeout, "loading games", store.Refresh)
}

// ReloadCmd drops every cached record and loads the current page fresh
func ReloadCmd(store *state.Store, games GameService) tea.Cmd {
	return storeCmd(listingTimeout, "reloading games", func(ctx context.Context) error {
		games.InvalidateAll()
		return store.Refresh(ctx)
	})
}

// ApplyFiltersCmd loads page 1 for the current filters
func ApplyFiltersCmd(store *state.Store) tea.Cmd {
	return storeCmd(listingTimeout, "applying filters", store.ApplyFilters)
}

// ResetFiltersCmd clears every filter and reloads
func ResetFiltersCmd(store *state.Store) tea.Cmd {
	return storeCmd(listingTimeout, "resetting filters", store.ResetFilters)
}

// SetOrderingCmd changes the listing order
func SetOrderingCmd(store *state.Store, ordering string) tea.Cmd {
	return storeCmd(listingTimeout, "sorting", func(ctx context.Context) error {
		return store.SetOrdering(ctx, ordering)
	})
}

// NextPageCmd loads the following page
func NextPageCmd(store *state.Store) tea.Cmd {
	return storeCmd(listingTimeout, "loading next page", store.NextPage)
}

// PreviousPageCmd loads the preceding page
func PreviousPageCmd(store *state.Store) tea.Cmd {
	return storeCmd(listingTimeout, "loading previous page", store.PreviousPage)
}

// SearchCmd runs a catalog name search
func SearchCmd(store *state.Store, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		err := store.Search(ctx, query)
		if err != nil && !errors.Is(err, context.Canceled) {
			return ErrMsg{Err: err, Context: "searching"}
		}
		return nil
	}
}

// SearchDebounceCmd waits SearchDebounce and then reports the query typed
// at keystroke seq.
func SearchDebounceCmd(seq int, query string) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return SearchTickMsg{Seq: seq, Query: query}
	})
}

// LoadDetailCmd loads a game's full record
func LoadDetailCmd(games GameService, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()

		detail, err := games.GameByID(ctx, id)
		return DetailLoadedMsg{ID: id, Detail: detail, Err: err}
	}
}

// AnalyzeCmd requests AI insights for a game
func AnalyzeCmd(provider domain.InsightProvider, game domain.GameDetail) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), insightsTimeout)
		defer cancel()

		ins, err := provider.Analyze(ctx, game)
		return InsightsLoadedMsg{ID: game.ID, Insights: ins, Err: err}
	}
}

// ToggleFavoriteCmd adds or removes a favorite
func ToggleFavoriteCmd(store *state.Store, game domain.GameSummary) tea.Cmd {
	return func() tea.Msg {
		added := store.ToggleFavorite(game)
		return FavoriteToggledMsg{Game: game, Added: added}
	}
}

// TickCmd returns a command that sends a tick after the specified duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
