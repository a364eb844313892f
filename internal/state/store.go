// Package state holds the application state shared by every view:
// pagination, filters, favorites, the sidebar flag and in-progress fetches.
package state

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/search"
)

const (
	// MaxPage is the page ceiling used while the page count is unknown.
	MaxPage = 100

	// PageSize is the number of results per catalog listing page.
	PageSize = 20
)

// Catalog is the subset of the games service the store drives.
type Catalog interface {
	FilteredGames(ctx context.Context, filters domain.FilterSet, page int) (domain.GamePage, error)
	GamesByName(ctx context.Context, name string) ([]domain.GameSummary, error)
}

// Store is the application state. Every action runs its read-check-write
// under one lock; catalog requests run outside it.
type Store struct {
	catalog Catalog
	storage domain.Storage
	logger  *slog.Logger

	mu            sync.Mutex
	page          int
	totalPages    int
	loading       bool
	sidebarOpen   bool
	filters       domain.FilterSet
	results       domain.GamePage
	favorites     []domain.GameSummary
	searchQuery   string
	searchResults []domain.GameSummary
	searching     bool
	lastError     error

	// seq numbers published snapshots so observers can drop late ones.
	seq uint64

	// Generation counters; a response is applied only if no newer request
	// of the same kind started after it.
	listGen   uint64
	searchGen uint64

	obsMu     sync.RWMutex
	observers []Observer
}

// New creates a store and restores favorites and browse state from storage.
func New(catalog Catalog, storage domain.Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		catalog: catalog,
		storage: storage,
		logger:  logger,
		page:    1,
	}
	s.restore()
	return s
}

// Subscribe registers o for change notifications.
func (s *Store) Subscribe(o Observer) {
	s.obsMu.Lock()
	s.observers = append(s.observers, o)
	s.obsMu.Unlock()
}

func (s *Store) notify(snap Snapshot) {
	s.obsMu.RLock()
	observers := s.observers
	s.obsMu.RUnlock()
	for _, o := range observers {
		o.StateChanged(snap)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	results := s.results
	results.Results = cloneGames(s.results.Results)
	return Snapshot{
		Seq:           s.seq,
		Page:          s.page,
		TotalPages:    s.totalPages,
		Loading:       s.loading,
		SidebarOpen:   s.sidebarOpen,
		Filters:       s.filters,
		Results:       results,
		Favorites:     cloneGames(s.favorites),
		SearchQuery:   s.searchQuery,
		SearchResults: cloneGames(s.searchResults),
		Searching:     s.searching,
		LastError:     s.lastError,
	}
}

// update runs fn under the lock and notifies observers afterwards.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	s.seq++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// === Filters ===

// SetFilter changes one filter field without fetching.
func (s *Store) SetFilter(name, value string) error {
	var err error
	s.update(func() {
		var next domain.FilterSet
		next, err = s.filters.With(name, value)
		if err != nil {
			return
		}
		s.filters = next
		s.savePrefsLocked()
	})
	return err
}

// SetOrdering changes the ordering, returns to page 1 and fetches.
func (s *Store) SetOrdering(ctx context.Context, ordering string) error {
	s.update(func() {
		s.filters.Ordering = ordering
		s.page = 1
		s.savePrefsLocked()
	})
	return s.fetchPage(ctx)
}

// ApplyFilters fetches page 1 of the listing for the current filters.
func (s *Store) ApplyFilters(ctx context.Context) error {
	s.update(func() {
		s.page = 1
		s.savePrefsLocked()
	})
	return s.fetchPage(ctx)
}

// ResetFilters clears every filter and fetches page 1.
func (s *Store) ResetFilters(ctx context.Context) error {
	s.update(func() {
		s.filters = domain.FilterSet{}
		s.page = 1
		s.savePrefsLocked()
	})
	return s.fetchPage(ctx)
}

// === Pagination ===

// SetPage moves to page n, clamped to the known page range, and fetches it.
func (s *Store) SetPage(ctx context.Context, n int) error {
	s.update(func() {
		s.page = clamp(n, 1, lastPage(s.totalPages))
		s.savePrefsLocked()
	})
	return s.fetchPage(ctx)
}

// NextPage advances one page. It does nothing on the last page.
func (s *Store) NextPage(ctx context.Context) error {
	return s.step(ctx, 1)
}

// PreviousPage goes back one page. It does nothing on page 1.
func (s *Store) PreviousPage(ctx context.Context) error {
	return s.step(ctx, -1)
}

func (s *Store) step(ctx context.Context, delta int) error {
	moved := false
	s.update(func() {
		next := clamp(s.page+delta, 1, lastPage(s.totalPages))
		if next == s.page {
			return
		}
		s.page = next
		moved = true
		s.savePrefsLocked()
	})
	if !moved {
		return nil
	}
	return s.fetchPage(ctx)
}

// Refresh refetches the current page.
func (s *Store) Refresh(ctx context.Context) error {
	return s.fetchPage(ctx)
}

// fetchPage loads the listing for the current filters and page. Loading is
// set for the duration and always cleared; a failure keeps the previous
// results and records LastError.
func (s *Store) fetchPage(ctx context.Context) error {
	var (
		gen     uint64
		filters domain.FilterSet
		page    int
	)
	s.update(func() {
		s.listGen++
		gen = s.listGen
		filters, page = s.filters, s.page
		s.loading = true
	})

	result, err := s.catalog.FilteredGames(ctx, filters, page)

	stale := false
	s.update(func() {
		if gen != s.listGen {
			// A newer fetch owns the loading flag and the results.
			stale = true
			return
		}
		s.loading = false
		if err != nil {
			s.lastError = err
			return
		}
		s.lastError = nil
		s.results = result
		s.totalPages = pagesFor(result.Count)
		// The count may have shrunk under a page chosen against an older one.
		if s.page > s.totalPages {
			s.page = s.totalPages
			s.savePrefsLocked()
		}
	})

	if stale {
		s.logger.Debug("discarded stale listing", "page", page)
		return nil
	}
	if err != nil {
		s.logger.Error("listing fetch failed", "page", page, "error", err)
	}
	return err
}

// === Search ===

// Search runs a name search and stores the ranked results. An empty name
// clears the results.
func (s *Store) Search(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	var gen uint64
	s.update(func() {
		s.searchGen++
		gen = s.searchGen
		s.searchQuery = name
		s.searching = name != ""
		if name == "" {
			s.searchResults = nil
		}
	})
	if name == "" {
		return nil
	}

	results, err := s.catalog.GamesByName(ctx, name)

	stale := false
	s.update(func() {
		if gen != s.searchGen {
			stale = true
			return
		}
		s.searching = false
		if err != nil {
			s.lastError = err
			s.searchResults = nil
			return
		}
		s.lastError = nil
		s.searchResults = search.Rank(results, name)
	})

	if stale {
		s.logger.Debug("discarded stale search", "query", name)
		return nil
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("search failed", "query", name, "error", err)
	}
	return err
}

// === Favorites ===

// ToggleFavorite adds game to favorites, or removes it if already present.
// The change is persisted before returning. It reports whether the game is
// a favorite afterwards.
func (s *Store) ToggleFavorite(game domain.GameSummary) bool {
	var added bool
	s.update(func() {
		if i := indexOf(s.favorites, game.ID); i >= 0 {
			s.favorites = append(s.favorites[:i:i], s.favorites[i+1:]...)
		} else {
			s.favorites = append(s.favorites, game)
			added = true
		}
		s.saveFavoritesLocked()
	})
	s.logger.Debug("toggled favorite", "gameID", game.ID, "favorite", added)
	return added
}

// IsFavorite reports whether the game with id is bookmarked.
func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.favorites, id) >= 0
}

// Favorites returns a copy of the favorites in insertion order.
func (s *Store) Favorites() []domain.GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneGames(s.favorites)
}

// ClearFavorites removes every favorite.
func (s *Store) ClearFavorites() {
	s.update(func() {
		s.favorites = nil
		s.saveFavoritesLocked()
	})
}

// === Sidebar ===

func (s *Store) ToggleSidebar() {
	s.update(func() {
		s.sidebarOpen = !s.sidebarOpen
		s.savePrefsLocked()
	})
}

func (s *Store) OpenSidebar() {
	s.update(func() {
		s.sidebarOpen = true
		s.savePrefsLocked()
	})
}

func (s *Store) CloseSidebar() {
	s.update(func() {
		s.sidebarOpen = false
		s.savePrefsLocked()
	})
}

// Persist writes favorites and browse state to storage.
func (s *Store) Persist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveFavoritesLocked()
	s.savePrefsLocked()
}

// === helpers ===

func indexOf(games []domain.GameSummary, id int) int {
	for i, g := range games {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func cloneGames(games []domain.GameSummary) []domain.GameSummary {
	if games == nil {
		return nil
	}
	out := make([]domain.GameSummary, len(games))
	copy(out, games)
	return out
}

// pagesFor converts a result count to a page count, capped at MaxPage.
// An empty listing still has one page.
func pagesFor(count int) int {
	if count <= 0 {
		return 1
	}
	pages := (count + PageSize - 1) / PageSize
	if pages > MaxPage {
		return MaxPage
	}
	return pages
}

// lastPage treats 0 as "no listing fetched yet".
func lastPage(totalPages int) int {
	if totalPages <= 0 {
		return MaxPage
	}
	return totalPages
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
