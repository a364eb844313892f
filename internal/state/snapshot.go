package state

import "github.com/mmcdole/gamedeck/internal/domain"

// Snapshot is an immutable copy of the store for rendering.
type Snapshot struct {
	// Seq increases with every store change. Observers may receive
	// snapshots out of order; a higher Seq is newer.
	Seq uint64

	Page        int
	TotalPages  int // 0 until a listing has been fetched
	Loading     bool
	SidebarOpen bool
	Filters     domain.FilterSet
	Results     domain.GamePage
	Favorites   []domain.GameSummary

	SearchQuery   string
	SearchResults []domain.GameSummary
	Searching     bool

	// LastError is the error of the most recent failed fetch, cleared by
	// the next successful one.
	LastError error
}

// FavoriteCount returns the number of favorite games.
func (s Snapshot) FavoriteCount() int {
	return len(s.Favorites)
}

// HasFavorites reports whether any game is bookmarked.
func (s Snapshot) HasFavorites() bool {
	return len(s.Favorites) > 0
}

// IsFavorite reports whether the game with id is bookmarked.
func (s Snapshot) IsFavorite(id int) bool {
	return indexOf(s.Favorites, id) >= 0
}

// LastPage returns the highest page the user may navigate to.
func (s Snapshot) LastPage() int {
	return lastPage(s.TotalPages)
}
