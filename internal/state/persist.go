package state

import "github.com/mmcdole/gamedeck/internal/domain"

// persistedPrefs is the value stored under domain.StorageKeyGameStore.
type persistedPrefs struct {
	Filters     domain.FilterSet `json:"filters"`
	Page        int              `json:"page"`
	SidebarOpen bool             `json:"sidebarOpen"`
}

// encodePrefs extracts the persisted browse state. It has no side effects.
func encodePrefs(filters domain.FilterSet, page int, sidebarOpen bool) persistedPrefs {
	return persistedPrefs{Filters: filters, Page: page, SidebarOpen: sidebarOpen}
}

// encodeFavorites returns the favorites as stored: listing fields only.
// Search enrichment media is dropped so stored records stay small.
func encodeFavorites(favorites []domain.GameSummary) []domain.GameSummary {
	out := make([]domain.GameSummary, len(favorites))
	for i, g := range favorites {
		g.Screenshots = nil
		g.Videos = nil
		out[i] = g
	}
	return out
}

// restore loads persisted favorites and browse state into s. Unreadable
// values are logged and skipped.
func (s *Store) restore() {
	var favorites []domain.GameSummary
	ok, err := s.storage.Load(domain.StorageKeyFavorites, &favorites)
	switch {
	case err != nil:
		s.logger.Warn("failed to load favorites", "error", err)
	case ok:
		s.favorites = dedupeFavorites(favorites)
	}

	var prefs persistedPrefs
	ok, err = s.storage.Load(domain.StorageKeyGameStore, &prefs)
	switch {
	case err != nil:
		s.logger.Warn("failed to load browse state", "error", err)
	case ok:
		s.filters = prefs.Filters
		s.page = clamp(prefs.Page, 1, MaxPage)
		s.sidebarOpen = prefs.SidebarOpen
	}
}

// savePrefsLocked writes browse state. Caller holds s.mu.
func (s *Store) savePrefsLocked() {
	prefs := encodePrefs(s.filters, s.page, s.sidebarOpen)
	if err := s.storage.Save(domain.StorageKeyGameStore, prefs); err != nil {
		s.logger.Error("failed to save browse state", "error", err)
	}
}

// saveFavoritesLocked writes the favorites list. Caller holds s.mu.
func (s *Store) saveFavoritesLocked() {
	if len(s.favorites) == 0 {
		if err := s.storage.Delete(domain.StorageKeyFavorites); err != nil {
			s.logger.Error("failed to clear favorites", "error", err)
		}
		return
	}
	if err := s.storage.Save(domain.StorageKeyFavorites, encodeFavorites(s.favorites)); err != nil {
		s.logger.Error("failed to save favorites", "error", err)
	}
}

func dedupeFavorites(in []domain.GameSummary) []domain.GameSummary {
	seen := make(map[int]bool, len(in))
	out := make([]domain.GameSummary, 0, len(in))
	for _, g := range in {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		out = append(out, g)
	}
	return out
}
