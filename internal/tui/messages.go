package tui

import (
	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/state"
)

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StoreChangedMsg carries the latest store snapshot
type StoreChangedMsg struct {
	Snapshot state.Snapshot
}

// DetailLoadedMsg signals that a game's full record arrived
type DetailLoadedMsg struct {
	ID     int
	Detail *domain.GameDetail
	Err    error
}

// InsightsLoadedMsg signals that an AI analysis finished
type InsightsLoadedMsg struct {
	ID       int
	Insights *domain.Insights
	Err      error
}

// SearchTickMsg fires after the search debounce delay. It is ignored
// unless Seq is still the latest keystroke's sequence number.
type SearchTickMsg struct {
	Seq   int
	Query string
}

// FavoriteToggledMsg reports the result of a favorite toggle
type FavoriteToggledMsg struct {
	Game  domain.GameSummary
	Added bool
}

// TickMsg drives spinner animation
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
