package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/images"
	"github.com/mmcdole/gamedeck/internal/insights"
	"github.com/mmcdole/gamedeck/internal/state"
	"github.com/mmcdole/gamedeck/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmClear
)

// View is the screen shown in the main area
type View int

const (
	ViewBrowse View = iota
	ViewFavorites
	ViewDetail
)

const spinnerInterval = 100 * time.Millisecond

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State      ApplicationState
	ActiveView View
	Ready      bool

	// backView is where esc returns to from the detail view
	backView View

	// Dependencies
	Store    *state.Store
	Games    GameService
	Insights domain.InsightProvider
	logger   *slog.Logger

	updates <-chan state.Snapshot
	snap    state.Snapshot

	// UI Components
	Browse    *components.GameList
	Favorites *components.GameList
	Sidebar   components.FilterSidebar
	SortModal components.SortModal
	Omnibar   components.Omnibar
	Inspector components.Inspector

	sidebarFocused bool

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int

	// searchSeq numbers omnibar keystrokes for the debounce
	searchSeq int
}

// NewModel creates a new application model and subscribes it to store.
func NewModel(
	store *state.Store,
	games GameService,
	provider domain.InsightProvider,
	optimizer *images.Optimizer,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	browse := components.NewGameList("Games")
	browse.SetFocused(true)
	browse.SetLoading(true)
	favorites := components.NewGameList("Favorites")
	favorites.SetEmptyText("No favorites yet. Press space on a game to add it.")

	m := Model{
		State:      StateBrowsing,
		ActiveView: ViewBrowse,
		Store:      store,
		Games:      games,
		Insights:   provider,
		logger:     logger,
		updates:    subscribe(store),
		Browse:     browse,
		Favorites:  favorites,
		Sidebar:    components.NewFilterSidebar(time.Now()),
		SortModal:  components.NewSortModal(),
		Omnibar:    components.NewOmnibar(),
		Inspector:  components.NewInspector(optimizer),
	}
	m.applySnapshot(store.Snapshot())
	return m
}

// Init starts the store listener, loads the restored page and starts the
// spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForStoreCmd(m.updates),
		RefreshCmd(m.Store),
		TickCmd(spinnerInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.Browse.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(spinnerInterval)

	case StoreChangedMsg:
		m.applySnapshot(msg.Snapshot)
		return m, WaitForStoreCmd(m.updates)

	case SearchTickMsg:
		if msg.Seq != m.searchSeq {
			// A newer keystroke owns the search
			return m, nil
		}
		return m, SearchCmd(m.Store, msg.Query)

	case DetailLoadedMsg:
		if m.ActiveView != ViewDetail || msg.ID != m.Inspector.GameID() {
			return m, nil
		}
		if msg.Err != nil {
			m.Inspector.SetError(msg.Err)
			m.logger.Error("detail load failed", "gameID", msg.ID, "error", msg.Err)
			return m, nil
		}
		m.Inspector.SetDetail(msg.Detail)
		return m, nil

	case InsightsLoadedMsg:
		if msg.ID != m.Inspector.GameID() {
			return m, nil
		}
		if msg.Err != nil {
			m.Inspector.SetInsightsError(insightsErrorText(msg.Err))
			return m, nil
		}
		m.Inspector.SetInsights(msg.Insights)
		return m, nil

	case FavoriteToggledMsg:
		if msg.Added {
			m.StatusMsg = "Added to favorites: " + msg.Game.Name
		} else {
			m.StatusMsg = "Removed from favorites: " + msg.Game.Name
		}
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Blink and other input messages for the omnibar
	if m.Omnibar.IsVisible() {
		var cmd tea.Cmd
		m.Omnibar, cmd, _ = m.Omnibar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// applySnapshot pushes store state into the components.
func (m *Model) applySnapshot(s state.Snapshot) {
	m.snap = s

	m.Browse.SetGames(s.Results.Results)
	m.Browse.SetLoading(s.Loading)
	m.Browse.SetFavorites(s.Favorites)
	m.Browse.SetTitle(m.browseTitle())
	if s.LastError != nil && len(s.Results.Results) == 0 {
		m.Browse.SetEmptyText("Could not load games: " + s.LastError.Error())
	} else {
		m.Browse.SetEmptyText("No games match these filters")
	}

	m.Favorites.SetGames(s.Favorites)
	m.Favorites.SetFavorites(s.Favorites)
	m.Favorites.SetTitle(fmt.Sprintf("Favorites (%d)", s.FavoriteCount()))

	m.Sidebar.SetFilters(s.Filters)

	m.Omnibar.SetFavorites(s.Favorites)
	if s.SearchQuery == m.Omnibar.Query() {
		m.Omnibar.SetResults(s.SearchResults)
		m.Omnibar.SetLoading(s.Searching)
	}

	m.Inspector.SetFavorite(s.IsFavorite(m.Inspector.GameID()))

	// Sidebar visibility is persisted state; it changes the layout
	if !s.SidebarOpen && m.sidebarFocused {
		m.focusList()
	}
	m.updateLayout()
}

func (m Model) browseTitle() string {
	title := "Games"
	if m.snap.Results.Count > 0 {
		title = fmt.Sprintf("Games · %d results", m.snap.Results.Count)
	}
	return title
}

// openDetail shows game in the detail view and starts loading its record.
func (m Model) openDetail(game domain.GameSummary) (Model, tea.Cmd) {
	if m.ActiveView != ViewDetail {
		m.backView = m.ActiveView
	}
	m.ActiveView = ViewDetail
	m.Inspector.Show(game)
	m.Inspector.SetFavorite(m.snap.IsFavorite(game.ID))
	m.updateLayout()
	return m, LoadDetailCmd(m.Games, game.ID)
}

func (m Model) closeDetail() Model {
	m.ActiveView = m.backView
	m.updateLayout()
	return m
}

// activeList returns the list shown in the current view, or nil.
func (m Model) activeList() *components.GameList {
	switch m.ActiveView {
	case ViewBrowse:
		return m.Browse
	case ViewFavorites:
		return m.Favorites
	}
	return nil
}

func (m *Model) focusList() {
	m.sidebarFocused = false
	m.Sidebar.SetFocused(false)
	m.Browse.SetFocused(m.ActiveView == ViewBrowse)
	m.Favorites.SetFocused(m.ActiveView == ViewFavorites)
}

func (m *Model) focusSidebar() {
	m.sidebarFocused = true
	m.Sidebar.SetFocused(true)
	m.Browse.SetFocused(false)
	m.Favorites.SetFocused(false)
}

func insightsErrorText(err error) string {
	var cfgErr *insights.ConfigError
	var parseErr *insights.ParseError
	switch {
	case errors.As(err, &cfgErr):
		return "Insights are disabled. Set " + cfgErr.Missing + " to enable them."
	case errors.As(err, &parseErr):
		return "The insight provider returned an unreadable answer."
	default:
		return "Insights failed: " + err.Error()
	}
}
