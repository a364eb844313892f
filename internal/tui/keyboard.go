package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/gamedeck/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Store.Persist()
		return m, tea.Quit
	}

	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmClear:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			m.Store.ClearFavorites()
			m.Favorites.ClearFilter()
			return m, func() tea.Msg { return StatusMsg{Message: "Favorites cleared"} }
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// A list taking filter input gets every key
	if list := m.activeList(); list != nil && list.IsTyping() {
		return m, list.Update(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit) && m.ActiveView != ViewDetail:
		m.Store.Persist()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.GlobalSearch):
		m.Omnibar.SetSize(m.Width, m.Height)
		return m, m.Omnibar.Show()
	}

	switch m.ActiveView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// routeToModal sends keys to the omnibar or sort modal when one is open.
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.SortModal.IsVisible() {
		_, ordering := m.SortModal.HandleKey(msg.String())
		if ordering != nil {
			return true, m, SetOrderingCmd(m.Store, *ordering)
		}
		return true, m, nil
	}

	if m.Omnibar.IsVisible() {
		var (
			cmd    tea.Cmd
			chosen bool
		)
		m.Omnibar, cmd, chosen = m.Omnibar.Update(msg)
		if chosen {
			game := m.Omnibar.SelectedResult()
			m.Omnibar.Hide()
			if game != nil {
				next, detailCmd := m.openDetail(*game)
				return true, next, detailCmd
			}
			return true, m, nil
		}
		if m.Omnibar.QueryChanged() {
			m.searchSeq++
			query := m.Omnibar.Query()
			if query == "" {
				// Clearing needs no debounce
				return true, m, tea.Batch(cmd, SearchCmd(m.Store, ""))
			}
			m.Omnibar.SetLoading(true)
			return true, m, tea.Batch(cmd, SearchDebounceCmd(m.searchSeq, query))
		}
		return true, m, cmd
	}

	return false, m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.activeList()

	if m.sidebarFocused {
		handled, change := m.Sidebar.HandleKey(msg.String())
		if change != nil {
			if err := m.Store.SetFilter(change.Field, change.Value); err != nil {
				return m, func() tea.Msg { return ErrMsg{Err: err, Context: "setting filter"} }
			}
			return m, nil
		}
		if handled {
			return m, nil
		}
		if key.Matches(msg, Keys.Enter) {
			return m, ApplyFiltersCmd(m.Store)
		}
	}

	switch {
	case key.Matches(msg, Keys.Browse):
		m.ActiveView = ViewBrowse
		m.focusList()
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Favorites):
		m.ActiveView = ViewFavorites
		m.focusList()
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.ToggleSidebar):
		if m.ActiveView != ViewBrowse {
			return m, nil
		}
		if m.snap.SidebarOpen {
			m.Store.CloseSidebar()
			m.focusList()
		} else {
			m.Store.OpenSidebar()
			m.focusSidebar()
		}
		return m, nil

	case key.Matches(msg, Keys.Tab):
		if m.ActiveView != ViewBrowse || !m.snap.SidebarOpen {
			return m, nil
		}
		if m.sidebarFocused {
			m.focusList()
		} else {
			m.focusSidebar()
		}
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if list != nil && list.IsFiltering() {
			list.ClearFilter()
			return m, nil
		}
		if m.sidebarFocused {
			m.focusList()
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if list != nil && !m.sidebarFocused {
			if list.IsFiltering() {
				return m, list.Update(msg)
			}
			return m, list.StartFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Sort):
		if m.ActiveView == ViewBrowse {
			m.SortModal.Show(m.snap.Filters.Ordering)
		}
		return m, nil

	case key.Matches(msg, Keys.NextPage):
		if m.ActiveView == ViewBrowse {
			return m, NextPageCmd(m.Store)
		}
		return m, nil

	case key.Matches(msg, Keys.PrevPage):
		if m.ActiveView == ViewBrowse {
			return m, PreviousPageCmd(m.Store)
		}
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		if m.ActiveView == ViewBrowse {
			return m, ReloadCmd(m.Store, m.Games)
		}
		return m, nil

	case key.Matches(msg, Keys.ResetFilters):
		if m.ActiveView == ViewBrowse {
			return m, ResetFiltersCmd(m.Store)
		}
		return m, nil

	case key.Matches(msg, Keys.ClearFavorites):
		if m.ActiveView == ViewFavorites && m.snap.HasFavorites() {
			m.State = StateConfirmClear
		}
		return m, nil

	case key.Matches(msg, Keys.Favorite):
		if list != nil && !m.sidebarFocused {
			if game := list.Selected(); game != nil {
				return m, ToggleFavoriteCmd(m.Store, *game)
			}
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if list != nil && !m.sidebarFocused {
			if game := list.Selected(); game != nil {
				return m.openDetail(*game)
			}
		}
		return m, nil
	}

	if list != nil && !m.sidebarFocused {
		return m, list.Update(msg)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back), key.Matches(msg, Keys.Quit):
		return m.closeDetail(), nil

	case key.Matches(msg, Keys.Down):
		m.Inspector.ScrollDown(1)
	case key.Matches(msg, Keys.Up):
		m.Inspector.ScrollUp(1)
	case msg.String() == "ctrl+d", msg.String() == "pgdown":
		m.Inspector.ScrollDown(m.Height / 2)
	case msg.String() == "ctrl+u", msg.String() == "pgup":
		m.Inspector.ScrollUp(m.Height / 2)

	case key.Matches(msg, Keys.Favorite):
		game := m.Inspector.Detail()
		if game == nil {
			return m, nil
		}
		return m, ToggleFavoriteCmd(m.Store, game.GameSummary)

	case key.Matches(msg, Keys.Analyze):
		detail := m.Inspector.Detail()
		if detail == nil || m.Inspector.InsightsStatus() == components.InsightsLoading {
			return m, nil
		}
		m.Inspector.SetInsightsLoading()
		return m, AnalyzeCmd(m.Insights, *detail)
	}
	return m, nil
}
