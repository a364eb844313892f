package tui

// Layout constants
const (
	// SidebarPercent is the share of the width given to the filter sidebar
	SidebarPercent = 28

	MinSidebarWidth = 24
	MinColumnWidth  = 30

	// ChromeHeight is the footer line below the content area
	ChromeHeight = 1
)

// sidebarWidth returns the sidebar width for the browse view, 0 when the
// sidebar is closed or the window is too narrow for both panes.
func (m Model) sidebarWidth() int {
	if m.ActiveView != ViewBrowse || !m.snap.SidebarOpen {
		return 0
	}
	width := max(m.Width*SidebarPercent/100, MinSidebarWidth)
	if m.Width-width < MinColumnWidth {
		return 0
	}
	return width
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight
	m.Omnibar.SetSize(m.Width, m.Height)

	switch m.ActiveView {
	case ViewDetail:
		m.Inspector.SetSize(m.Width, contentHeight)

	case ViewFavorites:
		m.Favorites.SetSize(m.Width, contentHeight)

	default:
		sidebar := m.sidebarWidth()
		if sidebar > 0 {
			m.Sidebar.SetSize(sidebar, contentHeight)
		}
		m.Browse.SetSize(m.Width-sidebar, contentHeight)
	}
}
