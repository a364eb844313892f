package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/gamedeck/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// Handle modal states
	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.State == StateConfirmClear {
		return m.renderConfirmClear()
	}

	var content string
	switch m.ActiveView {
	case ViewDetail:
		content = m.Inspector.View()

	case ViewFavorites:
		content = m.Favorites.View()

	default:
		if m.sidebarWidth() > 0 {
			content = lipgloss.JoinHorizontal(
				lipgloss.Top,
				m.Sidebar.View(),
				m.Browse.View(),
			)
		} else {
			content = m.Browse.View()
		}
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderFooter(),
	)

	// Overlay omnibar if visible
	if m.Omnibar.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Omnibar.View())
	}

	// Overlay sort modal if visible
	if m.SortModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SortModal.View())
	}

	return view
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner when loading, otherwise the status message
	var left string
	if m.snap.Loading {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading games...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	center := m.footerHints()

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// footerHints describes where the user is: the page for the browse view
// and the favorite count everywhere.
func (m Model) footerHints() string {
	favorites := styles.FavoriteStyle.Render(styles.FavoriteChar) +
		styles.DimStyle.Render(fmt.Sprintf(" %d", m.snap.FavoriteCount()))

	switch m.ActiveView {
	case ViewBrowse:
		page := styles.DimStyle.Render(fmt.Sprintf("Page %d/%d", m.snap.Page, m.snap.LastPage()))
		return page + styles.DimStyle.Render(" · ") + favorites
	case ViewFavorites:
		hint := styles.AccentStyle.Render("X") + styles.DimStyle.Render(" Clear all")
		return favorites + styles.DimStyle.Render(" · ") + hint
	default:
		hint := styles.AccentStyle.Render("a") + styles.DimStyle.Render(" Analyze")
		return favorites + styles.DimStyle.Render(" · ") + hint
	}
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      CATALOG
  j/k        Up/down               ]/n    Next page
  g/Home     First item            [/p    Previous page
  G/End      Last item             s      Sort
  Ctrl+u/d   Scroll half page      o      Toggle filters
  Enter      Open game             Tab    Filters / list
  Esc        Back / Cancel         R      Reset filters
                                   r      Reload page

SEARCH & VIEW                   FAVORITES
  /          Filter list           Space  Add / remove
  f          Search catalog        X      Clear all
  1          Browse                a      AI insights
  2          Favorites             q      Quit
                                   ?      This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderConfirmClear renders the clear favorites confirmation modal
func (m Model) renderConfirmClear() string {
	modal := fmt.Sprintf(`
         Clear Favorites?

  This removes all %d saved games.

        [Y] Yes      [N] No
`, m.snap.FavoriteCount())

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
