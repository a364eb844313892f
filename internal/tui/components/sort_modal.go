package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/gamedeck/internal/tui/styles"
)

// SortModal is a small popup for choosing the listing order
type SortModal struct {
	visible bool
	cursor  int
	active  string
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{}
}

// Show displays the modal with the cursor on the active ordering
func (m *SortModal) Show(active string) {
	m.visible = true
	m.active = active
	m.cursor = max(indexOfOption(OrderingOptions, active), 0)
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, ordering).
// A non-nil ordering means the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, ordering *string) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(OrderingOptions)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		m.visible = false
		chosen := OrderingOptions[m.cursor].Value
		if chosen == m.active {
			return true, nil
		}
		return true, &chosen
	case "esc", "s", "q":
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible {
		return ""
	}

	lines := make([]string, 0, len(OrderingOptions))
	for i, opt := range OrderingOptions {
		prefix := "  "
		if opt.Value == m.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label, 20)

		style := lipgloss.NewStyle().Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		case opt.Value == m.active:
			style = lipgloss.NewStyle().Foreground(styles.Accent)
		}
		lines = append(lines, style.Render(text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
