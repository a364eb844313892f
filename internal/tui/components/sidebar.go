package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/tui/styles"
)

// FilterChange is a filter edit chosen in the sidebar
type FilterChange struct {
	Field string
	Value string
}

// FilterSidebar shows the filter fields and cycles their values. It only
// reports edits; the caller writes them to the store.
type FilterSidebar struct {
	filters domain.FilterSet
	options map[string][]Option
	cursor  int
	width   int
	height  int
	focused bool
}

// NewFilterSidebar creates the sidebar with years up to now's year
func NewFilterSidebar(now time.Time) FilterSidebar {
	return FilterSidebar{
		options: map[string][]Option{
			domain.FilterYear:      yearOptions(now.Year()),
			domain.FilterGenre:     genreOptions,
			domain.FilterPlatform:  platformOptions,
			domain.FilterTag:       tagOptions,
			domain.FilterDeveloper: developerOptions,
		},
	}
}

// SetFilters updates the values shown
func (s *FilterSidebar) SetFilters(f domain.FilterSet) {
	s.filters = f
}

func (s *FilterSidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *FilterSidebar) SetFocused(focused bool) { s.focused = focused }
func (s FilterSidebar) IsFocused() bool          { return s.focused }

// SelectedField returns the field under the cursor
func (s FilterSidebar) SelectedField() string {
	return sidebarFields[s.cursor]
}

// HandleKey processes a key press and returns the edit it produced, if any.
func (s *FilterSidebar) HandleKey(k string) (handled bool, change *FilterChange) {
	if !s.focused {
		return false, nil
	}

	switch k {
	case "j", "down":
		if s.cursor < len(sidebarFields)-1 {
			s.cursor++
		}
		return true, nil
	case "k", "up":
		if s.cursor > 0 {
			s.cursor--
		}
		return true, nil
	case "l", "right":
		return true, s.cycle(1)
	case "h", "left":
		return true, s.cycle(-1)
	case "x", "delete":
		field := s.SelectedField()
		if v, _ := s.filters.Field(field); v == "" {
			return true, nil
		}
		return true, &FilterChange{Field: field, Value: ""}
	}
	return false, nil
}

// cycle moves the selected field dir steps through its options, wrapping.
func (s *FilterSidebar) cycle(dir int) *FilterChange {
	field := s.SelectedField()
	opts := s.options[field]
	if len(opts) == 0 {
		return nil
	}
	current, _ := s.filters.Field(field)
	i := indexOfOption(opts, current)
	if i < 0 {
		i = 0
	}
	next := (i + dir + len(opts)) % len(opts)
	return &FilterChange{Field: field, Value: opts[next].Value}
}

// View renders the sidebar
func (s FilterSidebar) View() string {
	style := styles.InactiveBorder
	if s.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	inner := max(s.width-frameW, 10)

	var b strings.Builder
	b.WriteString(styles.AccentStyle.Render("Filters"))
	b.WriteString("\n\n")

	for i, field := range sidebarFields {
		value, _ := s.filters.Field(field)
		label := OptionLabel(s.options[field], value)

		selected := s.focused && i == s.cursor
		valueFg := styles.LightGray
		if value != "" {
			valueFg = styles.Gold
		}
		parts := []styles.RowPart{
			{Text: styles.Pad(fieldLabel(field), 10)},
			{Text: styles.Truncate(label, inner-14), Foreground: &valueFg},
		}
		b.WriteString(styles.RenderListRow(parts, selected, inner))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	order := OptionLabel(OrderingOptions, s.filters.Ordering)
	b.WriteString(styles.DimStyle.Render("Order: ") + styles.SubtitleStyle.Render(order))
	b.WriteString("\n\n")
	if s.focused {
		b.WriteString(styles.DimStyle.Render("h/l change · x clear\nenter apply · R reset"))
	}

	return style.
		Width(max(s.width-frameW, 0)).
		Height(max(s.height-frameH, 0)).
		Render(lipgloss.NewStyle().MaxWidth(inner).Render(b.String()))
}
