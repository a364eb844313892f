package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/tui/styles"
)

const omnibarMaxResults = 10

// Omnibar is the catalog name search modal
type Omnibar struct {
	input     textinput.Model
	results   []domain.GameSummary
	favorites map[int]bool
	cursor    int
	visible   bool
	width     int
	height    int
	loading   bool
	prevQuery string // for change detection
}

// NewOmnibar creates a new omnibar component
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "Search games..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "› "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Omnibar{input: ti}
}

// Show makes the omnibar visible and focuses the input, keeping the last
// query and its results.
func (o *Omnibar) Show() tea.Cmd {
	o.visible = true
	return o.input.Focus()
}

// Hide hides the omnibar
func (o *Omnibar) Hide() {
	o.visible = false
	o.input.Blur()
}

func (o Omnibar) IsVisible() bool {
	return o.visible
}

// SetResults sets the ranked search results
func (o *Omnibar) SetResults(results []domain.GameSummary) {
	if !sameGames(o.results, results) {
		o.cursor = 0
	}
	o.results = results
}

// SetFavorites marks favorite results with a star
func (o *Omnibar) SetFavorites(favorites []domain.GameSummary) {
	o.favorites = make(map[int]bool, len(favorites))
	for _, g := range favorites {
		o.favorites[g.ID] = true
	}
}

func (o *Omnibar) SetLoading(loading bool) {
	o.loading = loading
}

func (o *Omnibar) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = max(modalWidth(width)-10, 10)
}

// Query returns the trimmed search query
func (o Omnibar) Query() string {
	return strings.TrimSpace(o.input.Value())
}

// QueryChanged reports whether the query changed since the last call
func (o *Omnibar) QueryChanged() bool {
	current := o.Query()
	if current != o.prevQuery {
		o.prevQuery = current
		return true
	}
	return false
}

// SelectedResult returns the highlighted result
func (o Omnibar) SelectedResult() *domain.GameSummary {
	if o.cursor >= len(o.results) {
		return nil
	}
	g := o.results[o.cursor]
	return &g
}

func (o Omnibar) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. The bool result reports that a result was
// chosen with enter.
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			o.Hide()
			return o, nil, false
		case "enter":
			return o, nil, len(o.results) > 0
		case "down", "ctrl+n":
			if o.cursor < min(len(o.results), omnibarMaxResults)-1 {
				o.cursor++
			}
			return o, nil, false
		case "up", "ctrl+p":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, false
		}
	}

	o.input, cmd = o.input.Update(msg)
	return o, cmd, false
}

func modalWidth(width int) int {
	w := width * 2 / 3
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

// View renders the component
func (o Omnibar) View() string {
	if !o.visible {
		return ""
	}
	width := modalWidth(o.width)

	var b strings.Builder
	b.WriteString(o.input.View())
	b.WriteString("\n\n")

	switch {
	case o.loading:
		b.WriteString(styles.SpinnerStyle.Render("Searching..."))
	case len(o.results) == 0 && o.Query() != "":
		b.WriteString(styles.DimStyle.Render("No results"))
	default:
		o.renderResults(&b, width)
	}

	content := lipgloss.NewStyle().Width(width - 4).Render(b.String())
	modal := styles.ModalStyle.Width(width).Render(content)

	return lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center, modal)
}

func (o Omnibar) renderResults(b *strings.Builder, width int) {
	count := min(len(o.results), omnibarMaxResults)
	for i := 0; i < count; i++ {
		game := o.results[i]

		marker := " "
		if o.favorites[game.ID] {
			marker = styles.FavoriteStyle.Render(styles.FavoriteChar)
		}

		title := game.Name
		if y := game.Year(); y > 0 {
			title = fmt.Sprintf("%s (%d)", game.Name, y)
		}
		title = styles.Truncate(title, width-22)

		style := styles.SubtitleStyle.Padding(0, 1)
		if i == o.cursor {
			style = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight).Padding(0, 1)
		}

		line := marker + " " + style.Render(title)
		if media := len(game.Screenshots) + len(game.Videos); media > 0 {
			line += " " + styles.DimBadgeStyle.Render(fmt.Sprintf("%d media", media))
		}
		if score := styles.Metacritic(game.Metacritic); score != "" {
			line += " " + score
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(o.results) > omnibarMaxResults {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.results)-omnibarMaxResults)))
	}
}
