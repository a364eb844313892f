package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/search"
	"github.com/mmcdole/gamedeck/internal/tui/styles"
)

// Layout constants for list panels
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Title line plus the "↑ more" and "↓ more" lines
	ListChromeLines = 3
)

// GameList is a scrollable list of games with an optional fuzzy filter.
type GameList struct {
	games     []domain.GameSummary
	favorites map[int]bool

	title     string
	emptyText string

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	loading      bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	index        *search.FavoritesIndex
	matches      []search.FavoriteMatch // nil when no filter query
}

// NewGameList creates an empty list with the given title
func NewGameList(title string) *GameList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &GameList{
		title:       title,
		emptyText:   "No games",
		favorites:   make(map[int]bool),
		filterInput: ti,
		maxVisible:  1,
	}
}

// SetGames replaces the list contents. The cursor is kept when the same
// games come back (a favorite toggle, a repeated snapshot) and reset
// otherwise.
func (c *GameList) SetGames(games []domain.GameSummary) {
	same := sameGames(c.games, games)
	c.games = games
	c.loading = false
	c.index = search.NewFavoritesIndex(games)
	if c.filterQuery != "" {
		c.matches = c.index.Filter(c.filterQuery)
	}
	if !same {
		c.cursor = 0
		c.offset = 0
	}
	c.clampCursor()
}

func sameGames(a, b []domain.GameSummary) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// Games returns the unfiltered contents
func (c *GameList) Games() []domain.GameSummary {
	return c.games
}

// SetFavorites marks which games are shown with a favorite star
func (c *GameList) SetFavorites(favorites []domain.GameSummary) {
	c.favorites = make(map[int]bool, len(favorites))
	for _, g := range favorites {
		c.favorites[g.ID] = true
	}
}

func (c *GameList) SetTitle(title string)     { c.title = title }
func (c *GameList) SetEmptyText(text string)  { c.emptyText = text }
func (c *GameList) SetLoading(loading bool)   { c.loading = loading }
func (c *GameList) IsLoading() bool           { return c.loading }
func (c *GameList) SetSpinnerFrame(frame int) { c.spinnerFrame = frame }
func (c *GameList) SetFocused(focused bool)   { c.focused = focused }
func (c *GameList) IsFocused() bool           { return c.focused }

func (c *GameList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *GameList) recalcMaxVisible() {
	c.maxVisible = c.height - BorderHeight - ListChromeLines
	if c.filterActive {
		c.maxVisible-- // filter bar
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

// ItemCount returns the number of visible (filtered) games
func (c *GameList) ItemCount() int {
	if c.matches != nil {
		return len(c.matches)
	}
	return len(c.games)
}

// Selected returns the game under the cursor, or nil for an empty list
func (c *GameList) Selected() *domain.GameSummary {
	if c.cursor >= c.ItemCount() {
		return nil
	}
	if c.matches != nil {
		g := c.matches[c.cursor].Game
		return &g
	}
	g := c.games[c.cursor]
	return &g
}

func (c *GameList) SelectedIndex() int {
	return c.cursor
}

func (c *GameList) SetSelectedIndex(idx int) {
	c.cursor = idx
	c.clampCursor()
}

func (c *GameList) clampCursor() {
	count := c.ItemCount()
	if c.cursor >= count {
		c.cursor = count - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.ensureVisible()
}

func (c *GameList) ensureVisible() {
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

// === Filter ===

// IsFiltering reports whether the filter bar is shown
func (c *GameList) IsFiltering() bool {
	return c.filterActive
}

// IsTyping reports whether key presses go to the filter input
func (c *GameList) IsTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// StartFilter shows the filter bar and focuses its input
func (c *GameList) StartFilter() tea.Cmd {
	c.filterActive = true
	c.recalcMaxVisible()
	return c.filterInput.Focus()
}

// ClearFilter hides the filter bar and shows every game again
func (c *GameList) ClearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.matches = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.cursor = 0
	c.offset = 0
	c.recalcMaxVisible()
}

func (c *GameList) applyFilter() {
	query := c.filterInput.Value()
	if query == c.filterQuery {
		return
	}
	c.filterQuery = query
	if strings.TrimSpace(query) == "" {
		c.matches = nil
	} else {
		if c.index == nil {
			c.index = search.NewFavoritesIndex(c.games)
		}
		c.matches = c.index.Filter(query)
	}
	c.cursor = 0
	c.offset = 0
}

// Update handles navigation and filter keys. It is a no-op unless focused.
func (c *GameList) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}
	keyMsg, isKey := msg.(tea.KeyMsg)

	// Typing into the filter
	if c.IsTyping() {
		if isKey {
			switch {
			case key.Matches(keyMsg, ListKeys.Escape):
				c.ClearFilter()
				return nil
			case key.Matches(keyMsg, ListKeys.Accept):
				// Keep the results, hand keys back to navigation
				c.filterInput.Blur()
				return nil
			case keyMsg.String() == "backspace" && c.filterInput.Value() == "":
				c.ClearFilter()
				return nil
			}
		}
		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}

	if c.filterActive {
		switch {
		case key.Matches(keyMsg, ListKeys.Escape):
			c.ClearFilter()
			return nil
		case key.Matches(keyMsg, ListKeys.Filter):
			return c.filterInput.Focus()
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, ListKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, ListKeys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, ListKeys.Home):
		c.cursor = 0
	case key.Matches(keyMsg, ListKeys.End):
		c.cursor = count - 1
	case key.Matches(keyMsg, ListKeys.HalfDown):
		c.cursor = min(c.cursor+max(c.maxVisible/2, 1), count-1)
	case key.Matches(keyMsg, ListKeys.HalfUp):
		c.cursor = max(c.cursor-max(c.maxVisible/2, 1), 0)
	}
	c.ensureVisible()
	return nil
}

// === Rendering ===

func (c *GameList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *GameList) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading && len(c.games) == 0 {
		spinner := styles.SpinnerFrames[c.spinnerFrame%len(styles.SpinnerFrames)]
		return titleLine + "\n \n" + styles.DimStyle.Render(spinner+" Loading...") + "\n "
	}

	count := c.ItemCount()
	if count == 0 {
		empty := c.emptyText
		if c.filterActive && c.filterQuery != "" {
			empty = "No matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(empty) + "\n "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)
	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(i, i == c.cursor, itemWidth))
	}

	// Always reserve the indicator lines so the layout doesn't shift
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *GameList) renderRow(i int, selected bool, width int) string {
	var (
		game    domain.GameSummary
		matched []int
	)
	if c.matches != nil {
		game, matched = c.matches[i].Game, c.matches[i].MatchedIndexes
	} else {
		game = c.games[i]
	}

	marker := styles.NotFavoriteChar
	if c.favorites[game.ID] {
		marker = styles.FavoriteChar
	}
	gold := styles.Gold

	var badge string
	var badgeFg lipgloss.Color
	if game.Metacritic > 0 {
		badge = fmt.Sprintf(" %3d", game.Metacritic)
		badgeFg = styles.MetacriticColor(game.Metacritic)
	}

	year := ""
	if y := game.Year(); y > 0 {
		year = fmt.Sprintf(" (%d)", y)
	}

	// marker(1) + space(1) + margins(2) + badge
	available := width - 4 - len(badge) - len(year)
	if available < 5 {
		available = 5
	}
	name := styles.Truncate(game.Name, available)
	if len(matched) > 0 && name == game.Name {
		name = styles.HighlightMatches(name, matched, selected)
	}

	parts := []styles.RowPart{
		{Text: marker, Foreground: &gold},
		{Text: " " + name},
		{Text: year, Foreground: ptr(styles.DimGray)},
	}
	if badge != "" {
		// Right-align the score
		used := 2 + lipgloss.Width(name) + len(year)
		if gap := width - 2 - used - len(badge); gap > 0 {
			parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", gap)})
		}
		parts = append(parts, styles.RowPart{Text: badge, Foreground: &badgeFg})
	}
	return styles.RenderListRow(parts, selected, width)
}

func (c *GameList) renderFilterBar() string {
	bar := c.filterInput.View()
	if c.filterQuery != "" {
		bar += styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.games)))
	}
	return bar
}

func ptr[T any](v T) *T { return &v }
