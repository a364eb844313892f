package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/gamedeck/internal/domain"
)

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func games(names ...string) []domain.GameSummary {
	out := make([]domain.GameSummary, len(names))
	for i, n := range names {
		out[i] = domain.GameSummary{ID: i + 1, Name: n}
	}
	return out
}

func newList(t *testing.T, g []domain.GameSummary) *GameList {
	t.Helper()
	l := NewGameList("Games")
	l.SetFocused(true)
	l.SetSize(80, 30)
	l.SetGames(g)
	return l
}

func TestGameListNavigation(t *testing.T) {
	l := newList(t, games("Portal", "Portal 2", "Half-Life"))

	l.Update(press("j"))
	l.Update(press("j"))
	l.Update(press("j"))
	assert.Equal(t, 2, l.SelectedIndex())

	l.Update(press("g"))
	assert.Equal(t, 0, l.SelectedIndex())

	l.Update(press("G"))
	require.NotNil(t, l.Selected())
	assert.Equal(t, "Half-Life", l.Selected().Name)
}

func TestGameListIgnoresKeysWhenUnfocused(t *testing.T) {
	l := newList(t, games("Portal", "Portal 2"))
	l.SetFocused(false)

	l.Update(press("j"))
	assert.Equal(t, 0, l.SelectedIndex())
}

func TestGameListKeepsCursorForSameGames(t *testing.T) {
	g := games("Portal", "Portal 2", "Half-Life")
	l := newList(t, g)
	l.Update(press("j"))

	// Same IDs, e.g. after a favorite toggle
	l.SetGames(games("Portal", "Portal 2", "Half-Life"))
	assert.Equal(t, 1, l.SelectedIndex())

	l.SetGames(games("Doom", "Quake"))
	assert.Equal(t, 0, l.SelectedIndex())
}

func TestGameListFilter(t *testing.T) {
	l := newList(t, games("The Legend of Zelda", "Portal", "Zelda II"))

	l.StartFilter()
	assert.True(t, l.IsTyping())
	for _, r := range "zel" {
		l.Update(press(string(r)))
	}
	assert.Equal(t, 2, l.ItemCount())

	// Enter keeps the results and returns keys to navigation
	l.Update(press("enter"))
	assert.False(t, l.IsTyping())
	assert.True(t, l.IsFiltering())
	assert.Equal(t, 2, l.ItemCount())

	l.Update(press("esc"))
	assert.False(t, l.IsFiltering())
	assert.Equal(t, 3, l.ItemCount())
}

func TestGameListEmpty(t *testing.T) {
	l := newList(t, nil)
	l.SetEmptyText("Nothing here")

	assert.Nil(t, l.Selected())
	assert.Contains(t, l.View(), "Nothing here")
}

func TestFilterSidebarCycles(t *testing.T) {
	s := NewFilterSidebar(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	handled, _ := s.HandleKey("l")
	assert.False(t, handled, "unfocused sidebar ignores keys")

	s.SetFocused(true)
	_, change := s.HandleKey("l")
	require.NotNil(t, change)
	assert.Equal(t, FilterChange{Field: domain.FilterYear, Value: "2024"}, *change)

	s.SetFilters(domain.FilterSet{Year: "2024"})
	_, change = s.HandleKey("l")
	require.NotNil(t, change)
	assert.Equal(t, "2023", change.Value)

	// Backwards from "Any" wraps to the oldest year
	s.SetFilters(domain.FilterSet{})
	_, change = s.HandleKey("h")
	require.NotNil(t, change)
	assert.Equal(t, "1980", change.Value)
}

func TestFilterSidebarClear(t *testing.T) {
	s := NewFilterSidebar(time.Now())
	s.SetFocused(true)

	s.HandleKey("j")
	assert.Equal(t, domain.FilterGenre, s.SelectedField())

	handled, change := s.HandleKey("x")
	assert.True(t, handled)
	assert.Nil(t, change, "clearing an empty field is a no-op")

	s.SetFilters(domain.FilterSet{Genre: "action"})
	_, change = s.HandleKey("x")
	require.NotNil(t, change)
	assert.Equal(t, FilterChange{Field: domain.FilterGenre, Value: ""}, *change)
}

func TestSortModal(t *testing.T) {
	m := NewSortModal()

	handled, _ := m.HandleKey("enter")
	assert.False(t, handled)

	m.Show("")
	m.HandleKey("j")
	handled, ordering := m.HandleKey("enter")
	assert.True(t, handled)
	require.NotNil(t, ordering)
	assert.Equal(t, "-added", *ordering)
	assert.False(t, m.IsVisible())

	// Confirming the active ordering changes nothing
	m.Show("-added")
	_, ordering = m.HandleKey("enter")
	assert.Nil(t, ordering)

	m.Show("")
	m.HandleKey("esc")
	assert.False(t, m.IsVisible())
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "PC", OptionLabel(platformOptions, "4"))
	assert.Equal(t, "Any", OptionLabel(platformOptions, ""))
	assert.Equal(t, "999", OptionLabel(platformOptions, "999"))
}

func TestYearOptions(t *testing.T) {
	opts := yearOptions(1982)
	assert.Equal(t, []Option{
		{Label: "Any", Value: ""},
		{Label: "1982", Value: "1982"},
		{Label: "1981", Value: "1981"},
		{Label: "1980", Value: "1980"},
	}, opts)
}
