package components

import (
	"strconv"

	"github.com/mmcdole/gamedeck/internal/domain"
)

// Option is one selectable value of a filter field. An empty Value means
// "no constraint".
type Option struct {
	Label string
	Value string
}

var anyOption = Option{Label: "Any", Value: ""}

// FirstYear is the oldest release year offered by the year filter.
const FirstYear = 1980

var genreOptions = []Option{
	anyOption,
	{"Action", "action"},
	{"Adventure", "adventure"},
	{"RPG", "role-playing-games-rpg"},
	{"Shooter", "shooter"},
	{"Strategy", "strategy"},
	{"Puzzle", "puzzle"},
	{"Indie", "indie"},
	{"Platformer", "platformer"},
	{"Racing", "racing"},
	{"Simulation", "simulation"},
	{"Sports", "sports"},
	{"Fighting", "fighting"},
	{"Arcade", "arcade"},
	{"Casual", "casual"},
	{"Family", "family"},
	{"MMO", "massively-multiplayer"},
	{"Board Games", "board-games"},
	{"Card", "card"},
	{"Educational", "educational"},
}

// Platform filter values are catalog platform IDs.
var platformOptions = []Option{
	anyOption,
	{"PC", "4"},
	{"PlayStation 5", "187"},
	{"PlayStation 4", "18"},
	{"Xbox Series S/X", "186"},
	{"Xbox One", "1"},
	{"Nintendo Switch", "7"},
	{"macOS", "5"},
	{"Linux", "6"},
	{"iOS", "3"},
	{"Android", "21"},
}

var tagOptions = []Option{
	anyOption,
	{"Singleplayer", "singleplayer"},
	{"Multiplayer", "multiplayer"},
	{"Co-op", "co-op"},
	{"Open World", "open-world"},
	{"Story Rich", "story-rich"},
	{"First-Person", "first-person"},
	{"Third Person", "third-person"},
	{"Atmospheric", "atmospheric"},
	{"Horror", "horror"},
	{"Sci-fi", "sci-fi"},
	{"Fantasy", "fantasy"},
	{"Pixel Graphics", "pixel-graphics"},
}

var developerOptions = []Option{
	anyOption,
	{"Valve", "valve-software"},
	{"Rockstar Games", "rockstar-games"},
	{"CD PROJEKT RED", "cd-projekt-red"},
	{"Bethesda", "bethesda-softworks"},
	{"FromSoftware", "fromsoftware"},
	{"Naughty Dog", "naughty-dog"},
	{"Nintendo", "nintendo"},
	{"Ubisoft", "ubisoft"},
	{"BioWare", "bioware"},
	{"Square Enix", "square-enix"},
}

// OrderingOptions are the listing orders. The empty value is the catalog
// default (by metacritic).
var OrderingOptions = []Option{
	{"Relevance", ""},
	{"Date added", "-added"},
	{"Name", "name"},
	{"Release date", "-released"},
	{"Rating", "-rating"},
	{"Metacritic", "-metacritic"},
}

// yearOptions lists "Any" then every year from currentYear down to FirstYear.
func yearOptions(currentYear int) []Option {
	opts := []Option{anyOption}
	for y := currentYear; y >= FirstYear; y-- {
		s := strconv.Itoa(y)
		opts = append(opts, Option{Label: s, Value: s})
	}
	return opts
}

// sidebarFields are the filter fields shown in the sidebar; ordering has
// its own modal.
var sidebarFields = []string{
	domain.FilterYear,
	domain.FilterGenre,
	domain.FilterPlatform,
	domain.FilterTag,
	domain.FilterDeveloper,
}

func fieldLabel(field string) string {
	switch field {
	case domain.FilterYear:
		return "Year"
	case domain.FilterGenre:
		return "Genre"
	case domain.FilterPlatform:
		return "Platform"
	case domain.FilterTag:
		return "Tag"
	case domain.FilterDeveloper:
		return "Developer"
	case domain.FilterOrdering:
		return "Order"
	}
	return field
}

// OptionLabel returns the display label of value within opts, or value
// itself when it is not a known option.
func OptionLabel(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func indexOfOption(opts []Option, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return -1
}
