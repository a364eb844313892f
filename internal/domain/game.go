package domain

import (
	"fmt"
	"strings"
)

// NamedRef is a catalog reference such as a platform, genre, store or developer.
type NamedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Screenshot is a single still image of a game.
type Screenshot struct {
	ID       int    `json:"id"`
	ImageURL string `json:"image"`
}

// Video is a trailer published for a game.
type Video struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Preview   string `json:"preview"`
	StreamURL string `json:"stream_url"`
}

// GameSummary is the listing representation of a game.
// Screenshots and Videos are only populated by name search enrichment.
type GameSummary struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Slug            string       `json:"slug,omitempty"`
	BackgroundImage string       `json:"background_image,omitempty"`
	Rating          float64      `json:"rating"`
	Metacritic      int          `json:"metacritic"`
	Platforms       []NamedRef   `json:"platforms,omitempty"`
	Genres          []NamedRef   `json:"genres,omitempty"`
	Released        string       `json:"released,omitempty"`
	Screenshots     []Screenshot `json:"screenshots,omitempty"`
	Videos          []Video      `json:"videos,omitempty"`
}

// Year returns the release year, or 0 when the release date is unknown.
func (g GameSummary) Year() int {
	if len(g.Released) < 4 {
		return 0
	}
	var year int
	if _, err := fmt.Sscanf(g.Released[:4], "%d", &year); err != nil {
		return 0
	}
	return year
}

// GenreNames returns the genre names joined by ", "
func (g GameSummary) GenreNames() string {
	return joinNames(g.Genres)
}

// PlatformNames returns the platform names joined by ", "
func (g GameSummary) PlatformNames() string {
	return joinNames(g.Platforms)
}

// GameDetail is the full record of one game, merged from the base record,
// its screenshots and its trailers.
type GameDetail struct {
	GameSummary
	Description    string     `json:"description"`
	DescriptionRaw string     `json:"description_raw"`
	Stores         []NamedRef `json:"stores,omitempty"`
	Website        string     `json:"website,omitempty"`
	Developers     []NamedRef `json:"developers,omitempty"`
}

// DeveloperNames returns the developer names joined by ", "
func (d GameDetail) DeveloperNames() string {
	return joinNames(d.Developers)
}

// FirstVideo returns the first trailer, or nil when the game has none.
func (d GameDetail) FirstVideo() *Video {
	if len(d.Videos) == 0 {
		return nil
	}
	return &d.Videos[0]
}

// GamePage is one page of a filtered catalog listing.
type GamePage struct {
	Results  []GameSummary `json:"results"`
	Count    int           `json:"count"`
	Next     string        `json:"next,omitempty"`
	Previous string        `json:"previous,omitempty"`
}

// HasNext reports whether the catalog advertised a following page.
func (p GamePage) HasNext() bool {
	return p.Next != ""
}

// HasPrevious reports whether the catalog advertised a preceding page.
func (p GamePage) HasPrevious() bool {
	return p.Previous != ""
}

func joinNames(refs []NamedRef) string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	return strings.Join(names, ", ")
}
