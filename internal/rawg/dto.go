package rawg

// Response shapes of the RAWG REST API. Only the fields gamedeck renders
// are decoded.

// GameListResponse is the envelope of /games
type GameListResponse struct {
	Count    int           `json:"count"`
	Next     string        `json:"next"`
	Previous string        `json:"previous"`
	Results  []GameListing `json:"results"`
}

// GameListing is one entry of a /games listing
type GameListing struct {
	ID               int               `json:"id"`
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	Released         string            `json:"released"`
	BackgroundImage  string            `json:"background_image"`
	Rating           float64           `json:"rating"`
	Metacritic       *int              `json:"metacritic"`
	Platforms        []PlatformWrapper `json:"platforms"`
	Genres           []Ref             `json:"genres"`
	ShortScreenshots []ScreenshotDTO   `json:"short_screenshots,omitempty"`
}

// GameDetailResponse is the body of /games/{id}
type GameDetailResponse struct {
	ID              int               `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	DescriptionRaw  string            `json:"description_raw"`
	Released        string            `json:"released"`
	BackgroundImage string            `json:"background_image"`
	Website         string            `json:"website"`
	Rating          float64           `json:"rating"`
	Metacritic      *int              `json:"metacritic"`
	Platforms       []PlatformWrapper `json:"platforms"`
	Genres          []Ref             `json:"genres"`
	Stores          []StoreWrapper    `json:"stores"`
	Developers      []Ref             `json:"developers"`
}

// Ref is the id/name/slug triple RAWG uses for genres, developers, tags
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PlatformWrapper nests the platform ref one level down
type PlatformWrapper struct {
	Platform Ref `json:"platform"`
}

// StoreWrapper nests the store ref one level down
type StoreWrapper struct {
	ID    int `json:"id"`
	Store Ref `json:"store"`
}

// ScreenshotListResponse is the envelope of /games/{id}/screenshots
type ScreenshotListResponse struct {
	Count   int             `json:"count"`
	Results []ScreenshotDTO `json:"results"`
}

type ScreenshotDTO struct {
	ID     int    `json:"id"`
	Image  string `json:"image"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// MovieListResponse is the envelope of /games/{id}/movies
type MovieListResponse struct {
	Count   int        `json:"count"`
	Results []MovieDTO `json:"results"`
}

// MovieDTO is a trailer. Data maps a quality label ("480", "max") to a stream URL.
type MovieDTO struct {
	ID      int               `json:"id"`
	Name    string            `json:"name"`
	Preview string            `json:"preview"`
	Data    map[string]string `json:"data"`
}
