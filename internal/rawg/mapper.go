package rawg

import "github.com/mmcdole/gamedeck/internal/domain"

// streamQualities lists trailer qualities in order of preference.
var streamQualities = []string{"max", "480", "720"}

// MapGames converts a listing envelope to a domain page
func MapGames(resp GameListResponse) domain.GamePage {
	return domain.GamePage{
		Results:  MapListings(resp.Results),
		Count:    resp.Count,
		Next:     resp.Next,
		Previous: resp.Previous,
	}
}

// MapListings converts listing entries to domain summaries
func MapListings(listings []GameListing) []domain.GameSummary {
	games := make([]domain.GameSummary, 0, len(listings))
	for _, l := range listings {
		games = append(games, mapListing(l))
	}
	return games
}

func mapListing(l GameListing) domain.GameSummary {
	return domain.GameSummary{
		ID:              l.ID,
		Name:            l.Name,
		Slug:            l.Slug,
		BackgroundImage: l.BackgroundImage,
		Rating:          l.Rating,
		Metacritic:      derefInt(l.Metacritic),
		Platforms:       mapPlatforms(l.Platforms),
		Genres:          mapRefs(l.Genres),
		Released:        l.Released,
	}
}

// MapGameDetail converts a /games/{id} body to a domain detail.
// Screenshots and videos come from separate endpoints and are left empty.
func MapGameDetail(d GameDetailResponse) *domain.GameDetail {
	return &domain.GameDetail{
		GameSummary: domain.GameSummary{
			ID:              d.ID,
			Name:            d.Name,
			Slug:            d.Slug,
			BackgroundImage: d.BackgroundImage,
			Rating:          d.Rating,
			Metacritic:      derefInt(d.Metacritic),
			Platforms:       mapPlatforms(d.Platforms),
			Genres:          mapRefs(d.Genres),
			Released:        d.Released,
		},
		Description:    d.Description,
		DescriptionRaw: d.DescriptionRaw,
		Stores:         mapStores(d.Stores),
		Website:        d.Website,
		Developers:     mapRefs(d.Developers),
	}
}

// MapScreenshots converts screenshot DTOs, skipping entries without an image
func MapScreenshots(dtos []ScreenshotDTO) []domain.Screenshot {
	shots := make([]domain.Screenshot, 0, len(dtos))
	for _, s := range dtos {
		if s.Image == "" {
			continue
		}
		shots = append(shots, domain.Screenshot{ID: s.ID, ImageURL: s.Image})
	}
	return shots
}

// MapMovies converts trailer DTOs, keeping only trailers with a playable stream
func MapMovies(dtos []MovieDTO) []domain.Video {
	videos := make([]domain.Video, 0, len(dtos))
	for _, m := range dtos {
		stream := pickStream(m.Data)
		if stream == "" {
			continue
		}
		videos = append(videos, domain.Video{
			ID:        m.ID,
			Name:      m.Name,
			Preview:   m.Preview,
			StreamURL: stream,
		})
	}
	return videos
}

// pickStream returns the first stream found in streamQualities order.
func pickStream(data map[string]string) string {
	for _, q := range streamQualities {
		if u := data[q]; u != "" {
			return u
		}
	}
	return ""
}

func mapRefs(refs []Ref) []domain.NamedRef {
	if len(refs) == 0 {
		return nil
	}
	out := make([]domain.NamedRef, 0, len(refs))
	for _, r := range refs {
		out = append(out, domain.NamedRef{ID: r.ID, Name: r.Name, Slug: r.Slug})
	}
	return out
}

func mapPlatforms(ps []PlatformWrapper) []domain.NamedRef {
	refs := make([]Ref, 0, len(ps))
	for _, p := range ps {
		refs = append(refs, p.Platform)
	}
	return mapRefs(refs)
}

func mapStores(ss []StoreWrapper) []domain.NamedRef {
	refs := make([]Ref, 0, len(ss))
	for _, s := range ss {
		refs = append(refs, s.Store)
	}
	return mapRefs(refs)
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
