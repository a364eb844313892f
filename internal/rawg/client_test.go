package rawg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/logging"
)

const testKey = "test-key"

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != testKey {
			http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL+"/", testKey, logging.NullLogger())
}

func TestGame(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/games/3498": `{
			"id": 3498, "slug": "grand-theft-auto-v", "name": "Grand Theft Auto V",
			"description": "<p>Rockstar Games went bigger</p>", "description_raw": "Rockstar Games went bigger",
			"released": "2013-09-17", "background_image": "https://media.rawg.io/gta.jpg",
			"website": "http://www.rockstargames.com/V/", "rating": 4.47, "metacritic": 92,
			"platforms": [{"platform": {"id": 4, "name": "PC", "slug": "pc"}}],
			"genres": [{"id": 4, "name": "Action", "slug": "action"}],
			"stores": [{"id": 290375, "store": {"id": 1, "name": "Steam", "slug": "steam"}}],
			"developers": [{"id": 3524, "name": "Rockstar North", "slug": "rockstar-north"}],
			"reddit_url": "ignored"
		}`,
	})

	game, err := newTestClient(srv).Game(context.Background(), 3498)
	require.NoError(t, err)

	assert.Equal(t, 3498, game.ID)
	assert.Equal(t, "Grand Theft Auto V", game.Name)
	assert.Equal(t, 92, game.Metacritic)
	assert.Equal(t, 2013, game.Year())
	assert.Equal(t, "PC", game.PlatformNames())
	assert.Equal(t, "Action", game.GenreNames())
	assert.Equal(t, "Rockstar North", game.DeveloperNames())
	require.Len(t, game.Stores, 1)
	assert.Equal(t, "Steam", game.Stores[0].Name)
	assert.Empty(t, game.Screenshots)
	assert.Empty(t, game.Videos)
}

func TestGameNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	_, err := newTestClient(srv).Game(context.Background(), 1)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, EndpointGame, se.Endpoint)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestScreenshotsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	shots, err := newTestClient(srv).Screenshots(context.Background(), 7, 0)
	assert.Nil(t, shots)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Status)
	assert.False(t, errors.Is(err, domain.ErrGameNotFound))
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestScreenshotsAndMovies(t *testing.T) {
	var gotPageSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/games/7/screenshots":
			gotPageSize = r.URL.Query().Get("page_size")
			_, _ = w.Write([]byte(`{"count": 3, "results": [
				{"id": 1, "image": "https://media.rawg.io/s1.jpg"},
				{"id": 2, "image": ""},
				{"id": 3, "image": "https://media.rawg.io/s3.jpg"}
			]}`))
		case "/games/7/movies":
			_, _ = w.Write([]byte(`{"count": 3, "results": [
				{"id": 10, "name": "Trailer", "preview": "p.jpg", "data": {"480": "low.mp4", "max": "max.mp4"}},
				{"id": 11, "name": "Teaser", "preview": "t.jpg", "data": {"720": "hd.mp4"}},
				{"id": 12, "name": "Broken", "preview": "b.jpg", "data": {}}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv)

	shots, err := client.Screenshots(context.Background(), 7, 6)
	require.NoError(t, err)
	assert.Equal(t, "6", gotPageSize)
	assert.Equal(t, []domain.Screenshot{
		{ID: 1, ImageURL: "https://media.rawg.io/s1.jpg"},
		{ID: 3, ImageURL: "https://media.rawg.io/s3.jpg"},
	}, shots)

	videos, err := client.Movies(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "max.mp4", videos[0].StreamURL)
	assert.Equal(t, "hd.mp4", videos[1].StreamURL)
}

func TestSearchSendsQuery(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 1, "name": "Halo: Combat Evolved", "metacritic": null}]}`))
	}))
	defer srv.Close()

	games, err := newTestClient(srv).Search(context.Background(), "halo", 20)
	require.NoError(t, err)

	assert.Equal(t, "halo", got.Get("search"))
	assert.Equal(t, "20", got.Get("page_size"))
	assert.Equal(t, testKey, got.Get("key"))
	require.Len(t, games, 1)
	assert.Equal(t, 0, games[0].Metacritic)
}

func TestGamesPage(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{
			"count": 812, "next": "https://api.rawg.io/api/games?page=3", "previous": "https://api.rawg.io/api/games?page=1",
			"results": [{"id": 1, "name": "A"}, {"id": 2, "name": "B"}]
		}`))
	}))
	defer srv.Close()

	query := url.Values{"genres": {"action"}, "page": {"2"}}
	page, err := newTestClient(srv).Games(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, "action", got.Get("genres"))
	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, testKey, got.Get("key"))
	assert.Empty(t, query.Get("key"), "caller's query must not be mutated")

	assert.Equal(t, 812, page.Count)
	assert.True(t, page.HasNext())
	assert.True(t, page.HasPrevious())
	assert.Len(t, page.Results, 2)
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "", logging.NullLogger())

	_, err := client.Game(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewClient(addr, testKey, logging.NullLogger()).Search(context.Background(), "halo", 0)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestMalformedBody(t *testing.T) {
	srv := newTestServer(t, map[string]string{"/games/1": `{"id": `})

	_, err := newTestClient(srv).Game(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse game response")
}
