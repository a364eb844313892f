package games

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/logging"
	"github.com/mmcdole/gamedeck/internal/rawg"
)

// fakeCatalog is an in-memory domain.CatalogRepository that counts calls
// per endpoint.
type fakeCatalog struct {
	gameCalls       atomic.Int32
	screenshotCalls atomic.Int32
	movieCalls      atomic.Int32
	searchCalls     atomic.Int32
	listCalls       atomic.Int32

	screenshotErr map[int]error // by game id
	searchResults []domain.GameSummary

	// listGate, when set, blocks Games until closed.
	listGate  chan struct{}
	listErr   error
	lastQuery url.Values
	mu        sync.Mutex
}

func (f *fakeCatalog) Game(_ context.Context, id int) (*domain.GameDetail, error) {
	f.gameCalls.Add(1)
	return &domain.GameDetail{
		GameSummary:    domain.GameSummary{ID: id, Name: "Portal 2"},
		DescriptionRaw: "Portal 2 is a first-person puzzle game.",
	}, nil
}

func (f *fakeCatalog) Screenshots(_ context.Context, id int, _ int) ([]domain.Screenshot, error) {
	f.screenshotCalls.Add(1)
	if err := f.screenshotErr[id]; err != nil {
		return nil, err
	}
	return []domain.Screenshot{{ID: id*10 + 1, ImageURL: "https://media.rawg.io/shot.jpg"}}, nil
}

func (f *fakeCatalog) Movies(_ context.Context, id int) ([]domain.Video, error) {
	f.movieCalls.Add(1)
	return []domain.Video{{ID: id*10 + 2, Name: "Trailer", StreamURL: "https://media.rawg.io/max.mp4"}}, nil
}

func (f *fakeCatalog) Search(_ context.Context, _ string, _ int) ([]domain.GameSummary, error) {
	f.searchCalls.Add(1)
	out := make([]domain.GameSummary, len(f.searchResults))
	copy(out, f.searchResults)
	return out, nil
}

func (f *fakeCatalog) Games(_ context.Context, query url.Values) (domain.GamePage, error) {
	f.listCalls.Add(1)
	f.mu.Lock()
	f.lastQuery = query
	f.mu.Unlock()
	if f.listGate != nil {
		<-f.listGate
	}
	if f.listErr != nil {
		return domain.GamePage{}, f.listErr
	}
	return domain.GamePage{
		Results: []domain.GameSummary{{ID: 1, Name: "Halo"}},
		Count:   1,
	}, nil
}

func newTestService(catalog domain.CatalogRepository, now func() time.Time) *Service {
	opts := DefaultOptions()
	opts.Clock = now
	return NewService(catalog, opts, logging.NullLogger())
}

func TestGameByIDMergesEndpoints(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newTestService(catalog, nil)

	game, err := svc.GameByID(context.Background(), 4200)
	require.NoError(t, err)

	assert.Equal(t, 4200, game.ID)
	assert.Equal(t, "Portal 2", game.Name)
	require.Len(t, game.Screenshots, 1)
	require.Len(t, game.Videos, 1)
	assert.Equal(t, "https://media.rawg.io/max.mp4", game.FirstVideo().StreamURL)
}

func TestGameByIDCachedWithinTTL(t *testing.T) {
	catalog := &fakeCatalog{}
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(catalog, func() time.Time { return now })

	_, err := svc.GameByID(context.Background(), 4200)
	require.NoError(t, err)

	now = now.Add(29 * time.Minute)
	_, err = svc.GameByID(context.Background(), 4200)
	require.NoError(t, err)

	assert.Equal(t, int32(1), catalog.gameCalls.Load())
	assert.Equal(t, int32(1), catalog.screenshotCalls.Load())
	assert.Equal(t, int32(1), catalog.movieCalls.Load())

	// Past the detail TTL the record is fetched again.
	now = now.Add(2 * time.Minute)
	_, err = svc.GameByID(context.Background(), 4200)
	require.NoError(t, err)
	assert.Equal(t, int32(2), catalog.gameCalls.Load())
}

func TestGameByIDFailureNotCached(t *testing.T) {
	statusErr := &rawg.StatusError{Endpoint: rawg.EndpointScreenshots, Status: 500}
	catalog := &fakeCatalog{screenshotErr: map[int]error{4200: statusErr}}
	svc := newTestService(catalog, nil)

	game, err := svc.GameByID(context.Background(), 4200)
	assert.Nil(t, game)
	require.Error(t, err)
	assert.ErrorIs(t, err, statusErr)

	detail, _ := svc.CacheStats()
	assert.Equal(t, uint64(0), detail.Hits)
	assert.Equal(t, 0, svc.details.Len(), "a failed fetch must not be cached")

	// Once the endpoint recovers the game is fetched again.
	catalog.screenshotErr = nil
	game, err = svc.GameByID(context.Background(), 4200)
	require.NoError(t, err)
	assert.NotNil(t, game)
	assert.Equal(t, int32(2), catalog.gameCalls.Load())
}

func TestGamesByNameEnrichmentFailsSoft(t *testing.T) {
	catalog := &fakeCatalog{
		searchResults: []domain.GameSummary{
			{ID: 1, Name: "Halo: Combat Evolved"},
			{ID: 2, Name: "Halo 2"},
			{ID: 3, Name: "Halo 3"},
		},
		screenshotErr: map[int]error{2: errors.New("connection reset")},
	}
	svc := newTestService(catalog, nil)

	results, err := svc.GamesByName(context.Background(), "halo")
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, g := range results {
		if g.ID == 2 {
			assert.NotNil(t, g.Screenshots)
			assert.NotNil(t, g.Videos)
			assert.Empty(t, g.Screenshots, "failed game has no screenshots")
			assert.Empty(t, g.Videos, "failed game has no videos")
			continue
		}
		assert.Len(t, g.Screenshots, 1, "game %d", g.ID)
		assert.Len(t, g.Videos, 1, "game %d", g.ID)
	}
	assert.Equal(t, []string{"Halo: Combat Evolved", "Halo 2", "Halo 3"},
		[]string{results[0].Name, results[1].Name, results[2].Name}, "order is preserved")
}

func TestGamesByNameEmptyQuery(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newTestService(catalog, nil)

	results, err := svc.GamesByName(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Equal(t, int32(0), catalog.searchCalls.Load())
}

func TestGamesByNameNotCached(t *testing.T) {
	catalog := &fakeCatalog{searchResults: []domain.GameSummary{{ID: 1, Name: "Halo"}}}
	svc := newTestService(catalog, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.GamesByName(context.Background(), "halo")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), catalog.searchCalls.Load())
}

func TestFilteredGamesConcurrentShareOneFetch(t *testing.T) {
	catalog := &fakeCatalog{listGate: make(chan struct{})}
	svc := newTestService(catalog, nil)
	filters := domain.FilterSet{Year: "2020", Genre: "action"}

	const n = 5
	var wg sync.WaitGroup
	pages := make([]domain.GamePage, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pages[i], errs[i] = svc.FilteredGames(context.Background(), filters, 1)
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(catalog.listGate)
	wg.Wait()

	assert.Equal(t, int32(1), catalog.listCalls.Load())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 1, pages[i].Count)
	}
}

func TestFilteredGamesCachedByKey(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newTestService(catalog, nil)

	_, err := svc.FilteredGames(context.Background(), domain.FilterSet{Genre: "action", Year: "2020"}, 2)
	require.NoError(t, err)
	_, err = svc.FilteredGames(context.Background(), domain.FilterSet{Year: "2020", Genre: "action"}, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(1), catalog.listCalls.Load())

	_, err = svc.FilteredGames(context.Background(), domain.FilterSet{Year: "2020", Genre: "action"}, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(2), catalog.listCalls.Load())

	catalog.mu.Lock()
	q := catalog.lastQuery
	catalog.mu.Unlock()
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "2020-01-01,2020-12-31", q.Get("dates"))
}

func TestFilteredGamesFailure(t *testing.T) {
	catalog := &fakeCatalog{listErr: domain.ErrCatalogUnavailable}
	svc := newTestService(catalog, nil)

	page, err := svc.FilteredGames(context.Background(), domain.FilterSet{}, 1)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Empty(t, page.Results)
	assert.Equal(t, 0, svc.pages.Len())
}

func TestInvalidateAll(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newTestService(catalog, nil)

	_, err := svc.GameByID(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.FilteredGames(context.Background(), domain.FilterSet{}, 1)
	require.NoError(t, err)

	svc.InvalidateAll()

	assert.Equal(t, 0, svc.details.Len())
	assert.Equal(t, 0, svc.pages.Len())
}
