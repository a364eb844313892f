package games

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/gamedeck/internal/domain"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.FilterSet
		page    int
		want    map[string]string
		absent  []string
	}{
		{
			name:    "year and genre page 2",
			filters: domain.FilterSet{Year: "2020", Genre: "action"},
			page:    2,
			want: map[string]string{
				"dates":      "2020-01-01,2020-12-31",
				"genres":     "action",
				"page":       "2",
				"ordering":   "-metacritic",
				"metacritic": "0,100",
			},
			absent: []string{"platforms", "tags", "developers", "key"},
		},
		{
			name:    "every field",
			filters: domain.FilterSet{Platform: "4", Tag: "multiplayer", Developer: "valve-software", Ordering: "-released"},
			page:    1,
			want: map[string]string{
				"platforms":  "4",
				"tags":       "multiplayer",
				"developers": "valve-software",
				"ordering":   "-released",
				"page":       "1",
			},
			absent: []string{"dates", "genres", "metacritic"},
		},
		{
			name:    "non-numeric year",
			filters: domain.FilterSet{Year: "soon"},
			page:    1,
			want:    map[string]string{"page": "1"},
			absent:  []string{"dates"},
		},
		{
			name:    "no page",
			filters: domain.FilterSet{},
			page:    0,
			want:    map[string]string{"ordering": "-metacritic"},
			absent:  []string{"page"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildQuery(tt.filters, tt.page)
			for k, v := range tt.want {
				assert.Equal(t, v, q.Get(k), k)
			}
			for _, k := range tt.absent {
				assert.False(t, q.Has(k), k)
			}
		})
	}
}

func TestCacheKeyOrderIndependent(t *testing.T) {
	a, err := domain.FilterSet{}.With(domain.FilterYear, "2020")
	assert.NoError(t, err)
	a, _ = a.With(domain.FilterGenre, "action")

	b, _ := domain.FilterSet{}.With(domain.FilterGenre, "action")
	b, _ = b.With(domain.FilterYear, "2020")

	assert.Equal(t, CacheKey(a, 1), CacheKey(b, 1))
	assert.Equal(t, "genre=action&year=2020|page=1", CacheKey(a, 1))
}

func TestCacheKeyDistinguishes(t *testing.T) {
	base := domain.FilterSet{Genre: "action"}

	assert.NotEqual(t, CacheKey(base, 1), CacheKey(base, 2))
	assert.NotEqual(t, CacheKey(base, 1), CacheKey(domain.FilterSet{Genre: "rpg"}, 1))
	assert.Equal(t, "|page=1", CacheKey(domain.FilterSet{}, 1))
	assert.Equal(t, CacheKey(domain.FilterSet{}, 1), CacheKey(domain.FilterSet{Tag: ""}, 1))
}
