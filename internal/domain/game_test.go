package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameSummaryYear(t *testing.T) {
	tests := []struct {
		released string
		want     int
	}{
		{"2013-09-17", 2013},
		{"2020", 2020},
		{"", 0},
		{"TBA", 0},
	}
	for _, tt := range tests {
		g := GameSummary{Released: tt.released}
		assert.Equal(t, tt.want, g.Year(), tt.released)
	}
}

func TestJoinNamesSkipsBlank(t *testing.T) {
	g := GameSummary{Genres: []NamedRef{{Name: "Action"}, {Name: ""}, {Name: "Adventure"}}}
	assert.Equal(t, "Action, Adventure", g.GenreNames())
	assert.Equal(t, "", g.PlatformNames())
}

func TestFirstVideo(t *testing.T) {
	var d GameDetail
	assert.Nil(t, d.FirstVideo())

	d.Videos = []Video{{ID: 1, Name: "Launch trailer"}, {ID: 2}}
	assert.Equal(t, "Launch trailer", d.FirstVideo().Name)
	assert.Equal(t, "", d.DeveloperNames())
}

func TestGamePageLinks(t *testing.T) {
	p := GamePage{Next: "https://api.rawg.io/api/games?page=2"}
	assert.True(t, p.HasNext())
	assert.False(t, p.HasPrevious())
}
