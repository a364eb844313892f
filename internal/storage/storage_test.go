package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/gamedeck/internal/domain"
)

func favorites() []domain.GameSummary {
	return []domain.GameSummary{
		{ID: 3498, Name: "Grand Theft Auto V", Rating: 4.47, Metacritic: 92},
		{ID: 3328, Name: "The Witcher 3: Wild Hunt", Rating: 4.66, Metacritic: 92},
	}
}

func TestBoltRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "gamedeck.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(domain.StorageKeyFavorites, favorites()))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	var got []domain.GameSummary
	ok, err := reopened.Load(domain.StorageKeyFavorites, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, favorites(), got)
}

func TestBoltMissingKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "gamedeck.db"))
	require.NoError(t, err)
	defer s.Close()

	var got []domain.GameSummary
	ok, err := s.Load("nope", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoltDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamedeck.db")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(domain.StorageKeyFavorites, favorites()))
	require.NoError(t, s.Delete(domain.StorageKeyFavorites))
	require.NoError(t, s.Delete("never-saved"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	var got []domain.GameSummary
	ok, err := reopened.Load(domain.StorageKeyFavorites, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoltMemoryOnlyMode(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)

	require.NoError(t, s.Save("k", map[string]int{"page": 3}))

	var got map[string]int
	ok, err := s.Load("k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got["page"])
	assert.NoError(t, s.Close())
}

func TestBoltDecodeError(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	require.NoError(t, s.Save("k", "a string"))

	var got []domain.GameSummary
	_, err = s.Load("k", &got)
	assert.Error(t, err)
}

func TestMemoryStorage(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Save(domain.StorageKeyFavorites, favorites()))
	assert.Equal(t, 1, m.Saves())

	raw, ok := m.Raw(domain.StorageKeyFavorites)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"Grand Theft Auto V"`)

	var got []domain.GameSummary
	ok, err := m.Load(domain.StorageKeyFavorites, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, favorites(), got)

	require.NoError(t, m.Delete(domain.StorageKeyFavorites))
	ok, err = m.Load(domain.StorageKeyFavorites, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
