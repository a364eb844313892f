package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSetWith(t *testing.T) {
	var f FilterSet
	for _, name := range FilterFields {
		value := "v-" + name
		if name == FilterYear {
			value = "1998"
		}
		next, err := f.With(name, value)
		require.NoError(t, err)
		got, err := next.Field(name)
		require.NoError(t, err)
		assert.Equal(t, value, got)
		assert.True(t, f.IsEmpty(), "With must not modify the receiver")
	}
}

func TestFilterSetUnknownField(t *testing.T) {
	var f FilterSet

	_, err := f.With("publisher", "valve")
	assert.ErrorIs(t, err, ErrUnknownFilter)

	_, err = f.Field("publisher")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestFilterSetRejectsBadYear(t *testing.T) {
	f := FilterSet{Year: "2020"}

	for _, year := range []string{"soon", "20x0", "202", "-202", "20201"} {
		got, err := f.With(FilterYear, year)
		assert.ErrorIs(t, err, ErrInvalidFilterValue, year)
		assert.Equal(t, "2020", got.Year, year)
	}

	cleared, err := f.With(FilterYear, "")
	require.NoError(t, err)
	assert.Empty(t, cleared.Year)
}

func TestFilterSetFields(t *testing.T) {
	f := FilterSet{Year: "2020", Platform: "4"}
	assert.Equal(t, map[string]string{"year": "2020", "platform": "4"}, f.Fields())
	assert.False(t, f.IsEmpty())
}
