package domain

import (
	"fmt"
	"strconv"
)

// Filter field names, as used by SetFilter and the persisted store state.
const (
	FilterYear      = "year"
	FilterGenre     = "genre"
	FilterPlatform  = "platform"
	FilterTag       = "tag"
	FilterDeveloper = "developer"
	FilterOrdering  = "ordering"
)

// FilterFields lists every FilterSet field name in display order.
var FilterFields = []string{
	FilterYear,
	FilterGenre,
	FilterPlatform,
	FilterTag,
	FilterDeveloper,
	FilterOrdering,
}

// FilterSet holds the user-chosen catalog constraints.
// An empty field means "no constraint".
type FilterSet struct {
	Year      string `json:"year"`
	Genre     string `json:"genre"`
	Platform  string `json:"platform"`
	Tag       string `json:"tag"`
	Developer string `json:"developer"`
	Ordering  string `json:"ordering"`
}

// Field returns the value of the named field.
func (f FilterSet) Field(name string) (string, error) {
	switch name {
	case FilterYear:
		return f.Year, nil
	case FilterGenre:
		return f.Genre, nil
	case FilterPlatform:
		return f.Platform, nil
	case FilterTag:
		return f.Tag, nil
	case FilterDeveloper:
		return f.Developer, nil
	case FilterOrdering:
		return f.Ordering, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// With returns a copy of f with the named field overwritten.
func (f FilterSet) With(name, value string) (FilterSet, error) {
	switch name {
	case FilterYear:
		if value != "" && !ValidYear(value) {
			return f, fmt.Errorf("%w: year %q", ErrInvalidFilterValue, value)
		}
		f.Year = value
	case FilterGenre:
		f.Genre = value
	case FilterPlatform:
		f.Platform = value
	case FilterTag:
		f.Tag = value
	case FilterDeveloper:
		f.Developer = value
	case FilterOrdering:
		f.Ordering = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return f, nil
}

// ValidYear reports whether s is a four-digit year.
func ValidYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil && s[0] != '-' && s[0] != '+'
}

// Fields returns the non-empty fields keyed by field name.
func (f FilterSet) Fields() map[string]string {
	out := make(map[string]string, len(FilterFields))
	for _, name := range FilterFields {
		if v, _ := f.Field(name); v != "" {
			out[name] = v
		}
	}
	return out
}

// IsEmpty reports whether no constraint is set.
func (f FilterSet) IsEmpty() bool {
	return f == FilterSet{}
}
