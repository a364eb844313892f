package games

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/mmcdole/gamedeck/internal/domain"
)

// DefaultOrdering is applied when the user has not picked one. It goes
// together with a metacritic range so unscored games stay out of the list.
const (
	DefaultOrdering    = "-metacritic"
	defaultScoreWindow = "0,100"
)

// MaxPage is the last page the catalog will serve for a listing.
const MaxPage = 100

// BuildQuery translates filters and page into catalog query parameters.
// The API key is added by the client.
func BuildQuery(f domain.FilterSet, page int) url.Values {
	q := url.Values{}
	// Restored state may carry a year that never passed FilterSet.With.
	if domain.ValidYear(f.Year) {
		q.Set("dates", f.Year+"-01-01,"+f.Year+"-12-31")
	}
	if f.Genre != "" {
		q.Set("genres", f.Genre)
	}
	if f.Platform != "" {
		q.Set("platforms", f.Platform)
	}
	if f.Tag != "" {
		q.Set("tags", f.Tag)
	}
	if f.Developer != "" {
		q.Set("developers", f.Developer)
	}
	if f.Ordering != "" {
		q.Set("ordering", f.Ordering)
	} else {
		q.Set("ordering", DefaultOrdering)
		q.Set("metacritic", defaultScoreWindow)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

// CacheKey derives the listing cache key. Fields are sorted by name and
// empty fields are dropped, so two filter sets with the same non-empty
// values always share a key.
func CacheKey(f domain.FilterSet, page int) string {
	fields := f.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fields[name]))
	}
	b.WriteString("|page=")
	b.WriteString(strconv.Itoa(page))
	return b.String()
}
