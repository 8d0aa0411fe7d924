package discovery

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"localgame-server/models/venue"
)

// SortKey names a ranking policy for a result set.
type SortKey string

const (
	SortCatalog   SortKey = "catalog"
	SortDistance  SortKey = "distance"
	SortVibe      SortKey = "vibe"
	SortPlayers   SortKey = "players"
	SortRelevance SortKey = "relevance"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

// ParseSortKey accepts the known keys; the empty string means SortCatalog.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "", SortCatalog:
		return SortCatalog, nil
	case SortDistance, SortVibe, SortPlayers, SortRelevance:
		return k, nil
	}
	return SortCatalog, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Rank returns a stably ordered copy of venues. query only matters for SortRelevance.
// Unknown keys keep input order.
func Rank(venues []venue.Venue, key SortKey, query string) []venue.Venue {
	out := make([]venue.Venue, len(venues))
	copy(out, venues)

	less := lessFunc(out, key, normalizeQuery(query))
	if less != nil {
		sort.SliceStable(out, less)
	}
	return out
}

func lessFunc(vs []venue.Venue, key SortKey, q string) func(i, j int) bool {
	switch key {
	case SortDistance:
		return func(i, j int) bool { return vs[i].DistanceKm < vs[j].DistanceKm }
	case SortVibe:
		return func(i, j int) bool { return vs[i].Vibe > vs[j].Vibe }
	case SortPlayers:
		return func(i, j int) bool { return vs[i].Players > vs[j].Players }
	case SortRelevance:
		if q == "" {
			return nil
		}
		return func(i, j int) bool { return relevance(vs[i], q) > relevance(vs[j], q) }
	}
	return nil
}

// relevance scores how well a venue matches a normalized query.
func relevance(v venue.Venue, q string) int {
	name := strings.ToLower(v.Name)
	switch {
	case strings.HasPrefix(name, q):
		return 3
	case strings.Contains(name, q):
		return 2
	case strings.Contains(strings.ToLower(v.Area), q):
		return 1
	}
	return 0
}
