package discovery

import (
	"strings"

	"localgame-server/models"
	"localgame-server/models/venue"
)

// Predicate reports whether a venue is included in a result set.
type Predicate func(venue.Venue) bool

// And combines predicates into their conjunction. And() accepts everything.
func And(preds ...Predicate) Predicate {
	return func(v venue.Venue) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// BuildPredicate converts filter criteria into a single predicate.
// Rules that the criteria disable are left out of the conjunction.
func BuildPredicate(c models.FilterCriteria) Predicate {
	preds := []Predicate{maxDistance(c.MaxDistanceKm)}

	if c.Sport != "" && c.Sport != models.SportAll {
		preds = append(preds, sportIs(venue.Sport(c.Sport)))
	}
	if c.LiveOnly {
		preds = append(preds, statusIs(venue.StatusLive))
	}
	if q := normalizeQuery(c.Query); q != "" {
		preds = append(preds, matchesText(q))
	}
	return And(preds...)
}

func sportIs(s venue.Sport) Predicate {
	return func(v venue.Venue) bool { return v.Sport == s }
}

func statusIs(s venue.Status) Predicate {
	return func(v venue.Venue) bool { return v.Status == s }
}

func maxDistance(km float64) Predicate {
	return func(v venue.Venue) bool { return v.DistanceKm <= km }
}

// matchesText expects an already normalized query.
func matchesText(q string) Predicate {
	return func(v venue.Venue) bool {
		return strings.Contains(strings.ToLower(v.Name), q) ||
			strings.Contains(strings.ToLower(v.Area), q)
	}
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Filter returns the venues accepted by p, in input order.
func Filter(venues []venue.Venue, p Predicate) []venue.Venue {
	out := make([]venue.Venue, 0, len(venues))
	for _, v := range venues {
		if p(v) {
			out = append(out, v)
		}
	}
	return out
}
