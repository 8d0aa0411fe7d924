// Package discovery filters, ranks and selects venues for the explore screen.
// Every function here is pure and never mutates its inputs.
package discovery

import (
	"localgame-server/models"
	"localgame-server/models/venue"
)

// Query filters catalog by criteria and orders the result by key.
func Query(catalog []venue.Venue, criteria models.FilterCriteria, key SortKey) []venue.Venue {
	filtered := Filter(catalog, BuildPredicate(criteria))
	return Rank(filtered, key, criteria.Query)
}
