package services

import (
	"errors"
	"fmt"

	"localgame-server/catalog"
	"localgame-server/discovery"
	"localgame-server/models"
	"localgame-server/models/venue"
)

var ErrVenueNotFound = errors.New("venue not found")

// ExploreResult is one explore screen render: ordered results plus the focused venue.
type ExploreResult struct {
	Venues   []venue.Venue `json:"venues"`
	Selected *venue.Venue  `json:"selected"`
	Count    int           `json:"count"`
	Total    int           `json:"total"`
}

// ExploreService answers explore queries against the current catalog snapshot.
type ExploreService struct {
	store *catalog.Store
}

func NewExploreService(store *catalog.Store) *ExploreService {
	return &ExploreService{store: store}
}

// Explore runs the query and resolves storedID against the results.
func (s *ExploreService) Explore(criteria models.FilterCriteria, key discovery.SortKey, storedID string) (ExploreResult, error) {
	if err := criteria.Validate(); err != nil {
		return ExploreResult{}, err
	}

	snap := s.store.Snapshot()
	results := discovery.Query(snap.Venues(), criteria, key)

	res := ExploreResult{
		Venues: results,
		Count:  len(results),
		Total:  snap.Len(),
	}
	if v, ok := discovery.ResolveSelection(results, storedID); ok {
		res.Selected = &v
	}
	return res, nil
}

// Select checks that id is visible under the criteria. NotFound is returned as is.
func (s *ExploreService) Select(criteria models.FilterCriteria, key discovery.SortKey, id string) (string, error) {
	if err := criteria.Validate(); err != nil {
		return "", err
	}
	results := discovery.Query(s.store.Snapshot().Venues(), criteria, key)
	return discovery.Select(results, id)
}

// Venue returns a single venue from the current snapshot.
func (s *ExploreService) Venue(id string) (venue.Venue, error) {
	v, ok := s.store.Snapshot().Get(id)
	if !ok {
		return venue.Venue{}, fmt.Errorf("%w: %s", ErrVenueNotFound, id)
	}
	return v, nil
}

// Venues returns the whole snapshot in catalog order.
func (s *ExploreService) Venues() []venue.Venue {
	return s.store.Snapshot().Venues()
}
