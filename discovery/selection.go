package discovery

import "localgame-server/models/venue"

// ResolveSelection picks the venue to display for storedID.
// It falls back to the first result, and reports false only for an empty result set.
func ResolveSelection(results []venue.Venue, storedID string) (venue.Venue, bool) {
	if len(results) == 0 {
		return venue.Venue{}, false
	}
	if storedID != "" {
		if i := indexOf(results, storedID); i >= 0 {
			return results[i], true
		}
	}
	return results[0], true
}

// Select validates that id is present in results.
func Select(results []venue.Venue, id string) (string, error) {
	if indexOf(results, id) < 0 {
		return "", &NotFoundError{ID: id}
	}
	return id, nil
}

func indexOf(results []venue.Venue, id string) int {
	for i := range results {
		if results[i].ID == id {
			return i
		}
	}
	return -1
}

// Selection tracks the focused venue across queries.
// The zero value is Unselected. It is not safe for concurrent use; callers own it.
type Selection struct {
	id       string
	selected bool
}

// NewSelection starts focused on the first catalog venue, or Unselected when empty.
func NewSelection(catalog []venue.Venue) *Selection {
	s := &Selection{}
	if len(catalog) > 0 {
		s.id, s.selected = catalog[0].ID, true
	}
	return s
}

func (s *Selection) ID() string       { return s.id }
func (s *Selection) IsSelected() bool { return s.selected }

// Select moves focus to id. On failure the previous selection is kept.
func (s *Selection) Select(results []venue.Venue, id string) error {
	if _, err := Select(results, id); err != nil {
		return err
	}
	s.id, s.selected = id, true
	return nil
}

// Resolve returns the venue to display and stores its id.
// An empty result set leaves the stored id untouched.
func (s *Selection) Resolve(results []venue.Venue) (venue.Venue, bool) {
	v, ok := ResolveSelection(results, s.id)
	if ok {
		s.id, s.selected = v.ID, true
	}
	return v, ok
}
