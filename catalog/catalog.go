// Package catalog holds validated, immutable venue snapshots.
package catalog

import (
	"errors"
	"fmt"
	"sync/atomic"

	"localgame-server/models/venue"
)

var ErrDuplicateID = errors.New("duplicate venue id")

// ValidationError reports the venue that broke a catalog invariant.
type ValidationError struct {
	Index int
	ID    string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog venue #%d (%s): %v", e.Index, e.ID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Catalog is an immutable, ordered set of venues with unique ids.
type Catalog struct {
	venues []venue.Venue
	index  map[string]int
}

// New validates venues and builds a catalog that owns a copy of them.
func New(venues []venue.Venue) (*Catalog, error) {
	c := &Catalog{
		venues: make([]venue.Venue, 0, len(venues)),
		index:  make(map[string]int, len(venues)),
	}
	for i := range venues {
		if err := c.add(i, venues[i]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Empty returns a catalog with no venues.
func Empty() *Catalog {
	c, _ := New(nil)
	return c
}

func (c *Catalog) add(i int, v venue.Venue) error {
	if err := v.Validate(); err != nil {
		return &ValidationError{Index: i, ID: v.ID, Err: err}
	}
	if _, dup := c.index[v.ID]; dup {
		return &ValidationError{Index: i, ID: v.ID, Err: ErrDuplicateID}
	}
	c.index[v.ID] = len(c.venues)
	c.venues = append(c.venues, v)
	return nil
}

// Venues returns a copy of the catalog in catalog order.
func (c *Catalog) Venues() []venue.Venue {
	out := make([]venue.Venue, len(c.venues))
	copy(out, c.venues)
	return out
}

func (c *Catalog) Len() int { return len(c.venues) }

func (c *Catalog) Get(id string) (venue.Venue, bool) {
	i, ok := c.index[id]
	if !ok {
		return venue.Venue{}, false
	}
	return c.venues[i], true
}

// Append returns a new catalog with v added at the end. c is unchanged.
func (c *Catalog) Append(v venue.Venue) (*Catalog, error) {
	next := &Catalog{
		venues: make([]venue.Venue, len(c.venues), len(c.venues)+1),
		index:  make(map[string]int, len(c.venues)+1),
	}
	copy(next.venues, c.venues)
	for id, i := range c.index {
		next.index[id] = i
	}
	if err := next.add(len(c.venues), v); err != nil {
		return nil, err
	}
	return next, nil
}

// Store publishes the current catalog. Readers take a point-in-time
// snapshot; a Replace never affects a snapshot already taken.
type Store struct {
	current atomic.Pointer[Catalog]
}

func NewStore(initial *Catalog) *Store {
	s := &Store{}
	if initial == nil {
		initial = Empty()
	}
	s.current.Store(initial)
	return s
}

func (s *Store) Snapshot() *Catalog {
	return s.current.Load()
}

func (s *Store) Replace(c *Catalog) {
	if c == nil {
		c = Empty()
	}
	s.current.Store(c)
}
