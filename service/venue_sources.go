package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"localgame-server/api"
	"localgame-server/api/venuefeed"
	"localgame-server/models/venue"
	"localgame-server/util"
)

// VenueSource supplies the raw venue catalog.
type VenueSource interface {
	LoadVenues(ctx context.Context) ([]venue.Venue, error)
}

// VenueSourceFunc adapts a function to VenueSource.
type VenueSourceFunc func(ctx context.Context) ([]venue.Venue, error)

func (f VenueSourceFunc) LoadVenues(ctx context.Context) ([]venue.Venue, error) {
	return f(ctx)
}

// VenueLister is implemented by the Redis and SQLite DAOs.
type VenueLister interface {
	ListVenues() ([]venue.Venue, error)
}

func ListerSource(l VenueLister) VenueSource {
	return VenueSourceFunc(func(ctx context.Context) ([]venue.Venue, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return l.ListVenues()
	})
}

func FixtureSource(path string) VenueSource {
	return VenueSourceFunc(func(ctx context.Context) ([]venue.Venue, error) {
		return util.ReadVenuesFromJSON(path)
	})
}

func FeedSource(feed venuefeed.VenueFeedAPI) VenueSource {
	return VenueSourceFunc(feed.GetVenues)
}

// LiveActivityStore caches per-venue check-in activity.
// GetLiveActivity returns (nil, nil) on a miss. UpdateLiveActivity applies its
// update atomically per venue, so concurrent check-ins never lose a count.
type LiveActivityStore interface {
	GetLiveActivity(venueID string) (*venue.LiveActivity, error)
	UpdateLiveActivity(venueID string, update venue.ActivityUpdate) (venue.LiveActivity, error)
}

// MemoryLiveActivityStore keeps live activity in process, for sources without Redis.
type MemoryLiveActivityStore struct {
	mu       sync.RWMutex
	activity map[string]venue.LiveActivity
}

func NewMemoryLiveActivityStore(seed ...venue.LiveActivity) *MemoryLiveActivityStore {
	m := &MemoryLiveActivityStore{activity: make(map[string]venue.LiveActivity, len(seed))}
	for _, a := range seed {
		m.activity[a.VenueID] = a
	}
	return m
}

func (m *MemoryLiveActivityStore) GetLiveActivity(venueID string) (*venue.LiveActivity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.activity[venueID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *MemoryLiveActivityStore) UpdateLiveActivity(venueID string, update venue.ActivityUpdate) (venue.LiveActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current *venue.LiveActivity
	if a, ok := m.activity[venueID]; ok {
		current = &a
	}
	next := update(current)
	next.VenueID = venueID
	m.activity[venueID] = next
	return next, nil
}

// FeedLiveActivityStore reads activity from the remote feed and layers local
// check-ins on top. Whichever side saw the latest check-in wins.
type FeedLiveActivityStore struct {
	feed   venuefeed.VenueFeedAPI
	local  *MemoryLiveActivityStore
	update sync.Mutex
}

func NewFeedLiveActivityStore(feed venuefeed.VenueFeedAPI) *FeedLiveActivityStore {
	return &FeedLiveActivityStore{feed: feed, local: NewMemoryLiveActivityStore()}
}

func (s *FeedLiveActivityStore) GetLiveActivity(venueID string) (*venue.LiveActivity, error) {
	local, _ := s.local.GetLiveActivity(venueID)
	remote, err := s.remote(venueID)
	if err != nil {
		if local != nil {
			return local, nil
		}
		return nil, err
	}
	return latestActivity(local, remote), nil
}

// UpdateLiveActivity serializes updates so two check-ins never start from the same remote count.
func (s *FeedLiveActivityStore) UpdateLiveActivity(venueID string, update venue.ActivityUpdate) (venue.LiveActivity, error) {
	s.update.Lock()
	defer s.update.Unlock()

	remote, err := s.remote(venueID)
	if err != nil {
		return venue.LiveActivity{}, err
	}
	return s.local.UpdateLiveActivity(venueID, func(local *venue.LiveActivity) venue.LiveActivity {
		return update(latestActivity(local, remote))
	})
}

func (s *FeedLiveActivityStore) remote(venueID string) (*venue.LiveActivity, error) {
	a, err := s.feed.GetLiveActivity(context.Background(), venueID)
	if errors.Is(err, api.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching live activity for %s: %w", venueID, err)
	}
	return a, nil
}

func latestActivity(a, b *venue.LiveActivity) *venue.LiveActivity {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.LastCheckIn.After(a.LastCheckIn):
		return b
	}
	return a
}
