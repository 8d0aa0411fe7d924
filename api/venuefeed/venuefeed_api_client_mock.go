package venuefeed

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"localgame-server/api"
	"localgame-server/config"
	"localgame-server/models/venue"
	"localgame-server/util"
)

// VenueFeedApiClientMock serves the feed from the JSON fixtures in a resources directory.
type VenueFeedApiClientMock struct {
	resourcesDir string
	now          func() time.Time
}

// NewVenueFeedApiClientMock creates a mock reading fixtures from resourcesDir.
func NewVenueFeedApiClientMock(resourcesDir string) *VenueFeedApiClientMock {
	return &VenueFeedApiClientMock{resourcesDir: resourcesDir}
}

func (c *VenueFeedApiClientMock) SetCredentials(string) {}

// SetClock makes the mock shift fixture check-ins so the latest one happens at now().
// Without a clock the recorded times are served as is.
func (c *VenueFeedApiClientMock) SetClock(now func() time.Time) {
	c.now = now
}

func (c *VenueFeedApiClientMock) GetVenues(ctx context.Context) ([]venue.Venue, error) {
	return util.ReadVenuesFromJSON(filepath.Join(c.resourcesDir, config.VENUES_CATALOG_RESOURCE))
}

func (c *VenueFeedApiClientMock) GetLiveActivity(ctx context.Context, venueID string) (*venue.LiveActivity, error) {
	activity, err := util.ReadLiveActivityFromJSON(filepath.Join(c.resourcesDir, config.LIVE_ACTIVITY_RESOURCE))
	if err != nil {
		return nil, err
	}
	if c.now != nil {
		activity = venue.Rebase(activity, c.now())
	}
	for i := range activity {
		if activity[i].VenueID == venueID {
			return &activity[i], nil
		}
	}
	return nil, fmt.Errorf("%w: live activity for %s", api.ErrNotFound, venueID)
}
