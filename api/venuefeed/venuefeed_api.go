package venuefeed

import (
	"context"

	"localgame-server/models/venue"
)

// VenueFeedAPI defines the interface for a remote venue catalog feed.
type VenueFeedAPI interface {
	GetVenues(ctx context.Context) ([]venue.Venue, error)
	GetLiveActivity(ctx context.Context, venueID string) (*venue.LiveActivity, error)
	SetCredentials(apiKey string)
}
