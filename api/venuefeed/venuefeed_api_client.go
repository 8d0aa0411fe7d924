package venuefeed

import (
	"context"
	"net/http"
	"net/url"

	"localgame-server/api"
	"localgame-server/models/venue"
)

const API_KEY_HEADER = "X-Feed-Key"

// VenueFeedApiClient embeds the common HTTPClient
type VenueFeedApiClient struct {
	*api.HTTPClient
	apiKey string
}

// NewVenueFeedApiClient creates a new instance of VenueFeedApiClient
func NewVenueFeedApiClient(httpClient *api.HTTPClient) *VenueFeedApiClient {
	return &VenueFeedApiClient{
		HTTPClient: httpClient,
	}
}

func (c *VenueFeedApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

func (c *VenueFeedApiClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{API_KEY_HEADER: c.apiKey}
}

// GetVenues retrieves the full venue catalog in feed order.
func (c *VenueFeedApiClient) GetVenues(ctx context.Context) ([]venue.Venue, error) {
	var response []venue.Venue
	if err := c.Request(ctx, http.MethodGet, "/venues", c.headers(), nil, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// GetLiveActivity retrieves current check-in activity for a venue.
func (c *VenueFeedApiClient) GetLiveActivity(ctx context.Context, venueID string) (*venue.LiveActivity, error) {
	var response venue.LiveActivity
	if err := c.Request(ctx, http.MethodGet, "/venues/"+url.PathEscape(venueID)+"/live", c.headers(), nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
