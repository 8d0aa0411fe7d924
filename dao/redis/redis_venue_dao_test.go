package redis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localgame-server/db"
	"localgame-server/models/venue"
)

func testVenue(id, name string) venue.Venue {
	return venue.Venue{
		ID:         id,
		Name:       name,
		Area:       "Queen West",
		Sport:      venue.SportTennis,
		Status:     venue.StatusLive,
		Players:    3,
		Vibe:       7,
		DistanceKm: 1.5,
		X:          40,
		Y:          60,
	}
}

func TestRedisVenueDAO_ReplaceCatalog_StoresMemberJSON(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisVenueDAO(mockClient)

	require.NoError(t, dao.ReplaceCatalog([]venue.Venue{testVenue("venue123", "Test Venue")}))

	storedValue, err := mockClient.Get("venues_catalog_member_v1:venue123")
	require.NoError(t, err)

	var stored venue.Venue
	require.NoError(t, json.Unmarshal([]byte(storedValue), &stored))
	assert.Equal(t, "venue123", stored.ID)
	assert.Equal(t, venue.SportTennis, stored.Sport)
}

func TestRedisVenueDAO_ListVenues_NoResults(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient(context.Background()))

	venues, err := dao.ListVenues()

	require.NoError(t, err)
	assert.Empty(t, venues)
}

func TestRedisVenueDAO_ReplaceCatalog(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisVenueDAO(mockClient)
	require.NoError(t, dao.ReplaceCatalog([]venue.Venue{testVenue("old", "Old"), testVenue("a", "A")}))

	require.NoError(t, dao.ReplaceCatalog([]venue.Venue{testVenue("b", "B"), testVenue("a", "A")}))

	venues, err := dao.ListVenues()
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, "b", venues[0].ID)
	assert.Equal(t, "a", venues[1].ID)

	_, err = mockClient.Get("venues_catalog_member_v1:old")
	assert.ErrorIs(t, err, db.ErrKeyNotFound, "dropped venues leave no data behind")
}

func TestRedisVenueDAO_LiveActivity(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient(context.Background()))
	at := time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC)

	missing, err := dao.GetLiveActivity("v1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, dao.SetLiveActivity(venue.LiveActivity{VenueID: "v1", Players: 5, LastCheckIn: at}))
	require.NoError(t, dao.SetLiveActivity(venue.LiveActivity{VenueID: "v2", Players: 1, LastCheckIn: at}))

	got, err := dao.GetLiveActivity("v1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Players)
	assert.True(t, at.Equal(got.LastCheckIn))

	ids, err := dao.ListLiveActivityVenueIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1", "v2"}, ids)

	require.NoError(t, dao.DeleteLiveActivity("v1"))
	ids, err = dao.ListLiveActivityVenueIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, ids)
}

func TestRedisVenueDAO_UpdateLiveActivity(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient(context.Background()))
	at := time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC)
	increment := func(current *venue.LiveActivity) venue.LiveActivity {
		next := venue.LiveActivity{LastCheckIn: at}
		if current != nil {
			next.Players = current.Players
		}
		next.Players++
		return next
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := dao.UpdateLiveActivity("v1", increment)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := dao.GetLiveActivity("v1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 50, got.Players)
	assert.Equal(t, "v1", got.VenueID)
}

func TestRedisVenueDAO_ErrorsCarryPrefix(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisVenueDAO(mockClient)
	require.NoError(t, mockClient.Set("live_activity_v1:v1", "not json"))

	_, err := dao.GetLiveActivity("v1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[RedisVenueDAO]")

	_, err = dao.UpdateLiveActivity("v1", func(*venue.LiveActivity) venue.LiveActivity { return venue.LiveActivity{} })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[RedisVenueDAO]")
}
