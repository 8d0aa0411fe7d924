package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"localgame-server/models/venue"
)

func newTestCheckIn(t *testing.T, seed ...venue.LiveActivity) (*CheckInService, *MemoryLiveActivityStore, *ExploreService) {
	store := fixtureStore(t)
	activity := NewMemoryLiveActivityStore(seed...)
	refresher := newTestRefresher(t, FixtureSource(fixturePath("venues.json")), activity, store)
	svc := NewCheckInService(store, activity, refresher, venue.DefaultStatusStaleAfter, zaptest.NewLogger(t))
	return svc, activity, NewExploreService(store)
}

func TestCheckInService_CheckIn(t *testing.T) {
	svc, _, explore := newTestCheckIn(t)

	a, err := svc.CheckIn(context.Background(), "v4", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Players)
	assert.Equal(t, "v4", a.VenueID)
	assert.Equal(t, fixedNow, a.LastCheckIn)

	a, err = svc.CheckIn(context.Background(), "v4", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Players)

	v4, err := explore.Venue("v4")
	require.NoError(t, err)
	assert.Equal(t, venue.StatusLive, v4.Status)
	assert.Equal(t, 3, v4.Players)
}

func TestCheckInService_FirstCheckInCountsFromCatalog(t *testing.T) {
	svc, _, explore := newTestCheckIn(t)
	before, err := explore.Venue("v1")
	require.NoError(t, err)
	require.Equal(t, 7, before.Players)

	a, err := svc.CheckIn(context.Background(), "v1", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 8, a.Players)

	after, err := explore.Venue("v1")
	require.NoError(t, err)
	assert.Equal(t, 8, after.Players)
	assert.Equal(t, venue.StatusBusy, after.Status)
}

func TestCheckInService_ConcurrentCheckInsAllCount(t *testing.T) {
	svc, activity, explore := newTestCheckIn(t)
	const arrivals = 200

	var wg sync.WaitGroup
	for i := 0; i < arrivals; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(context.Background(), "v6", fixedNow)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := activity.GetLiveActivity("v6")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, arrivals, stored.Players)

	v6, err := explore.Venue("v6")
	require.NoError(t, err)
	assert.Equal(t, arrivals, v6.Players)
}

func TestCheckInService_CheckInCrossesBusyThreshold(t *testing.T) {
	svc, _, explore := newTestCheckIn(t,
		venue.LiveActivity{VenueID: "v1", Players: 7, LastCheckIn: fixedNow.Add(-10 * time.Minute)})

	a, err := svc.CheckIn(context.Background(), "v1", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 8, a.Players)

	v1, _ := explore.Venue("v1")
	assert.Equal(t, venue.StatusBusy, v1.Status)
}

func TestCheckInService_StaleActivityStartsOver(t *testing.T) {
	svc, activity, _ := newTestCheckIn(t,
		venue.LiveActivity{VenueID: "v2", Players: 4, LastCheckIn: fixedNow.Add(-2 * time.Hour)})

	a, err := svc.CheckIn(context.Background(), "v2", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Players)

	stored, err := activity.GetLiveActivity("v2")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Players)
}

func TestCheckInService_UnknownVenue(t *testing.T) {
	svc, activity, _ := newTestCheckIn(t)

	_, err := svc.CheckIn(context.Background(), "nope", fixedNow)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = svc.CheckOut(context.Background(), "nope", fixedNow)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	stored, err := activity.GetLiveActivity("nope")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestCheckInService_CheckOut(t *testing.T) {
	checkedInAt := fixedNow.Add(-10 * time.Minute)
	svc, _, explore := newTestCheckIn(t,
		venue.LiveActivity{VenueID: "v5", Players: 8, LastCheckIn: checkedInAt})

	a, err := svc.CheckOut(context.Background(), "v5", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 7, a.Players)
	assert.Equal(t, checkedInAt, a.LastCheckIn, "leaving keeps the last arrival time")

	v5, err := explore.Venue("v5")
	require.NoError(t, err)
	assert.Equal(t, venue.StatusLive, v5.Status)
	assert.Equal(t, 7, v5.Players)
}

func TestCheckInService_CheckOutCountsFromCatalog(t *testing.T) {
	svc, _, explore := newTestCheckIn(t)

	a, err := svc.CheckOut(context.Background(), "v1", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 6, a.Players)

	v1, err := explore.Venue("v1")
	require.NoError(t, err)
	assert.Equal(t, 6, v1.Players)
}

func TestCheckInService_CheckOutFloorsAtZero(t *testing.T) {
	svc, _, explore := newTestCheckIn(t,
		venue.LiveActivity{VenueID: "v2", Players: 4, LastCheckIn: fixedNow.Add(-2 * time.Hour)})

	a, err := svc.CheckOut(context.Background(), "v6", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Players)

	a, err = svc.CheckOut(context.Background(), "v2", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Players, "stale activity counts as nobody there")

	v6, err := explore.Venue("v6")
	require.NoError(t, err)
	assert.Equal(t, venue.StatusQuiet, v6.Status)
	assert.Equal(t, 0, v6.Players)
}

func TestCheckInService_CheckInThenOutRestoresCount(t *testing.T) {
	svc, _, explore := newTestCheckIn(t)

	_, err := svc.CheckIn(context.Background(), "v2", fixedNow)
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), "v2", fixedNow)
	require.NoError(t, err)

	v2, err := explore.Venue("v2")
	require.NoError(t, err)
	assert.Equal(t, 4, v2.Players)
	assert.Equal(t, venue.StatusLive, v2.Status)
}
