package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localgame-server/db"
	"localgame-server/models/venue"
)

func newTestDAO(t *testing.T) *SQLiteVenueDAO {
	t.Helper()
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "venues.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewSQLiteVenueDAO(conn)
}

func sampleVenue(id string) venue.Venue {
	return venue.Venue{
		ID:             id,
		Name:           "Venue " + id,
		Area:           "Christie",
		Sport:          venue.SportPingPong,
		Status:         venue.StatusQuiet,
		Players:        0,
		Vibe:           3,
		DistanceKm:     4.4,
		X:              29,
		Y:              22,
		Address:        "Dufferin Grove Park, Toronto",
		CourtsOrTables: 2,
	}
}

func TestSQLiteVenueDAO_ReplaceAndList(t *testing.T) {
	dao := newTestDAO(t)

	require.NoError(t, dao.ReplaceCatalog([]venue.Venue{sampleVenue("b"), sampleVenue("a")}))

	venues, err := dao.ListVenues()
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, "b", venues[0].ID)
	assert.Equal(t, sampleVenue("a"), venues[1])
}

func TestSQLiteVenueDAO_ReplaceCatalogRepeatedIDKeepsLast(t *testing.T) {
	dao := newTestDAO(t)

	updated := sampleVenue("a")
	updated.Players = 6
	updated.Status = venue.StatusLive
	require.NoError(t, dao.ReplaceCatalog([]venue.Venue{sampleVenue("a"), updated}))

	venues, err := dao.ListVenues()
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, 6, venues[0].Players)
	assert.Equal(t, venue.StatusLive, venues[0].Status)
}

func TestSQLiteVenueDAO_ReplaceCatalog(t *testing.T) {
	dao := newTestDAO(t)
	require.NoError(t, dao.ReplaceCatalog([]venue.Venue{sampleVenue("old")}))

	require.NoError(t, dao.ReplaceCatalog([]venue.Venue{sampleVenue("z"), sampleVenue("y")}))

	venues, err := dao.ListVenues()
	require.NoError(t, err)
	require.Len(t, venues, 2)
	assert.Equal(t, "z", venues[0].ID)
	assert.Equal(t, "y", venues[1].ID)

	require.NoError(t, dao.ReplaceCatalog(nil))
	venues, err = dao.ListVenues()
	require.NoError(t, err)
	assert.Empty(t, venues)
}

func TestSQLiteVenueDAO_ReplaceCatalogRollsBackOnConstraint(t *testing.T) {
	dao := newTestDAO(t)
	require.NoError(t, dao.ReplaceCatalog([]venue.Venue{sampleVenue("keep")}))

	bad := sampleVenue("bad")
	bad.Vibe = 42

	err := dao.ReplaceCatalog([]venue.Venue{sampleVenue("new"), bad})
	require.Error(t, err)

	venues, err := dao.ListVenues()
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "keep", venues[0].ID)
}
