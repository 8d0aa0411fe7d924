package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"localgame-server/catalog"
	"localgame-server/config"
	"localgame-server/models/venue"
	"localgame-server/util"
)

var resourcesDir = filepath.Join("..", config.RESOURCES_PATH_PREFIX)

func fixturePath(name string) string {
	return filepath.Join(resourcesDir, name)
}

func loadFixtureVenues(t *testing.T) []venue.Venue {
	t.Helper()
	venues, err := util.ReadVenuesFromJSON(fixturePath(config.VENUES_CATALOG_RESOURCE))
	require.NoError(t, err)
	return venues
}

func fixtureStore(t *testing.T) *catalog.Store {
	t.Helper()
	c, err := catalog.New(loadFixtureVenues(t))
	require.NoError(t, err)
	return catalog.NewStore(c)
}

func venueIDs(venues []venue.Venue) []string {
	ids := make([]string, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
	}
	return ids
}
