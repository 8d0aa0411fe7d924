package discovery

import "localgame-server/models/venue"

func torontoVenues() []venue.Venue {
	return []venue.Venue{
		{ID: "v1", Name: "Trinity Bellwoods Courts", Area: "Queen West", Sport: venue.SportTennis, Status: venue.StatusLive, Players: 7, Vibe: 8, DistanceKm: 1.2, X: 38, Y: 55},
		{ID: "v2", Name: "Harbourfront Tables", Area: "Waterfront", Sport: venue.SportPingPong, Status: venue.StatusLive, Players: 4, Vibe: 7, DistanceKm: 2.6, X: 62, Y: 72},
		{ID: "v3", Name: "High Park Courts", Area: "High Park", Sport: venue.SportTennis, Status: venue.StatusBusy, Players: 10, Vibe: 9, DistanceKm: 5.1, X: 18, Y: 38},
		{ID: "v4", Name: "Riverdale East Courts", Area: "Leslieville", Sport: venue.SportTennis, Status: venue.StatusQuiet, Players: 1, Vibe: 4, DistanceKm: 3.8, X: 76, Y: 44},
		{ID: "v5", Name: "Christie Pits Courts", Area: "Christie", Sport: venue.SportTennis, Status: venue.StatusBusy, Players: 8, Vibe: 8, DistanceKm: 3.2, X: 44, Y: 33},
		{ID: "v6", Name: "Dufferin Grove Tables", Area: "Dufferin", Sport: venue.SportPingPong, Status: venue.StatusQuiet, Players: 0, Vibe: 3, DistanceKm: 4.4, X: 29, Y: 22},
	}
}

func ids(vs []venue.Venue) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}
