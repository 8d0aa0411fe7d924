package venue

import (
	"errors"
	"fmt"
	"math"
)

// Sport is the single sport a venue's play surface is built for.
type Sport string

const (
	SportTennis   Sport = "tennis"
	SportPingPong Sport = "ping_pong"
)

// Valid reports whether s is a known sport.
func (s Sport) Valid() bool {
	return s == SportTennis || s == SportPingPong
}

// Label returns the display name of the sport.
func (s Sport) Label() string {
	switch s {
	case SportTennis:
		return "Tennis"
	case SportPingPong:
		return "Ping Pong"
	}
	return string(s)
}

// Status is the activity level shown for a venue.
type Status string

const (
	StatusLive  Status = "live"
	StatusBusy  Status = "busy"
	StatusQuiet Status = "quiet"
)

func (s Status) Valid() bool {
	return s == StatusLive || s == StatusBusy || s == StatusQuiet
}

// Label returns the badge text used by the presentation layer.
func (s Status) Label() string {
	switch s {
	case StatusLive:
		return "Live now"
	case StatusBusy:
		return "Busy"
	case StatusQuiet:
		return "Quiet"
	}
	return string(s)
}

const (
	MinVibe  = 1
	MaxVibe  = 10
	MinCoord = 0.0
	MaxCoord = 100.0
)

var ErrInvalidVenue = errors.New("invalid venue")

// Venue represents a physical location offering one sport's play surface.
type Venue struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Area       string  `json:"area"`
	Sport      Sport   `json:"sport"`
	Status     Status  `json:"status"`
	Players    int     `json:"players"`
	Vibe       int     `json:"vibe"`
	DistanceKm float64 `json:"distance_km"`

	// Schematic map position, 0..100 on both axes.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Extra details shown on the venue page.
	Address        string `json:"address,omitempty"`
	CourtsOrTables int    `json:"courts_or_tables,omitempty"`
}

// Validate checks the per-venue invariants. Id uniqueness is a catalog concern.
func (v *Venue) Validate() error {
	switch {
	case v.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidVenue)
	case !v.Sport.Valid():
		return fmt.Errorf("%w: %s has unknown sport %q", ErrInvalidVenue, v.ID, v.Sport)
	case !v.Status.Valid():
		return fmt.Errorf("%w: %s has unknown status %q", ErrInvalidVenue, v.ID, v.Status)
	case v.Players < 0:
		return fmt.Errorf("%w: %s has negative players %d", ErrInvalidVenue, v.ID, v.Players)
	case v.Vibe < MinVibe || v.Vibe > MaxVibe:
		return fmt.Errorf("%w: %s has vibe %d outside [%d,%d]", ErrInvalidVenue, v.ID, v.Vibe, MinVibe, MaxVibe)
	case math.IsNaN(v.DistanceKm) || v.DistanceKm < 0:
		return fmt.Errorf("%w: %s has invalid distance %v", ErrInvalidVenue, v.ID, v.DistanceKm)
	case !inCoordRange(v.X) || !inCoordRange(v.Y):
		return fmt.Errorf("%w: %s has coordinates (%v,%v) outside [0,100]", ErrInvalidVenue, v.ID, v.X, v.Y)
	case v.CourtsOrTables < 0:
		return fmt.Errorf("%w: %s has negative courts_or_tables %d", ErrInvalidVenue, v.ID, v.CourtsOrTables)
	}
	return nil
}

func inCoordRange(c float64) bool {
	return c >= MinCoord && c <= MaxCoord
}
