package models

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"localgame-server/models/venue"
)

// SportFilter selects venues by sport; SportAll disables the sport rule.
type SportFilter string

const (
	SportAll      SportFilter = "all"
	SportTennis   SportFilter = SportFilter(venue.SportTennis)
	SportPingPong SportFilter = SportFilter(venue.SportPingPong)
)

func (s SportFilter) Valid() bool {
	return s == SportAll || s == SportTennis || s == SportPingPong
}

// Query args understood by CriteriaFromValues.
const (
	QueryArgText     = "q"
	QueryArgSport    = "sport"
	QueryArgLiveOnly = "live"
	QueryArgMaxKm    = "max_km"
)

var ErrInvalidCriteria = errors.New("invalid filter criteria")

// FilterCriteria mirrors the explore screen's filter controls.
type FilterCriteria struct {
	Query         string      `json:"query"`
	Sport         SportFilter `json:"sport"`
	LiveOnly      bool        `json:"live_only"`
	MaxDistanceKm float64     `json:"max_distance_km"`
}

// DefaultCriteria returns the identity criteria: every venue passes.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Sport:         SportAll,
		MaxDistanceKm: math.Inf(1),
	}
}

// Validate rejects criteria the engine should never see.
func (c FilterCriteria) Validate() error {
	if !c.Sport.Valid() {
		return fmt.Errorf("%w: unknown sport %q", ErrInvalidCriteria, c.Sport)
	}
	if math.IsNaN(c.MaxDistanceKm) || c.MaxDistanceKm < 0 {
		return fmt.Errorf("%w: max distance %v", ErrInvalidCriteria, c.MaxDistanceKm)
	}
	return nil
}

// CriteriaFromValues parses query args on top of DefaultCriteria and validates the result.
func CriteriaFromValues(vals url.Values) (FilterCriteria, error) {
	c := DefaultCriteria()
	c.Query = vals.Get(QueryArgText)

	if s := strings.TrimSpace(vals.Get(QueryArgSport)); s != "" {
		c.Sport = SportFilter(strings.ToLower(s))
	}
	if s := vals.Get(QueryArgLiveOnly); s != "" {
		live, err := strconv.ParseBool(s)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q", ErrInvalidCriteria, QueryArgLiveOnly, s)
		}
		c.LiveOnly = live
	}
	if s := vals.Get(QueryArgMaxKm); s != "" {
		km, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q", ErrInvalidCriteria, QueryArgMaxKm, s)
		}
		c.MaxDistanceKm = km
	}
	return c, c.Validate()
}
