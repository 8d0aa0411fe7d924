package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"localgame-server/discovery"
	"localgame-server/logging"
	"localgame-server/models"
	"localgame-server/models/venue"
	services "localgame-server/service"
	"localgame-server/util"
)

const (
	SORT_QUERY_ARG     = "sort"
	SELECTED_QUERY_ARG = "selected"
	VENUE_ID_PATH_VAR  = "id"
)

// SelectVenueRequest is the body of POST /v1/venues/select.
// Criteria fields sit at the top level next to sort and id.
type SelectVenueRequest struct {
	models.FilterCriteria
	Sort string `json:"sort"`
	ID   string `json:"id"`
}

type SelectVenueResponse struct {
	Selected string `json:"selected"`
}

type VenueHandler struct {
	explore  *services.ExploreService
	checkIns *services.CheckInService
	now      func() time.Time
	logger   *zap.Logger
}

func NewVenueHandler(explore *services.ExploreService, checkIns *services.CheckInService, logger *zap.Logger) *VenueHandler {
	return &VenueHandler{
		explore:  explore,
		checkIns: checkIns,
		now:      time.Now,
		logger:   logging.Component(logger, "VenueHandler"),
	}
}

// ListVenues handles GET /v1/venues?q=&sport=&live=&max_km=&sort=&selected=
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	criteria, key, err := parseExploreArgs(vals)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	res, err := h.explore.Explore(criteria, key, vals.Get(SELECTED_QUERY_ARG))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, res)
}

// SelectVenue handles POST /v1/venues/select
func (h *VenueHandler) SelectVenue(w http.ResponseWriter, r *http.Request) {
	// +Inf cannot travel as JSON, so an omitted max_distance_km keeps the default.
	req := SelectVenueRequest{FilterCriteria: models.DefaultCriteria()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	key, err := discovery.ParseSortKey(req.Sort)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	id, err := h.explore.Select(req.FilterCriteria, key, req.ID)
	switch {
	case errors.Is(err, discovery.ErrNotFound):
		writeError(w, h.logger, http.StatusNotFound, err)
	case err != nil:
		writeError(w, h.logger, http.StatusBadRequest, err)
	default:
		writeJSON(w, h.logger, http.StatusOK, SelectVenueResponse{Selected: id})
	}
}

// GetVenue handles GET /v1/venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	v, err := h.explore.Venue(mux.Vars(r)[VENUE_ID_PATH_VAR])
	if err != nil {
		writeError(w, h.logger, http.StatusNotFound, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, v)
}

// CheckIn handles POST /v1/venues/{id}/checkins
func (h *VenueHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	activity, err := h.checkIns.CheckIn(r.Context(), mux.Vars(r)[VENUE_ID_PATH_VAR], h.now())
	h.writeActivity(w, "check-in", http.StatusAccepted, activity, err)
}

// CheckOut handles DELETE /v1/venues/{id}/checkins
func (h *VenueHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	activity, err := h.checkIns.CheckOut(r.Context(), mux.Vars(r)[VENUE_ID_PATH_VAR], h.now())
	h.writeActivity(w, "check-out", http.StatusOK, activity, err)
}

func (h *VenueHandler) writeActivity(w http.ResponseWriter, action string, status int, activity venue.LiveActivity, err error) {
	switch {
	case errors.Is(err, services.ErrVenueNotFound):
		writeError(w, h.logger, http.StatusNotFound, err)
	case err != nil:
		h.logger.Error(action+" failed", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, errors.New("internal server error"))
	default:
		writeJSON(w, h.logger, status, activity)
	}
}

// VenueMap handles GET /v1/venues/map and renders the filtered venues as an HTML chart.
func (h *VenueHandler) VenueMap(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	criteria, key, err := parseExploreArgs(vals)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	res, err := h.explore.Explore(criteria, key, vals.Get(SELECTED_QUERY_ARG))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	selectedID := ""
	if res.Selected != nil {
		selectedID = res.Selected.ID
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.RenderVenueMap(w, res.Venues, selectedID); err != nil {
		h.logger.Error("error rendering venue map", zap.Error(err))
	}
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("pinging server")
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "pong"})
}

func parseExploreArgs(vals url.Values) (models.FilterCriteria, discovery.SortKey, error) {
	criteria, err := models.CriteriaFromValues(vals)
	if err != nil {
		return criteria, "", err
	}
	key, err := discovery.ParseSortKey(vals.Get(SORT_QUERY_ARG))
	if err != nil {
		return criteria, "", err
	}
	return criteria, key, nil
}
