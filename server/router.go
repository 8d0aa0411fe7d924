package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// VenueRoutes is served by handlers.VenueHandler.
type VenueRoutes interface {
	ListVenues(w http.ResponseWriter, r *http.Request)
	SelectVenue(w http.ResponseWriter, r *http.Request)
	GetVenue(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	VenueMap(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// NotificationRoutes is served by handlers.NotificationHandler.
type NotificationRoutes interface {
	ListNotifications(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	venueHandler        VenueRoutes
	notificationHandler NotificationRoutes
	router              *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	venueHandler VenueRoutes,
	notificationHandler NotificationRoutes,
	router *mux.Router) *Router {
	return &Router{
		venueHandler:        venueHandler,
		notificationHandler: notificationHandler,
		router:              router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects ?q={text}&sport={all|tennis|ping_pong}&live={bool}&max_km={float}&sort={key}&selected={id}
	r.router.HandleFunc("/v1/venues", r.venueHandler.ListVenues).Methods("GET")
	r.router.HandleFunc("/v1/venues/select", r.venueHandler.SelectVenue).Methods("POST")
	// map must be registered before the {id} route
	r.router.HandleFunc("/v1/venues/map", r.venueHandler.VenueMap).Methods("GET")
	r.router.HandleFunc("/v1/venues/{id}", r.venueHandler.GetVenue).Methods("GET")
	r.router.HandleFunc("/v1/venues/{id}/checkins", r.venueHandler.CheckIn).Methods("POST")
	r.router.HandleFunc("/v1/venues/{id}/checkins", r.venueHandler.CheckOut).Methods("DELETE")

	// expects ?tab={all|requests|activity}&unread={bool}
	r.router.HandleFunc("/v1/notifications", r.notificationHandler.ListNotifications).Methods("GET")

	r.router.HandleFunc("/ping", r.venueHandler.Ping).Methods("GET")
}
