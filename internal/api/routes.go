package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handler groups the API and health routes
type Handler struct {
	bookings *BookingHandler
	ready    http.HandlerFunc
}

// NewHandler creates the API handler. The readiness probe follows checker.
func NewHandler(store BookingStorer, checker ReadinessChecker) *Handler {
	return &Handler{
		bookings: NewBookingHandler(store),
		ready:    NewHealthReadyHandler(checker),
	}
}

// Register configures the API routes on the given router
func (h *Handler) Register(router *mux.Router) {
	// Health check endpoints for Kubernetes
	router.HandleFunc("/health/live", HealthLiveHandler).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/rooms", h.bookings.listRooms).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room}/bookings", h.bookings.listRoomBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.bookings.listBookings).Methods(http.MethodGet)
	api.HandleFunc("/bookings", h.bookings.createBooking).Methods(http.MethodPost)
}
