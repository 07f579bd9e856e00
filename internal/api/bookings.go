package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
	"github.com/rsukotabanjar/jadwalrapat/internal/utils"
)

// maxBodyBytes bounds the size of a booking request body
const maxBodyBytes = 1 << 20

// ErrorResponse is returned for rejected requests
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RoomsResponse lists the room catalog
type RoomsResponse struct {
	Rooms []string `json:"rooms"`
}

// BookingHandler handles HTTP requests for bookings and rooms
type BookingHandler struct {
	store BookingStorer
}

// NewBookingHandler creates a new booking handler over the given store
func NewBookingHandler(store BookingStorer) *BookingHandler {
	return &BookingHandler{store: store}
}

// listRooms handles GET /api/rooms
func (h *BookingHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RoomsResponse{Rooms: h.store.Catalog().Names()})
}

// listBookings handles GET /api/bookings
func (h *BookingHandler) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.store.SortedView(r.Context())
	if err != nil {
		utils.Logger(r.Context()).Error("failed to list bookings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to list bookings"})
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

// listRoomBookings handles GET /api/rooms/{room}/bookings.
// A room outside the catalog simply has no bookings.
func (h *BookingHandler) listRoomBookings(w http.ResponseWriter, r *http.Request) {
	room := mux.Vars(r)["room"]

	bookings, err := h.store.ViewByRoom(r.Context(), room)
	if err != nil {
		utils.Logger(r.Context()).Error("failed to list room bookings",
			utils.SafeString("room", room),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to list bookings"})
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

// createBooking handles POST /api/bookings
func (h *BookingHandler) createBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	req = req.Normalize()
	if err := req.Validate(h.store.Catalog()); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "invalid booking",
			Fields: models.FieldErrors(err),
		})
		return
	}

	booking, err := h.store.Add(r.Context(), req)
	if err != nil {
		utils.Logger(r.Context()).Error("failed to add booking", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to save booking"})
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
