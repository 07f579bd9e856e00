package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rsukotabanjar/jadwalrapat/internal/locale"
	"github.com/rsukotabanjar/jadwalrapat/internal/models"
	"github.com/rsukotabanjar/jadwalrapat/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Form field names, shared by the template and the form parser
const (
	fieldRoom      = "room"
	fieldTitle     = "title"
	fieldDate      = "date"
	fieldStartTime = "startTime"
	fieldEndTime   = "endTime"
)

// Handler manages web UI requests
type Handler struct {
	store      BookingStorer
	templates  *template.Template
	sseManager *SSEManager
	now        func() time.Time
}

// pageData is the view model of the index page and its partials
type pageData struct {
	Schedules   []models.RoomSchedule
	Rooms       []string
	Form        models.BookingRequest
	Errors      map[string]string
	FormOpen    bool
	MinDate     string
	LastUpdated string
	CurrentYear int
}

// NewHandler creates a new web UI handler
func NewHandler(store BookingStorer) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"longDate": locale.LongDateString,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Handler{
		store:      store,
		templates:  tmpl,
		sseManager: NewSSEManager(),
		now:        time.Now,
	}, nil
}

// Register registers web UI routes on the given router
func (h *Handler) Register(r *mux.Router) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embedded directory always exists
		panic(err)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Handle("/events", h.sseManager).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/", h.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/bookings", h.handleCreateBooking).Methods(http.MethodPost)
	r.HandleFunc("/partial/rooms", h.HandlePartialRoomGrid).Methods(http.MethodGet)
}

// NotifyBookingUpdate sends an update notification to all SSE clients.
// It is registered as a store update callback.
func (h *Handler) NotifyBookingUpdate(booking models.Booking) {
	h.sseManager.NotifyBookingUpdate(booking)
}

// Shutdown gracefully shuts down the web handler and its SSE manager
func (h *Handler) Shutdown() {
	h.sseManager.Shutdown()
}

// handleIndex renders the main page with one panel per room
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := h.newPageData(r)
	if err != nil {
		utils.Logger(r.Context()).Error("failed to load room schedules", zap.Error(err))
		http.Error(w, "Failed to get booking data", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, "layout.html", data)
}

// HandlePartialRoomGrid renders just the room grid for htmx updates
func (h *Handler) HandlePartialRoomGrid(w http.ResponseWriter, r *http.Request) {
	data, err := h.newPageData(r)
	if err != nil {
		utils.Logger(r.Context()).Error("failed to load room schedules", zap.Error(err))
		http.Error(w, "Failed to get booking data", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, "room_grid", data)
}

// handleCreateBooking captures the booking form, validates it and adds the booking
func (h *Handler) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	req := models.BookingRequest{
		Room:      r.PostForm.Get(fieldRoom),
		Title:     r.PostForm.Get(fieldTitle),
		Date:      r.PostForm.Get(fieldDate),
		StartTime: r.PostForm.Get(fieldStartTime),
		EndTime:   r.PostForm.Get(fieldEndTime),
	}.Normalize()

	if err := req.Validate(h.store.Catalog()); err != nil {
		utils.Logger(r.Context()).Debug("rejected booking form", zap.Error(err))

		data, loadErr := h.newPageData(r)
		if loadErr != nil {
			utils.Logger(r.Context()).Error("failed to load room schedules", zap.Error(loadErr))
			http.Error(w, "Failed to get booking data", http.StatusInternalServerError)
			return
		}
		data.Form = req
		data.Errors = formErrors(err)
		data.FormOpen = true

		h.render(w, http.StatusUnprocessableEntity, "layout.html", data)
		return
	}

	if _, err := h.store.Add(r.Context(), req); err != nil {
		utils.Logger(r.Context()).Error("failed to add booking", zap.Error(err))
		http.Error(w, "Failed to save booking", http.StatusInternalServerError)
		return
	}

	if isHTMXRequest(r) {
		h.HandlePartialRoomGrid(w, r)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) newPageData(r *http.Request) (pageData, error) {
	schedules, err := h.store.RoomSchedules(r.Context())
	if err != nil {
		return pageData{}, err
	}

	now := h.now()
	return pageData{
		Schedules:   schedules,
		Rooms:       h.store.Catalog().Names(),
		Errors:      map[string]string{},
		MinDate:     now.Format(models.DateLayout),
		LastUpdated: now.Format("2006-01-02 15:04:05"),
		CurrentYear: now.Year(),
	}, nil
}

// render buffers the named template before writing the status line
func (h *Handler) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		zap.L().Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// formMessages holds the user facing text for each validation failure
var formMessages = map[string]string{
	models.ErrMissingField.Error():   "Wajib diisi.",
	models.ErrUnknownRoom.Error():    "Ruangan tidak dikenal.",
	models.ErrMalformedField.Error(): "Format tidak valid.",
}

// formErrors maps a Validate result to messages keyed by form field
func formErrors(err error) map[string]string {
	out := models.FieldErrors(err)
	for field, msg := range out {
		if text, ok := formMessages[msg]; ok {
			out[field] = text
		}
	}
	return out
}

func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
