package web

import (
	"net/http"

	"github.com/r3labs/sse/v2"
	"go.uber.org/zap"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
)

// UpdatesStream is the single SSE stream every browser subscribes to
const UpdatesStream = "updates"

// SSEManager handles server-sent events to clients
type SSEManager struct {
	server *sse.Server
}

// NewSSEManager creates a new server-sent events manager
func NewSSEManager() *SSEManager {
	server := sse.New()
	// Browsers reload the full grid on connect, old events are useless to them
	server.AutoReplay = false
	server.AutoStream = false
	server.Headers = map[string]string{
		"Cache-Control":          "no-cache, no-transform",
		"X-Accel-Buffering":      "no", // Disable nginx proxy buffering
		"X-Content-Type-Options": "nosniff",
	}
	server.CreateStream(UpdatesStream)

	return &SSEManager{server: server}
}

// ServeHTTP implements the http.Handler interface for SSE connections.
// Clients do not need to name the stream; they always get UpdatesStream.
func (sm *SSEManager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers to make SSE work in various environments
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	zap.L().Debug("sse client connected",
		zap.String("remote_addr", r.RemoteAddr),
		zap.String("proto", r.Proto),
		zap.String("user_agent", r.UserAgent()),
	)

	streamReq := r.Clone(r.Context())
	query := streamReq.URL.Query()
	query.Set("stream", UpdatesStream)
	streamReq.URL.RawQuery = query.Encode()
	// Event ids are booking ids; replay is disabled so the header is not needed
	streamReq.Header.Del("Last-Event-ID")

	sm.server.ServeHTTP(w, streamReq)

	zap.L().Debug("sse client disconnected", zap.String("remote_addr", r.RemoteAddr))
}

// NotifyBookingUpdate tells all connected clients that the schedule changed
func (sm *SSEManager) NotifyBookingUpdate(booking models.Booking) {
	zap.L().Debug("publishing sse update", zap.String("booking_id", booking.ID))

	sm.server.Publish(UpdatesStream, &sse.Event{
		ID:    []byte(booking.ID),
		Event: []byte("update"),
		Data:  []byte(booking.Room),
	})
}

// Shutdown closes every stream, which ends all open SSE requests
func (sm *SSEManager) Shutdown() {
	sm.server.Close()
}
