package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rsukotabanjar/jadwalrapat/internal/utils"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// eventsPath is the SSE endpoint that needs long-lived HTTP/1.1 connections
const eventsPath = "/events"

// HTTPProtocolMiddleware stops browsers from switching the SSE stream to
// HTTP/3, which breaks behind some proxies with net::ERR_QUIC_PROTOCOL_ERROR
func HTTPProtocolMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Alt-Svc", "clear")

		if strings.HasPrefix(r.URL.Path, eventsPath) {
			w.Header().Set("Connection", "keep-alive")
			w.Header().Set("X-Force-HTTP1", "true")
		}

		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware tags every request with an id. A valid UUID sent by the
// client or a proxy is kept, anything else is replaced.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(utils.WithRequestID(r.Context(), id)))
	})
}
