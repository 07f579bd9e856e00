// Package api provides the JSON API and health probes of jadwalrapat
package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"
)

// HealthResponse represents the response for health check endpoints
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthLiveHandler handles Kubernetes liveness probe requests
func HealthLiveHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusUp})
}

// NewHealthReadyHandler returns a readiness probe handler that reports DOWN
// with 503 while the checker fails
func NewHealthReadyHandler(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.Ready(ctx); err != nil {
			zap.L().Warn("readiness check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: statusDown})
			return
		}

		writeJSON(w, http.StatusOK, HealthResponse{Status: statusUp})
	}
}
