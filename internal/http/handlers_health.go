package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandlers serves liveness checks. With a DB configured the check also pings it.
type HealthHandlers struct {
	DB     Pinger
	Logger *slog.Logger
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health handles GET and HEAD /healthz.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, healthResponse{Status: "ok"}

	if h != nil && h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.WarnContext(r.Context(), "health check: database unreachable", slog.Any("error", err))
			}
			status, body = http.StatusServiceUnavailable, healthResponse{Status: "unavailable"}
		}
	}

	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		return
	}
	WriteJSON(w, status, body)
}
