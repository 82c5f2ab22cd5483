package handlers

import (
	"context"
	"departure-optimizer-service/internal/ports"
	"net/http"
	"time"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and, when a place store or a remote search
// log sink is wired, whether they answer.
type HealthHandler struct {
	Places    ports.PlaceRepository
	SearchLog Pinger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	}

	if h.Places != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if _, err := h.Places.ListPlaces(ctx); err != nil {
			res["status"] = "error"
			res["database"] = "disconnected"
			res["error"] = err.Error()
			writeJSON(w, r, http.StatusServiceUnavailable, res)
			return
		}
		res["database"] = "connected"
	}

	if h.SearchLog != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.SearchLog.Ping(ctx); err != nil {
			res["status"] = "error"
			res["search_log"] = "disconnected"
			res["error"] = err.Error()
			writeJSON(w, r, http.StatusServiceUnavailable, res)
			return
		}
		res["search_log"] = "connected"
	}

	writeJSON(w, r, http.StatusOK, res)
}
