package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/dto"
	"github.com/jsamuelsen11/libsql-todos/internal/platform/logging"
	"github.com/jsamuelsen11/libsql-todos/internal/ports"
)

// HealthHandler serves /health/live and /health/ready.
type HealthHandler struct {
	registry ports.HealthRegistry
}

func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness answers {"status":"ok"} without consulting any checker, so a slow
// primary never gets the process restarted.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, dto.HealthResponse{Status: dto.HealthOK})
}

// Readiness runs every registered check and answers 503 if any failed. Each
// failure is also logged at warn.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	results := h.registry.CheckAll(r.Context())
	body, ready := dto.ToHealthResponse(results)
	if ready {
		respondJSON(w, r, http.StatusOK, body)
		return
	}

	log := logging.FromContext(r.Context(), nil)
	for name, err := range results {
		if err != nil {
			log.WarnContext(r.Context(), "readiness check failed",
				slog.String("check", name),
				slog.Any("error", err),
			)
		}
	}
	respondJSON(w, r, http.StatusServiceUnavailable, body)
}
