package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/traveltrek/internal/utils"
)

const healthCheckTimeout = 2 * time.Second

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// healthz reports 503 while the database is unreachable.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.services.HealthChecker.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("health check failed")
		utils.WriteJSON(w, healthResponse{Status: "unavailable", Database: "down"}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, healthResponse{Status: "ok", Database: "up"}, http.StatusOK)
}
