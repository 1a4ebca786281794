package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse reports the status of backend dependencies.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func handleHealth(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		resp := HealthResponse{
			Status: "ok",
			Checks: map[string]string{"sqlite": "ok"},
		}
		status := http.StatusOK

		if err := store.Ping(ctx); err != nil {
			logger.Error("health check failed", "name", "sqlite", "error", err)
			resp.Status = "error"
			resp.Checks["sqlite"] = "error"
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, resp)
	}
}
