package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/PrizeGrid_Go/internal/database"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
)

const (
	readinessTimeout = 2 * time.Second

	healthOK          = "ok"
	healthUnavailable = "unavailable"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ReadinessCheck probes one dependency rounds cannot settle without
type ReadinessCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// DatabaseCheck pings the connection pool
func DatabaseCheck(pool database.Pool) ReadinessCheck {
	return ReadinessCheck{Name: "database", Probe: pool.Ping}
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the process is serving HTTP
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: healthOK})
	}
}

// HandleReadyz runs every check under one shared deadline
// @Summary Readiness check
// @Description Returns OK when every dependency answers. The checks map names each probe.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		resp := HealthResponse{Status: healthOK, Checks: make(map[string]string, len(checks))}
		for _, c := range checks {
			if err := c.Probe(ctx); err != nil {
				logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "check", c.Name, "error", err)
				resp.Checks[c.Name] = healthUnavailable
				if resp.Status == healthOK {
					resp.Status = healthUnavailable
					resp.Message = c.Name + " check failed"
				}
				continue
			}
			resp.Checks[c.Name] = healthOK
		}

		status := http.StatusOK
		if resp.Status != healthOK {
			status = http.StatusServiceUnavailable
		}
		respondJSON(w, status, resp)
	}
}
