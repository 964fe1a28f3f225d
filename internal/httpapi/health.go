package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultHealthTimeout = 5 * time.Second

	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

type healthResponse struct {
	Checks map[string]healthCheck `json:"checks,omitempty"`
	Status string                 `json:"status"`
}

type healthCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// livenessHandler always answers OK.
func livenessHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &healthResponse{Status: statusHealthy})
}

// readinessHandler runs every check and answers 503 if any fails.
func readinessHandler(checks map[string]CheckFunc, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, defaultHealthTimeout, log)

		status := http.StatusOK
		if resp.Status == statusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

// runChecks executes all checks in parallel and aggregates the result.
func runChecks(ctx context.Context, checks map[string]CheckFunc, timeout time.Duration, log *slog.Logger) *healthResponse {
	if len(checks) == 0 {
		return &healthResponse{Status: statusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]healthCheck, len(checks))
		status  = statusHealthy
	)

	for name, check := range checks {
		g.Go(func() error {
			result := healthCheck{Status: statusHealthy}
			if err := check(ctx); err != nil {
				result.Status = statusUnhealthy
				result.Error = err.Error()
				log.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = result
			if result.Status == statusUnhealthy {
				status = statusUnhealthy
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return &healthResponse{Status: status, Checks: results}
}
