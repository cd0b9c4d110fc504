package appstate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/pinger"
)

type componentStatus struct {
	Healthy           bool      `json:"healthy"`
	Ready             bool      `json:"ready"`
	LastRun           time.Time `json:"lastRun"`
	LastLatency       string    `json:"lastLatency"`
	LastError         string    `json:"lastError,omitempty"`
	ConsecutiveErrors int       `json:"consecutiveErrors"`
}

type statusResponse struct {
	State      string                     `json:"state"`
	Uptime     string                     `json:"uptime"`
	StartTime  time.Time                  `json:"startTime"`
	UptimeSec  float64                    `json:"uptimeSeconds"`
	Components map[string]componentStatus `json:"components,omitempty"`
}

// failing returns the sorted names of components for which ok is false.
func failing(stats map[string]*pinger.Statistics, ok func(*pinger.Statistics) bool) []string {
	var names []string

	for name, st := range stats {
		if !ok(st) {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names
}

// HandleHealthz returns an http.HandlerFunc for the /-/healthz endpoint
func HandleHealthz(
	logger *slog.Logger,
	appState healthChecker,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logger.With("traceID", middleware.GetReqID(ctx))

		unhealthy := failing(appState.GetAllStats(), func(s *pinger.Statistics) bool { return s.IsHealthy })

		if !appState.IsHealthy() || len(unhealthy) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			logger.DebugContext(ctx, "health check failed", "components", unhealthy)

			return
		}

		w.WriteHeader(http.StatusOK)
		logger.DebugContext(ctx, "health check passed")
	}
}

// HandleReadyz returns an http.HandlerFunc for the /-/readyz endpoint
func HandleReadyz(
	logger *slog.Logger,
	appState readyChecker,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logger.With("traceID", middleware.GetReqID(ctx))

		notReady := failing(appState.GetAllStats(), func(s *pinger.Statistics) bool { return s.IsReady })

		if !appState.IsReady() || len(notReady) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			logger.DebugContext(ctx, "readiness check failed", "components", notReady)

			return
		}

		w.WriteHeader(http.StatusOK)
		logger.DebugContext(ctx, "readiness check passed")
	}
}

// HandleStatus returns an http.HandlerFunc for the /-/status endpoint
func HandleStatus(
	logger *slog.Logger,
	appState statusGetter,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logger.With("traceID", middleware.GetReqID(ctx))

		state := appState.GetState()
		uptime := appState.GetUptime()

		response := statusResponse{
			State:     string(state),
			Uptime:    uptime.String(),
			StartTime: appState.GetStartTime(),
			UptimeSec: uptime.Seconds(),
		}

		if stats := appState.GetAllStats(); len(stats) > 0 {
			response.Components = make(map[string]componentStatus, len(stats))

			for name, st := range stats {
				cs := componentStatus{
					Healthy:           st.IsHealthy,
					Ready:             st.IsReady,
					LastRun:           st.LastRun,
					LastLatency:       st.LastLatency.String(),
					ConsecutiveErrors: st.ConsecutiveErrors,
				}

				if st.LastError != nil {
					cs.LastError = st.LastError.Error()
				}

				response.Components[name] = cs
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.ErrorContext(ctx, "failed to encode status response", "reason", err)

			return
		}

		logger.DebugContext(ctx, "status response sent", "state", string(state))
	}
}
