package appstate

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/pinger"
)

type stubState struct {
	healthy   bool
	ready     bool
	state     State
	uptime    time.Duration
	startTime time.Time
	stats     map[string]*pinger.Statistics
}

func (s stubState) GetAllStats() map[string]*pinger.Statistics { return s.stats }
func (s stubState) IsHealthy() bool                            { return s.healthy }
func (s stubState) IsReady() bool                              { return s.ready }
func (s stubState) GetState() State                            { return s.state }
func (s stubState) GetUptime() time.Duration                   { return s.uptime }
func (s stubState) GetStartTime() time.Time                    { return s.startTime }

func serve(t *testing.T, handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)

	handler.ServeHTTP(rec, req)

	return rec
}

func TestHandleHealthz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		giveState stubState
		wantCode  int
	}{
		{
			name:      "healthy returns 200",
			giveState: stubState{healthy: true},
			wantCode:  http.StatusOK,
		},
		{
			name:      "unhealthy returns 503",
			giveState: stubState{healthy: false},
			wantCode:  http.StatusServiceUnavailable,
		},
		{
			name: "unhealthy component returns 503",
			giveState: stubState{
				healthy: true,
				stats: map[string]*pinger.Statistics{
					"mssql": {IsHealthy: false, IsReady: false},
				},
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, HandleHealthz(slog.Default(), tt.giveState), "/-/healthz")
			require.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandleReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		giveState stubState
		wantCode  int
	}{
		{
			name:      "ready returns 200",
			giveState: stubState{ready: true},
			wantCode:  http.StatusOK,
		},
		{
			name:      "not ready returns 503",
			giveState: stubState{ready: false},
			wantCode:  http.StatusServiceUnavailable,
		},
		{
			name: "non critical component failure stays ready",
			giveState: stubState{
				ready: true,
				stats: map[string]*pinger.Statistics{
					"prometheus": {IsHealthy: false, IsReady: true},
				},
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := serve(t, HandleReadyz(slog.Default(), tt.giveState), "/-/readyz")
			require.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandleStatus(t *testing.T) {
	t.Parallel()

	giveStartTime := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	giveUptime := 5 * time.Second

	state := stubState{
		state:     StateRunning,
		uptime:    giveUptime,
		startTime: giveStartTime,
		stats: map[string]*pinger.Statistics{
			"mssql": {
				IsHealthy:         false,
				LastLatency:       20 * time.Millisecond,
				LastError:         errors.New("login failed"),
				ConsecutiveErrors: 2,
			},
		},
	}

	rec := serve(t, HandleStatus(slog.Default(), state), "/-/status")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	require.Equal(t, string(StateRunning), body.State)
	require.Equal(t, giveUptime.String(), body.Uptime)
	require.InDelta(t, giveUptime.Seconds(), body.UptimeSec, 0.001)
	require.True(t, giveStartTime.Equal(body.StartTime))
	require.Equal(t, componentStatus{
		LastLatency:       "20ms",
		LastError:         "login failed",
		ConsecutiveErrors: 2,
	}, body.Components["mssql"])
}
