package httpserver

import (
	"time"

	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/appstate"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/pinger"
)

// appstater is what the probe and status handlers read.
type appstater interface {
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
	GetAllStats() map[string]*pinger.Statistics
}
