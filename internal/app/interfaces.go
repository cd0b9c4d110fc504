package app

import (
	"context"
	"os"
	"time"

	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/appstate"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/pinger"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/shutdown"
)

// appstater defines the interface for application state management
type appstater interface {
	RegisterPinger(pinger pinger.Pinger) error
	GetAllStats() map[string]*pinger.Statistics
	RegisterShutdowner(shutdowner shutdown.Shutdowner) error
	Pinger() appstate.PingerServer
	Quit() <-chan os.Signal
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	SetTerminating(ctx context.Context) error
	GetStartTime() time.Time
	GetState() appstate.State
	GetUptime() time.Duration
	IsHealthy() bool
	IsReady() bool
	Shutdown(ctx context.Context) error
}

type signalHandler interface {
	HandleSignals(ctx context.Context, cancel func())
}

// component is anything the app starts and waits on before reporting ready.
type component interface {
	Name() string
	Start(ctx context.Context) error
	Ready() <-chan struct{}
}
