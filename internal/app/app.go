package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/skillcoder/hyperscale-autoscaler/internal/config"
	"github.com/skillcoder/hyperscale-autoscaler/internal/httpserver"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/metrics"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/pinger"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/shutdown"
)

var ErrTerminationFile = errors.New("termination file exists, refusing to start")

type App struct {
	logger          *slog.Logger
	appState        appstater
	signals         signalHandler
	terminationFile string
	components      []component
}

// New creates a new application instance with all dependencies wired.
func New(logger *slog.Logger, cfg *config.Config, appState appstater) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	core, err := NewCore(logger.With("controller", "autoscaler"), cfg, metrics.NewRecorder(registry), cfg.DryRun)
	if err != nil {
		return nil, err
	}

	metricsServer := httpserver.NewMetricsServer(logger, registry, cfg.MetricsPort)
	httpServer := httpserver.New(logger, appState, cfg.HTTPPort)
	pingers := appState.Pinger()

	// Registration order is start order; shutdown runs in reverse.
	shutdowners := append(
		[]shutdown.Shutdowner{},
		core.shutdowners...,
	)
	shutdowners = append(shutdowners, metricsServer, httpServer, pingers, core.Controller)

	for _, s := range shutdowners {
		if err := appState.RegisterShutdowner(s); err != nil {
			return nil, fmt.Errorf("register shutdowner %s: %w", s.Name(), err)
		}
	}

	checked := append([]pinger.Pinger{}, core.pingers...)
	checked = append(checked, metricsServer, httpServer, core.Controller)

	for _, p := range checked {
		if err := appState.RegisterPinger(p); err != nil {
			return nil, fmt.Errorf("register pinger %s: %w", p.Name(), err)
		}
	}

	return &App{
		logger:          logger,
		appState:        appState,
		signals:         shutdown.New(logger, appState),
		terminationFile: cfg.TerminationFile,
		components:      []component{metricsServer, httpServer, pingers, core.Controller},
	}, nil
}

// Run starts every component, marks the app running once all are ready,
// and blocks until ctx is cancelled or a termination signal arrives.
func (a *App) Run(originCtx context.Context) error {
	if shutdown.CheckTerminationFile(originCtx, a.logger, a.terminationFile) {
		return ErrTerminationFile
	}

	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	if err := a.appState.SetStarting(ctx); err != nil {
		return fmt.Errorf("set starting application state: %w", err)
	}

	go a.signals.HandleSignals(ctx, cancel)

	runErr := a.start(ctx)
	if runErr != nil {
		cancel()
	} else {
		a.waitRunning(ctx)
	}

	<-ctx.Done()

	a.logger.InfoContext(originCtx, "shutting down application")

	if err := a.appState.Shutdown(originCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("shutdown application: %w", err))
	}

	return runErr
}

func (a *App) start(ctx context.Context) error {
	for _, c := range a.components {
		if err := c.Start(ctx); err != nil {
			return fmt.Errorf("start %s: %w", c.Name(), err)
		}

		a.logger.DebugContext(ctx, "component started", "component", c.Name())
	}

	return nil
}

func (a *App) waitRunning(ctx context.Context) {
	chans := make([]<-chan struct{}, 0, len(a.components))
	for _, c := range a.components {
		chans = append(chans, c.Ready())
	}

	<-allChannelsClose(ctx, a.logger, chans...)

	if ctx.Err() != nil {
		return
	}

	if err := a.appState.SetRunning(ctx); err != nil {
		a.logger.ErrorContext(ctx, "failed to set running application state", "reason", err)

		return
	}

	a.logger.InfoContext(ctx, "application is running")
}

// allChannelsClose returns a channel closed once every input channel is closed or ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for i, ch := range chans {
			select {
			case <-ch:
			case <-ctx.Done():
				logger.WarnContext(ctx, "context done while waiting for components", "pending", len(chans)-i)

				return
			}
		}
	}()

	return out
}
