package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/skillcoder/hyperscale-autoscaler/internal/adapters/outbound/dryrun"
	"github.com/skillcoder/hyperscale-autoscaler/internal/adapters/outbound/mssql"
	promsource "github.com/skillcoder/hyperscale-autoscaler/internal/adapters/outbound/prometheus"
	"github.com/skillcoder/hyperscale-autoscaler/internal/config"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/cronparser"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/pinger"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/shutdown"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/controller"
)

// Core is the controller together with the outbound adapters it drives.
type Core struct {
	Controller  *controller.Service
	Database    string
	pingers     []pinger.Pinger
	shutdowners []shutdown.Shutdowner
	logger      *slog.Logger
}

// NewCore opens the SQL Server pool, picks the sample source and scaler, and builds the controller.
// When dryRun is set the scaler only logs the change it would make.
func NewCore(
	logger *slog.Logger,
	cfg *config.Config,
	diagnostics controller.Diagnostics,
	dryRun bool,
) (*Core, error) {
	db, database, err := mssql.Open(cfg.SQLConnection, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open sql server: %w", err)
	}

	sqlAdapter := mssql.New(logger.With("adapter", "mssql"), db)

	core := &Core{
		Database:    database,
		pingers:     []pinger.Pinger{sqlAdapter},
		shutdowners: []shutdown.Shutdowner{sqlAdapter},
		logger:      logger,
	}

	var source controller.SampleSource = sqlAdapter

	if cfg.SampleSource == config.SampleSourcePrometheus {
		promSource, err := promsource.New(logger.With("adapter", "prometheus"), promsource.Config{
			URL:         cfg.Prometheus.URL,
			CPUQuery:    cfg.Prometheus.CPUQuery,
			WorkerQuery: cfg.Prometheus.WorkerQuery,
			TierQuery:   cfg.Prometheus.TierQuery,
			Step:        cfg.Prometheus.Step,
		})
		if err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("create prometheus sample source: %w", err)
		}

		source = promSource
		core.pingers = append(core.pingers, promSource)
	}

	var scaler controller.Scaler = sqlAdapter
	if dryRun {
		scaler = dryrun.New(logger.With("adapter", "dryrun"))
	}

	svc, err := controller.New(
		logger,
		source,
		scaler,
		diagnostics,
		cronparser.New(),
		cfg.ControllerSettings(database),
	)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create controller: %w", err)
	}

	core.Controller = svc

	logger.Info("controller configured",
		"database", database,
		"sampleSource", cfg.SampleSource,
		"dryRun", dryRun,
		"scheduleUp", cfg.ScheduleUp,
		"scheduleDown", cfg.ScheduleDown,
	)

	return core, nil
}

// Close releases the adapters. Used by one-shot commands that never reach the app lifecycle.
func (c *Core) Close(ctx context.Context) error {
	if err := shutdown.GracefulShutdown(ctx, c.logger, c.shutdowners); err != nil {
		return fmt.Errorf("close core: %w", err)
	}

	return nil
}
