package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/microsoft/go-mssqldb/msdsn"

	// registers the "sqlserver" driver
	_ "github.com/microsoft/go-mssqldb"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/controller"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

const (
	driverName  = "sqlserver"
	pingTimeout = 5 * time.Second

	latestSamplesQuery = `SELECT TOP (@p1)
	end_time,
	avg_cpu_percent,
	max_worker_percent,
	CAST(DATABASEPROPERTYEX(DB_NAME(), 'ServiceObjective') AS nvarchar(128)) AS service_objective
FROM sys.dm_db_resource_stats
ORDER BY end_time DESC`

	serviceObjectiveQuery = `SELECT CAST(DATABASEPROPERTYEX(@p1, 'ServiceObjective') AS nvarchar(128))`
)

// Adapter reads sys.dm_db_resource_stats and changes the service objective
// of the database it is connected to.
type Adapter struct {
	logger *slog.Logger
	db     *sql.DB
}

var (
	_ controller.SampleSource = (*Adapter)(nil)
	_ controller.Scaler       = (*Adapter)(nil)
)

// New creates a new SQL Server adapter over an open pool.
func New(logger *slog.Logger, db *sql.DB) *Adapter {
	return &Adapter{
		logger: logger,
		db:     db,
	}
}

// Open opens a pool for the connection string and resolves the database name.
// An explicit database wins over the one in the connection string and is written
// into it, so usage is read from the same database that gets scaled.
func Open(connString, database string) (*sql.DB, string, error) {
	cfg, err := msdsn.Parse(connString)
	if err != nil {
		return nil, "", fmt.Errorf("parse connection string: %w", err)
	}

	switch {
	case database == "":
		database = cfg.Database
	case database != cfg.Database:
		connString, err = withDatabase(connString, database)
		if err != nil {
			return nil, "", err
		}
	}

	if database == "" {
		return nil, "", ErrEmptyDatabase
	}

	db, err := sql.Open(driverName, connString)
	if err != nil {
		return nil, "", fmt.Errorf("open sql server pool: %w", err)
	}

	return db, database, nil
}

func (a *Adapter) LatestSamplesQuery(
	ctx context.Context,
	limit int,
) ([]scaling.Sample, error) {
	rows, err := a.db.QueryContext(ctx, latestSamplesQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query resource stats: %w", err)
	}
	defer rows.Close()

	samples := make([]scaling.Sample, 0, limit)
	skipped := 0

	for rows.Next() {
		var row resourceStatsRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("scan resource stats: %w", err)
		}

		sample, ok := toDomainSample(&row)
		if !ok {
			skipped++

			continue
		}

		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read resource stats: %w", err)
	}

	a.logger.DebugContext(ctx, "resource stats fetched", "rows", len(samples), "skipped", skipped)

	return samples, nil
}

func (a *Adapter) ScaleDatabaseCommand(
	ctx context.Context,
	database string,
	target tier.Tier,
) error {
	objective := tier.Format(target)

	var current sql.NullString

	err := a.db.QueryRowContext(ctx, serviceObjectiveQuery, database).Scan(&current)
	if err != nil {
		return fmt.Errorf("query service objective: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(current.String), objective) {
		return fmt.Errorf("scale database: %w", &AlreadyAtTargetError{Objective: objective})
	}

	stmt := fmt.Sprintf(
		"ALTER DATABASE %s MODIFY (SERVICE_OBJECTIVE = '%s')",
		quoteName(database),
		strings.ReplaceAll(objective, "'", "''"),
	)

	if _, err := a.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("alter service objective: %w", err)
	}

	a.logger.InfoContext(ctx, "service objective change submitted",
		"database", database,
		"from", current.String,
		"to", objective,
	)

	return nil
}

// Name returns the component name used by the pinger.
func (a *Adapter) Name() string {
	return "mssql"
}

func (a *Adapter) Ping(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sql server: %w", err)
	}

	return nil
}

// PingerCritical keeps a lost connection out of liveness; only readiness drops.
func (a *Adapter) PingerCritical() bool {
	return false
}

func (a *Adapter) PingerTimeout() time.Duration {
	return pingTimeout
}

// Shutdown closes the pool.
func (a *Adapter) Shutdown(ctx context.Context) error {
	a.logger.InfoContext(ctx, "closing sql server pool")

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close sql server pool: %w", err)
	}

	return nil
}
