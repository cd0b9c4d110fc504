package controller

import (
	"context"
	"time"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

// SampleSource is the port for reading resource utilization.
// Implementations return at most limit rows, newest first; zero rows is not an error.
type SampleSource interface {
	LatestSamplesQuery(
		ctx context.Context,
		limit int,
	) ([]scaling.Sample, error)
}

// Scaler is the port for changing the service objective of a database.
// The request is fire-and-forget: it returns once the change is accepted.
type Scaler interface {
	ScaleDatabaseCommand(
		ctx context.Context,
		database string,
		target tier.Tier,
	) error
}

// Diagnostics receives one report per evaluation cycle.
type Diagnostics interface {
	RecordCycle(ctx context.Context, report Report)
}

// Scheduler computes the next fire time of a cron spec.
type Scheduler interface {
	NextAfter(spec, tz string, after time.Time) (time.Time, error)
}

// alreadyAtTarget is a private interface for recognising a benign
// "database already has this objective" answer without importing the adapter package.
type alreadyAtTarget interface {
	IsAlreadyAtTarget()
}

// dryRun is a private interface for recognising a suppressed mutation.
type dryRun interface {
	IsDryRun()
}
