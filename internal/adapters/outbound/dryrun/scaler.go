package dryrun

import (
	"context"
	"log/slog"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/controller"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

// SuppressedError reports a tier change that was logged but not applied.
type SuppressedError struct {
	Database string
	Target   tier.Tier
}

func (e *SuppressedError) Error() string {
	return "dry run: scaling " + e.Database + " to " + tier.Format(e.Target) + " suppressed"
}

func (e *SuppressedError) IsDryRun() {}

type scaler struct {
	logger *slog.Logger
}

// New returns a Scaler that never mutates the database.
func New(logger *slog.Logger) controller.Scaler {
	return &scaler{
		logger: logger,
	}
}

func (s *scaler) ScaleDatabaseCommand(
	ctx context.Context,
	database string,
	target tier.Tier,
) error {
	s.logger.InfoContext(ctx, "dry run, not changing service objective",
		"database", database,
		"to", tier.Format(target),
	)

	return &SuppressedError{Database: database, Target: target}
}
