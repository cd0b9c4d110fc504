package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

// EvaluateCommand runs one evaluation cycle for a direction and applies the decision.
// NoData, InsufficientData and NoChange end the cycle without error.
func (s *Service) EvaluateCommand(ctx context.Context, direction scaling.Direction) (Result, error) {
	policy, ok := s.policies[direction]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownDirection, direction)
	}

	logger := s.logger.With(
		"controller", "EvaluateCommand",
		"direction", direction.String(),
		"database", s.database,
	)

	result := Result{Direction: direction}

	samples, err := s.source.LatestSamplesQuery(ctx, policy.RequiredDataPoints)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrFetchSamples, err)
	}

	snapshot, err := scaling.Window(samples, policy.RequiredDataPoints)
	if err != nil {
		if errors.Is(err, scaling.ErrNoData) {
			logger.InfoContext(ctx, "no usage data received from server")

			result.Outcome = OutcomeNoData
			s.record(ctx, result)

			return result, nil
		}

		return result, fmt.Errorf("window usage samples: %w", err)
	}

	result.Snapshot = snapshot

	current, err := tier.Parse(snapshot.TierLabel)
	if err != nil {
		logger.WarnContext(ctx, "cannot decode current service objective",
			"serviceObjective", snapshot.TierLabel,
			"reason", err,
		)

		result.Outcome = OutcomeFormatError
		s.record(ctx, result)

		return result, fmt.Errorf("%w: %w", ErrDecodeTier, err)
	}

	result.Current = current
	result.Target = current

	decision := scaling.Decide(s.catalog, current, snapshot, policy, direction)
	result.Outcome = decision.Outcome.String()

	switch decision.Outcome {
	case scaling.OutcomeInsufficientData:
		logger.InfoContext(ctx, "not enough data points",
			"dataPoints", snapshot.DataPoints,
			"requiredDataPoints", policy.RequiredDataPoints,
		)
	case scaling.OutcomeScaleTo:
		result.Target = decision.Target

		result.Applied, err = s.scaleDatabaseCommand(ctx, logger, current, decision.Target)
	case scaling.OutcomeNoChange:
	}

	s.record(ctx, result)
	logCycle(ctx, logger, result)

	return result, err
}

func (s *Service) scaleDatabaseCommand(
	ctx context.Context,
	logger *slog.Logger,
	current,
	target tier.Tier,
) (bool, error) {
	logger = logger.With("from", current.String(), "to", target.String())

	err := s.scaler.ScaleDatabaseCommand(ctx, s.database, target)
	if err != nil {
		var dryRunTarget dryRun
		if errors.As(err, &dryRunTarget) {
			logger.InfoContext(ctx, "scaling suppressed by dry run")

			return false, nil
		}

		var alreadyAtTargetTarget alreadyAtTarget
		if errors.As(err, &alreadyAtTargetTarget) {
			logger.DebugContext(ctx, "database already at target objective")

			return false, nil
		}

		return false, fmt.Errorf("%w: %w", ErrScaleDatabase, err)
	}

	logger.InfoContext(ctx, "scaling requested")

	return true, nil
}

func (s *Service) record(ctx context.Context, result Result) {
	s.diagnostics.RecordCycle(ctx, Report{
		Database: s.database,
		Result:   result,
	})
}

func logCycle(ctx context.Context, logger *slog.Logger, r Result) {
	logger.InfoContext(ctx, "usage evaluated",
		"outcome", r.Outcome,
		"dataPoints", r.Snapshot.DataPoints,
		"avgCpuPercent", r.Snapshot.CPUPercent,
		"movingAvgCpuPercent", r.Snapshot.MovingAvgCPUPercent,
		"workersPercent", r.Snapshot.WorkerPercent,
		"movingAvgWorkersPercent", r.Snapshot.MovingAvgWorkerPercent,
		"currentCores", r.Current.Cores,
		"targetCores", r.Target.Cores,
	)
}
