package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

var directions = []scaling.Direction{scaling.DirectionDown, scaling.DirectionUp}

type loopState struct {
	lastRunEnd time.Time
	nextRunAt  time.Time
}

type Service struct {
	logger       *slog.Logger
	source       SampleSource
	scaler       Scaler
	diagnostics  Diagnostics
	scheduler    Scheduler
	database     string
	catalog      *tier.Catalog
	policies     map[scaling.Direction]scaling.Policy
	schedules    map[scaling.Direction]string
	scheduleTZ   string
	runOnStart   bool
	cycleTimeout time.Duration
	ready        chan struct{}
	doneCh       chan struct{}
	inShutdown   atomic.Bool
	mu           sync.RWMutex
	loops        map[scaling.Direction]*loopState
}

// New creates a new controller service.
func New(
	logger *slog.Logger,
	source SampleSource,
	scaler Scaler,
	diagnostics Diagnostics,
	scheduler Scheduler,
	settings Settings,
) (*Service, error) {
	if settings.Catalog == nil {
		settings.Catalog = tier.Default()
	}

	if settings.ScheduleUp == "" {
		settings.ScheduleUp = DefaultScheduleUp
	}

	if settings.ScheduleDown == "" {
		settings.ScheduleDown = DefaultScheduleDown
	}

	s := &Service{
		logger:      logger,
		source:      source,
		scaler:      scaler,
		diagnostics: diagnostics,
		scheduler:   scheduler,
		database:    settings.Database,
		catalog:     settings.Catalog,
		policies: map[scaling.Direction]scaling.Policy{
			scaling.DirectionUp:   settings.Up,
			scaling.DirectionDown: settings.Down,
		},
		schedules: map[scaling.Direction]string{
			scaling.DirectionUp:   settings.ScheduleUp,
			scaling.DirectionDown: settings.ScheduleDown,
		},
		scheduleTZ:   settings.ScheduleTZ,
		runOnStart:   settings.RunOnStart,
		cycleTimeout: defaultCycleTimeout,
		ready:        make(chan struct{}),
		doneCh:       make(chan struct{}),
		loops:        make(map[scaling.Direction]*loopState, len(directions)),
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	for _, d := range directions {
		s.loops[d] = &loopState{}
	}

	return s, nil
}

func (s *Service) validate() error {
	var errs []error

	if s.database == "" {
		errs = append(errs, errors.New("database name is empty"))
	}

	now := time.Now()

	for _, d := range directions {
		if err := s.policies[d].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s policy: %w", d, err))
		}

		if _, err := s.scheduler.NextAfter(s.schedules[d], s.scheduleTZ, now); err != nil {
			errs = append(errs, fmt.Errorf("%s schedule: %w", d, err))
		}
	}

	return errors.Join(errs...)
}

func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "controller service is shutting down, skipping start")

		return nil
	}

	go s.RunCommand(ctx)

	return nil
}

// Name returns the name of the controller component
func (s *Service) Name() string {
	return "hyperscale-autoscaler"
}

func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
	default:
		return fmt.Errorf("controller service is not ready")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range directions {
		next := s.loops[d].nextRunAt
		if next.IsZero() {
			continue
		}

		if lag := time.Since(next); lag > maxScheduleLag {
			return fmt.Errorf("scale %s cycle is overdue by %s", d, lag.Round(time.Second).String())
		}
	}

	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "controller service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "controller service shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down controller service")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before controller loops exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "controller loops exited")
	}

	return nil
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// RunCommand runs the scale-up and scale-down loops until ctx is cancelled.
// The loops are independent: each has its own policy and cadence.
func (s *Service) RunCommand(ctx context.Context) {
	defer close(s.doneCh)

	var wg sync.WaitGroup

	for _, d := range directions {
		wg.Go(func() {
			s.runLoop(ctx, d)
		})
	}

	close(s.ready)

	wg.Wait()
}

func (s *Service) runLoop(ctx context.Context, direction scaling.Direction) {
	logger := s.logger.With("controller", "runLoop", "direction", direction.String())
	spec := s.schedules[direction]

	if s.runOnStart {
		s.evaluate(ctx, logger, direction)
	}

	for {
		next, err := s.scheduler.NextAfter(spec, s.scheduleTZ, time.Now())
		if err != nil {
			logger.ErrorContext(ctx, "compute next run, stopping loop", "schedule", spec, "reason", err)

			return
		}

		s.setNextRunAt(direction, next)
		logger.DebugContext(ctx, "next evaluation scheduled", "at", next)

		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			logger.InfoContext(ctx, "terminating controller loop")

			return
		}

		s.evaluate(ctx, logger, direction)
	}
}

func (s *Service) evaluate(ctx context.Context, logger *slog.Logger, direction scaling.Direction) {
	ctx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
	defer cancel()

	_, err := s.EvaluateCommand(ctx, direction)
	if err != nil {
		logger.ErrorContext(ctx, "evaluate error", "reason", err)
	}

	s.setLastRunEnd(direction, time.Now())
}

func (s *Service) setNextRunAt(d scaling.Direction, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loops[d].nextRunAt = at
}

func (s *Service) setLastRunEnd(d scaling.Direction, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loops[d].lastRunEnd = at
}

// LastRunEnd returns when the given direction last finished a cycle.
func (s *Service) LastRunEnd(d scaling.Direction) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if l, ok := s.loops[d]; ok {
		return l.lastRunEnd
	}

	return time.Time{}
}
