package prometheus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/controller"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
)

// TierLabel is the label on the tier query result that carries the service objective.
const TierLabel model.LabelName = "service_objective"

var (
	ErrEmptyQuery   = errors.New("prometheus query is empty")
	ErrNoTierSeries = errors.New("tier query returned no series")
)

// Config holds the PromQL expressions used to rebuild resource stats.
type Config struct {
	URL         string
	CPUQuery    string
	WorkerQuery string
	TierQuery   string
	Step        time.Duration
}

// Source reads resource utilization from a Prometheus server that scrapes the database.
type Source struct {
	logger *slog.Logger
	client v1.API
	cfg    Config
	now    func() time.Time
}

var _ controller.SampleSource = (*Source)(nil)

// New creates a Prometheus sample source.
func New(logger *slog.Logger, cfg Config) (*Source, error) {
	for name, q := range map[string]string{
		"cpu":    cfg.CPUQuery,
		"worker": cfg.WorkerQuery,
		"tier":   cfg.TierQuery,
	} {
		if strings.TrimSpace(q) == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyQuery, name)
		}
	}

	if cfg.Step <= 0 {
		return nil, fmt.Errorf("prometheus step must be positive, got %s", cfg.Step)
	}

	client, err := api.NewClient(api.Config{
		Address: cfg.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("create prometheus client: %w", err)
	}

	return &Source{
		logger: logger,
		client: v1.NewAPI(client),
		cfg:    cfg,
		now:    time.Now,
	}, nil
}

// LatestSamplesQuery rebuilds up to limit samples, newest first, from the cpu and worker range queries.
// A cpu point without a worker point at the same timestamp is dropped.
// The tier label comes from an instant query and is stamped on every sample.
func (s *Source) LatestSamplesQuery(
	ctx context.Context,
	limit int,
) ([]scaling.Sample, error) {
	if limit < 1 {
		return nil, nil
	}

	end := s.now().Truncate(s.cfg.Step)
	r := v1.Range{
		Start: end.Add(-time.Duration(limit-1) * s.cfg.Step),
		End:   end,
		Step:  s.cfg.Step,
	}

	cpu, err := s.rangeQuery(ctx, s.cfg.CPUQuery, r)
	if err != nil {
		return nil, fmt.Errorf("cpu range query: %w", err)
	}

	if len(cpu) == 0 {
		return nil, nil
	}

	workers, err := s.rangeQuery(ctx, s.cfg.WorkerQuery, r)
	if err != nil {
		return nil, fmt.Errorf("worker range query: %w", err)
	}

	label, err := s.tierQuery(ctx, end)
	if err != nil {
		return nil, err
	}

	workerAt := make(map[model.Time]float64, len(workers))
	for _, p := range workers {
		workerAt[p.Timestamp] = float64(p.Value)
	}

	samples := make([]scaling.Sample, 0, min(limit, len(cpu)))
	dropped := 0

	for _, p := range slices.Backward(cpu) {
		if len(samples) == limit {
			break
		}

		workers, ok := workerAt[p.Timestamp]
		if !ok {
			dropped++

			continue
		}

		samples = append(samples, scaling.Sample{
			Timestamp:     p.Timestamp.Time().UTC(),
			TierLabel:     label,
			CPUPercent:    float64(p.Value),
			WorkerPercent: workers,
		})
	}

	if dropped > 0 {
		s.logger.DebugContext(ctx, "cpu points without worker points dropped", "dropped", dropped)
	}

	return samples, nil
}

// rangeQuery returns the points of the first series, oldest first.
func (s *Source) rangeQuery(ctx context.Context, query string, r v1.Range) ([]model.SamplePair, error) {
	result, warnings, err := s.client.QueryRange(ctx, query, r)
	if err != nil {
		return nil, fmt.Errorf("query range: %w", err)
	}

	s.logWarnings(ctx, query, warnings)

	matrix, ok := result.(model.Matrix)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %s", result.Type())
	}

	if len(matrix) == 0 {
		return nil, nil
	}

	if len(matrix) > 1 {
		s.logger.WarnContext(ctx, "range query returned several series, using the first",
			"query", query,
			"series", len(matrix),
		)
	}

	return matrix[0].Values, nil
}

func (s *Source) tierQuery(ctx context.Context, at time.Time) (string, error) {
	result, warnings, err := s.client.Query(ctx, s.cfg.TierQuery, at)
	if err != nil {
		return "", fmt.Errorf("tier query: %w", err)
	}

	s.logWarnings(ctx, s.cfg.TierQuery, warnings)

	vector, ok := result.(model.Vector)
	if !ok {
		return "", fmt.Errorf("tier query: unexpected result type %s", result.Type())
	}

	for _, sample := range vector {
		if label, ok := sample.Metric[TierLabel]; ok && label != "" {
			return string(label), nil
		}
	}

	return "", ErrNoTierSeries
}

func (s *Source) logWarnings(ctx context.Context, query string, warnings v1.Warnings) {
	if len(warnings) == 0 {
		return
	}

	s.logger.WarnContext(ctx, "prometheus returned warnings",
		"query", query,
		"warnings", strings.Join(warnings, "; "),
	)
}

// Name returns the component name used by the pinger.
func (s *Source) Name() string {
	return "prometheus"
}

// Ping checks that the Prometheus server answers.
func (s *Source) Ping(ctx context.Context) error {
	if _, err := s.client.Buildinfo(ctx); err != nil {
		return fmt.Errorf("prometheus buildinfo: %w", err)
	}

	return nil
}
