package controller

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
)

type fixedScheduler struct{}

func (fixedScheduler) NextAfter(_, _ string, after time.Time) (time.Time, error) {
	return after.Add(time.Minute), nil
}

func testInternalPolicy() scaling.Policy {
	return scaling.Policy{
		MinCores:           2,
		MaxCores:           80,
		LowCPUPercent:      20,
		HighCPUPercent:     80,
		LowWorkerPercent:   20,
		HighWorkerPercent:  80,
		RequiredDataPoints: 1,
	}
}

func TestService_Ping_Overdue(t *testing.T) {
	t.Parallel()

	policy := testInternalPolicy()

	svc, err := New(slog.Default(), nil, nil, nil, fixedScheduler{}, Settings{
		Database: "orders",
		Up:       policy,
		Down:     policy,
	})
	require.NoError(t, err)

	close(svc.ready)

	svc.setNextRunAt(scaling.DirectionDown, time.Now().Add(time.Minute))
	require.NoError(t, svc.Ping(t.Context()))

	svc.setNextRunAt(scaling.DirectionDown, time.Now().Add(-time.Hour))
	require.ErrorContains(t, svc.Ping(t.Context()), "scale down cycle is overdue")
}

func TestService_LastRunEnd_UnknownDirection(t *testing.T) {
	t.Parallel()

	svc := &Service{loops: map[scaling.Direction]*loopState{}}

	require.True(t, svc.LastRunEnd(scaling.Direction(9)).IsZero())
}

// blockingSource waits for the caller's deadline and reports whether it had one.
type blockingSource struct {
	hadDeadline chan bool
}

func (b blockingSource) LatestSamplesQuery(ctx context.Context, _ int) ([]scaling.Sample, error) {
	_, ok := ctx.Deadline()
	b.hadDeadline <- ok

	<-ctx.Done()

	return nil, ctx.Err()
}

type nopDiagnostics struct{}

func (nopDiagnostics) RecordCycle(context.Context, Report) {}

func TestService_Evaluate_CycleTimeout(t *testing.T) {
	t.Parallel()

	policy := testInternalPolicy()
	source := blockingSource{hadDeadline: make(chan bool, 1)}

	svc, err := New(slog.Default(), source, nil, nopDiagnostics{}, fixedScheduler{}, Settings{
		Database: "orders",
		Up:       policy,
		Down:     policy,
	})
	require.NoError(t, err)
	require.Equal(t, defaultCycleTimeout, svc.cycleTimeout)

	svc.cycleTimeout = 50 * time.Millisecond

	done := make(chan struct{})

	go func() {
		defer close(done)

		svc.evaluate(t.Context(), slog.Default(), scaling.DirectionUp)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cycle was not bounded by its timeout")
	}

	require.True(t, <-source.hadDeadline)
	require.False(t, svc.LastRunEnd(scaling.DirectionUp).IsZero())
}
