package pinger

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	name          string
	err           error
	delay         time.Duration
	calls         atomic.Int32
	readyCritical *bool
	timeout       time.Duration
}

func (p *stubPinger) Name() string { return p.name }

func (p *stubPinger) Ping(ctx context.Context) error {
	p.calls.Add(1)

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return p.err
}

type optionalPinger struct {
	*stubPinger
}

func (p optionalPinger) PingerReadyCritical() bool {
	return p.readyCritical == nil || *p.readyCritical
}

func (p optionalPinger) PingerTimeout() time.Duration { return p.timeout }

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("register valid pinger", func(t *testing.T) {
		t.Parallel()

		s := New(slog.Default(), time.Second)
		require.NoError(t, s.Register(&stubPinger{name: "db"}))
	})

	t.Run("register nil pinger", func(t *testing.T) {
		t.Parallel()

		s := New(slog.Default(), time.Second)
		require.ErrorIs(t, s.Register(nil), ErrNilPinger)
	})

	t.Run("register duplicate pinger", func(t *testing.T) {
		t.Parallel()

		s := New(slog.Default(), time.Second)
		require.NoError(t, s.Register(&stubPinger{name: "db"}))
		require.ErrorIs(t, s.Register(&stubPinger{name: "db"}), ErrPingerAlreadyRegistered)
	})

	t.Run("optional interfaces are honoured", func(t *testing.T) {
		t.Parallel()

		notCritical := false
		s := New(slog.Default(), time.Second)
		require.NoError(t, s.Register(optionalPinger{&stubPinger{
			name:          "prometheus",
			readyCritical: &notCritical,
			timeout:       5 * time.Second,
		}}))

		info := s.pingers["prometheus"]
		require.False(t, info.readyCritical)
		require.True(t, info.healthCritical)
		require.Equal(t, 5*time.Second, info.timeout)
	})
}

func TestService_GetStats(t *testing.T) {
	t.Parallel()

	s := New(slog.Default(), time.Second)
	require.NoError(t, s.Register(&stubPinger{name: "db"}))

	stats, err := s.GetStats("db")
	require.NoError(t, err)
	require.True(t, stats.IsReady)
	require.True(t, stats.IsHealthy)
	require.Zero(t, stats.SuccessCount)

	_, err = s.GetStats("missing")
	require.ErrorIs(t, err, ErrPingerNotFound)
}

func TestService_runPingers(t *testing.T) {
	t.Parallel()

	notCritical := false
	ok := &stubPinger{name: "ok"}
	failing := &stubPinger{name: "failing", err: errors.New("connection refused")}
	soft := optionalPinger{&stubPinger{name: "soft", err: errors.New("timeout"), readyCritical: &notCritical}}

	s := New(slog.Default(), time.Second)
	require.NoError(t, s.Register(ok))
	require.NoError(t, s.Register(failing))
	require.NoError(t, s.Register(soft))

	s.runPingers(t.Context())
	s.runPingers(t.Context())

	all := s.GetAllStats()
	require.Len(t, all, 3)

	require.Equal(t, 2, all["ok"].SuccessCount)
	require.True(t, all["ok"].IsReady)

	require.Equal(t, 2, all["failing"].ErrorCount)
	require.Equal(t, 2, all["failing"].ConsecutiveErrors)
	require.False(t, all["failing"].IsReady)
	require.False(t, all["failing"].IsHealthy)
	require.EqualError(t, all["failing"].LastError, "connection refused")

	require.True(t, all["soft"].IsReady)
	require.False(t, all["soft"].IsHealthy)

	failing.err = nil
	s.runPingers(t.Context())

	stats, err := s.GetStats("failing")
	require.NoError(t, err)
	require.Zero(t, stats.ConsecutiveErrors)
	require.True(t, stats.IsHealthy)
	require.False(t, stats.LastErrorAt.IsZero())
}

func TestService_PingerTimeout(t *testing.T) {
	t.Parallel()

	slow := optionalPinger{&stubPinger{name: "slow", delay: time.Second, timeout: 20 * time.Millisecond}}

	s := New(slog.Default(), time.Second)
	require.NoError(t, s.Register(slow))

	start := time.Now()
	s.runPingers(t.Context())

	require.Less(t, time.Since(start), 500*time.Millisecond)

	stats, err := s.GetStats("slow")
	require.NoError(t, err)
	require.ErrorIs(t, stats.LastError, context.DeadlineExceeded)
}

func TestService_Start_Shutdown(t *testing.T) {
	t.Parallel()

	p := &stubPinger{name: "db"}
	s := New(slog.Default(), 10*time.Millisecond)
	require.NoError(t, s.Register(p))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	require.NoError(t, s.Start(ctx))

	select {
	case <-s.Ready():
	case <-time.After(time.Second):
		t.Fatal("pinger service did not become ready")
	}

	require.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()

	require.NoError(t, s.Shutdown(shutdownCtx))
	require.NoError(t, s.Shutdown(shutdownCtx))
}
