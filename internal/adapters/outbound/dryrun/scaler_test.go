package dryrun_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/hyperscale-autoscaler/internal/adapters/outbound/dryrun"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

func TestScaler_ScaleDatabaseCommand(t *testing.T) {
	t.Parallel()

	s := dryrun.New(slog.Default())
	target := tier.Tier{Generation: 5, Cores: 8}

	err := s.ScaleDatabaseCommand(t.Context(), "orders", target)

	var suppressed *dryrun.SuppressedError
	require.True(t, errors.As(err, &suppressed))
	require.Equal(t, "orders", suppressed.Database)
	require.Equal(t, target, suppressed.Target)
	require.EqualError(t, err, "dry run: scaling orders to HS_GEN5_8 suppressed")

	var marker interface{ IsDryRun() }
	require.ErrorAs(t, err, &marker)
}
