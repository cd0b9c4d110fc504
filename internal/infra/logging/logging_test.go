package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want slog.Level
	}{
		{give: "debug", want: slog.LevelDebug},
		{give: "INFO", want: slog.LevelInfo},
		{give: "warn", want: slog.LevelWarn},
		{give: "error", want: slog.LevelError},
		{give: "", want: slog.LevelInfo},
		{give: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, logging.ParseLevel(tt.give))
		})
	}
}

//nolint:paralleltest // New replaces the slog default logger
func TestNew(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer

	logger := logging.New(&buf, "json", "warn")
	logger.Info("dropped")
	logger.Warn("kept", "database", "orders")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "kept", line["msg"])
	require.Equal(t, "orders", line["database"])
	require.Equal(t, "hyperscale-autoscaler", line["service"])
}
