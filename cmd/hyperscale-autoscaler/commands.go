package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/skillcoder/hyperscale-autoscaler/internal/app"
	"github.com/skillcoder/hyperscale-autoscaler/internal/config"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/appstate"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/logging"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/metrics"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/pinger"
	"github.com/skillcoder/hyperscale-autoscaler/internal/infra/shutdown"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/controller"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/scaling"
	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

const evaluateTimeout = 2 * time.Minute

// signalQuiter adapts the signal channel for shutdown.Handler.
type signalQuiter <-chan os.Signal

func (q signalQuiter) Quit() <-chan os.Signal {
	return q
}

func newRootCmd(signals <-chan os.Signal, appStart time.Time) *cobra.Command {
	var configFile string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the autoscaler with health and metrics servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runService(cmd.Context(), configFile, signals, appStart)
		},
	}

	rootCmd := &cobra.Command{
		Use:           "hyperscale-autoscaler",
		Short:         "Vertical autoscaler for Azure SQL Hyperscale databases",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCmd.RunE,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional YAML config file (env: HSAUTOSCALER_CONFIG_FILE)")

	rootCmd.AddCommand(
		runCmd,
		newEvaluateCmd(&configFile, signals),
		newTiersCmd(&configFile),
	)

	return rootCmd
}

func runService(ctx context.Context, configFile string, signals <-chan os.Signal, appStart time.Time) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	pingers := pinger.New(logger, cfg.PingerInterval)
	appState := appstate.New(logger, appStart, cfg.TerminationFile, signals, pingers)

	application, err := app.New(logger, cfg, appState)
	if err != nil {
		return fmt.Errorf("new application: %w", err)
	}

	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("run application: %w", err)
	}

	logger.InfoContext(ctx, "bye")

	return nil
}

func newEvaluateCmd(configFile *string, signals <-chan os.Signal) *cobra.Command {
	var (
		direction string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run a single scaling cycle and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := scaling.ParseDirection(direction)
			if err != nil {
				return err
			}

			cfg, err := config.Load(*configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)

			core, err := app.NewCore(logger, cfg, metrics.NewRecorder(prometheus.NewRegistry()), dryRun || cfg.DryRun)
			if err != nil {
				return err
			}

			defer func() {
				if err := core.Close(context.WithoutCancel(cmd.Context())); err != nil {
					logger.ErrorContext(cmd.Context(), "failed to close", "reason", err)
				}
			}()

			ctx, cancel := context.WithTimeout(cmd.Context(), evaluateTimeout)
			defer cancel()

			go shutdown.New(logger, signalQuiter(signals)).HandleSignals(ctx, cancel)

			result, err := core.Controller.EvaluateCommand(ctx, d)
			printResult(cmd.OutOrStdout(), core.Database, result)

			return err
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "up", "direction to evaluate: up or down")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the decision without changing the service objective")

	return cmd
}

func printResult(w io.Writer, database string, r controller.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "database\t%s\n", database)
	fmt.Fprintf(tw, "direction\t%s\n", r.Direction)
	fmt.Fprintf(tw, "outcome\t%s\n", r.Outcome)

	if r.Snapshot.DataPoints > 0 {
		fmt.Fprintf(tw, "sampled at\t%s\n", r.Snapshot.Timestamp.Format(time.RFC3339))
		fmt.Fprintf(tw, "data points\t%d\n", r.Snapshot.DataPoints)
		fmt.Fprintf(tw, "cpu %%\t%.2f (avg %.2f)\n", r.Snapshot.CPUPercent, r.Snapshot.MovingAvgCPUPercent)
		fmt.Fprintf(tw, "workers %%\t%.2f (avg %.2f)\n", r.Snapshot.WorkerPercent, r.Snapshot.MovingAvgWorkerPercent)
	}

	if r.Current != (tier.Tier{}) {
		fmt.Fprintf(tw, "current\t%s\n", tier.Format(r.Current))
	}

	if r.Target != (tier.Tier{}) {
		fmt.Fprintf(tw, "target\t%s\n", tier.Format(r.Target))
	}

	fmt.Fprintf(tw, "applied\t%t\n", r.Applied)

	_ = tw.Flush()
}

func newTiersCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the effective tier ladder per hardware generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			printLadders(cmd.OutOrStdout(), cfg.Catalog)

			return nil
		},
	}
}

func printLadders(w io.Writer, catalog *tier.Catalog) {
	for _, gen := range catalog.Generations() {
		names := make([]string, 0, len(catalog.Ladder(gen)))
		for _, t := range catalog.Ladder(gen) {
			names = append(names, tier.Format(t))
		}

		fmt.Fprintf(w, "gen%d: %s\n", gen, strings.Join(names, " "))
	}
}
