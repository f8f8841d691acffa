package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bench/internal/metrics"
	"github.com/cwbudde/algo-bench/report"
	"github.com/cwbudde/algo-bench/suite"
)

func newSuiteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite",
		Short: "Run the configured cases with warmup and repetitions",
		Long: `Runs every configured case in order. Without a cases section in the config
file the four reference cases run: list, ndarray, jit and c-array.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuite(cmd, a)
		},
	}

	d := suite.DefaultOptions()
	fs := cmd.Flags()
	fs.String("format", "table", "report format: table, text, json or yaml")
	fs.Int("warmup", d.Warmup, "discarded runs per case")
	fs.Int("repetitions", d.Repetitions, "measured runs per case")
	fs.Bool("verify", d.Verify, "check plain/accelerated equivalence per case")
	fs.String("db", "", "SQLite file to record the report in")
	fs.String("metrics-file", "", "write Prometheus metrics to this textfile")

	return cmd
}

func runSuite(cmd *cobra.Command, a *app) error {
	cfg := a.cfg

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	cases, err := cfg.SuiteCases()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
	defer stop()

	m := metrics.New()
	runner := suite.NewRunner(cfg.SuiteOptions(), m, suite.LogObserver{}).WithLogger(slog.Default())

	slog.Info("suite starting", "cases", len(cases), "config", cfg.File)
	rep, runErr := runner.Run(ctx, cases)

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			slog.Error("metrics export failed", "path", cfg.MetricsFile, "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if err := report.Write(cmd.OutOrStdout(), rep, format); err != nil {
		return err
	}

	if cfg.DB != "" {
		st, err := openStore(cfg.DB)
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.Save(ctx, rep)
		if err != nil {
			return err
		}
		slog.Info("report saved", "db", cfg.DB, "run", id)
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
