package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bench/internal/config"
	"github.com/cwbudde/algo-bench/internal/store"
	"github.com/cwbudde/algo-bench/internal/telemetry"
)

// openStore allows tests to substitute the history database.
var openStore = func(path string) (historyStore, error) { return store.Open(path) }

// app carries state shared by the subcommands after the root command has
// loaded the configuration.
type app struct {
	cfgFile string
	verbose bool
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ewbench",
		Short: "Time elementwise transforms over large sequences",
		Long: `ewbench measures the wall-clock time of applying a scalar function such as
tan to every element of a sequence input[i] = i. It compares a plain loop with
an accelerated kernel that produces bit-identical results.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./ewbench.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Int64("max-bytes", config.DefaultMaxBytes, "memory ceiling for the sequences of one run")

	root.AddCommand(
		newRunCmd(a),
		newSuiteCmd(a),
		newKernelsCmd(),
		newHistoryCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := telemetry.Init(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}
