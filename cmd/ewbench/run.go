package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bench/bench"
	"github.com/cwbudde/algo-bench/report"
	"github.com/cwbudde/algo-bench/transform"
)

type runFlags struct {
	size        int
	accelerated bool
	transform   string
	layout      string
	timedAlloc  bool
	verify      bool
}

func newRunCmd(a *app) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time one pass of a transform and print the seconds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd, a, f)
		},
	}

	cmd.Flags().IntVarP(&f.size, "size", "n", 0, "number of elements (required, >= 1)")
	cmd.Flags().BoolVar(&f.accelerated, "accelerated", false, "use the compiled kernel strategy")
	cmd.Flags().StringVarP(&f.transform, "transform", "t", transform.Default, "transform name (see 'ewbench kernels')")
	cmd.Flags().StringVar(&f.layout, "layout", "contiguous", "storage layout: contiguous or boxed")
	cmd.Flags().BoolVar(&f.timedAlloc, "timed-alloc", false, "include allocation in the measured time")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "check plain/accelerated equivalence before timing")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func runOnce(cmd *cobra.Command, a *app, f *runFlags) error {
	t, err := transform.Lookup(f.transform)
	if err != nil {
		return err
	}
	layout, err := bench.ParseLayout(f.layout)
	if err != nil {
		return err
	}

	strategy := bench.StrategyPlain
	if f.accelerated {
		strategy = bench.StrategyAccelerated
	}
	mode := bench.AllocUntimed
	if f.timedAlloc {
		mode = bench.AllocTimed
	}

	if f.verify {
		if err := bench.Verify(f.size, t, bench.WithLayout(layout), bench.WithMaxBytes(a.cfg.MaxBytes)); err != nil {
			return err
		}
		slog.Debug("strategies agree", "transform", t.Name, "size", f.size)
	}

	res, err := bench.Run(f.size, t,
		bench.WithStrategy(strategy),
		bench.WithLayout(layout),
		bench.WithAllocMode(mode),
		bench.WithMaxBytes(a.cfg.MaxBytes),
		bench.WithSink(report.SecondsSink(cmd.OutOrStdout())),
	)
	if err != nil {
		return err
	}

	slog.Debug("run finished",
		"transform", res.Transform,
		"size", res.Size,
		"strategy", res.Strategy.String(),
		"layout", res.Layout.String(),
		"alloc", res.AllocMode.String(),
		"impl", res.Impl,
	)
	return nil
}
