package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bench/internal/kernel"
	"github.com/cwbudde/algo-bench/report"
	"github.com/cwbudde/algo-bench/transform"
)

func newKernelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernels",
		Short: "List transforms, kernel registry entries and CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if err := report.WriteTransforms(out, transform.All()); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
			return report.WriteKernels(out, kernel.Describe())
		},
	}
}
