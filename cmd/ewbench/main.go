// Command ewbench times elementwise transforms over large sequences.
//
// Usage:
//
//	ewbench run --size N [--accelerated] [--transform tan] [--layout contiguous|boxed] [--timed-alloc]
//	ewbench suite [--config ewbench.yaml] [--format table|text|json|yaml]
//	ewbench kernels
//	ewbench history [--limit N]
//
// The run command prints the measured duration in seconds on stdout. Logs
// go to stderr.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/cwbudde/algo-bench/bench"
	"github.com/cwbudde/algo-bench/internal/config"
	"github.com/cwbudde/algo-bench/suite"
	"github.com/cwbudde/algo-bench/transform"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "error: panic: %v\n\n%s", r, debug.Stack())
			os.Exit(2)
		}
	}()

	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %s: %v\n", errorKind(err), err)
		return 1
	}
	return 0
}

// errorKind names the failure class printed before the error detail.
func errorKind(err error) string {
	if kind := bench.Kind(err); kind != "" {
		return kind
	}
	switch {
	case errors.Is(err, config.ErrInvalidConfig):
		return "config"
	case errors.Is(err, transform.ErrUnknownTransform), errors.Is(err, suite.ErrInvalidCase):
		return "precondition"
	}
	return "failure"
}
