// Package suite runs a list of benchmark cases with warmup and repetitions
// and summarizes the measured durations.
//
// Cases run one after another on the calling goroutine.
package suite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-bench/bench"
	"github.com/cwbudde/algo-bench/internal/cpu"
	"github.com/cwbudde/algo-bench/internal/timing"
	"github.com/cwbudde/algo-bench/stats/periodicity"
	"github.com/cwbudde/algo-bench/stats/sample"
)

// minPeriodicitySamples is the repetition count from which a case's
// durations are checked for periodic interference.
const minPeriodicitySamples = 8

// Options control how each case is repeated.
type Options struct {
	Warmup      int `mapstructure:"warmup" json:"warmup" yaml:"warmup"`
	Repetitions int `mapstructure:"repetitions" json:"repetitions" yaml:"repetitions"`

	// Verify checks plain/accelerated equivalence before measuring, on at
	// most VerifySize elements.
	Verify     bool `mapstructure:"verify" json:"verify" yaml:"verify"`
	VerifySize int  `mapstructure:"verify_size" json:"verify_size" yaml:"verify_size"`

	// MaxBytes caps the memory of a single run; 0 keeps the bench default.
	MaxBytes int64 `mapstructure:"max_bytes" json:"max_bytes" yaml:"max_bytes"`
}

// DefaultOptions returns one warmup, five repetitions and verification.
func DefaultOptions() Options {
	return Options{
		Warmup:      1,
		Repetitions: 5,
		Verify:      true,
		VerifySize:  1 << 16,
	}
}

// Validate reports option combinations that cannot be run.
func (o Options) Validate() error {
	if o.Warmup < 0 {
		return fmt.Errorf("suite: warmup must be >= 0, got %d", o.Warmup)
	}
	if o.Repetitions < 1 {
		return fmt.Errorf("suite: repetitions must be >= 1, got %d", o.Repetitions)
	}
	if o.Verify && o.VerifySize < 1 {
		return fmt.Errorf("suite: verify size must be >= 1, got %d", o.VerifySize)
	}
	if o.MaxBytes < 0 {
		return fmt.Errorf("suite: max bytes must be >= 0, got %d", o.MaxBytes)
	}
	return nil
}

// CaseReport holds the measurements of one case.
type CaseReport struct {
	Case      Case            `json:"case" yaml:"case"`
	Impl      string          `json:"impl" yaml:"impl"`
	Verified  bool            `json:"verified" yaml:"verified"`
	Durations []time.Duration `json:"durations_ns" yaml:"durations_ns"`
	Summary   sample.Summary  `json:"summary" yaml:"summary"`

	// Periodicity is set when there are enough repetitions.
	Periodicity *periodicity.Result `json:"periodicity,omitempty" yaml:"periodicity,omitempty"`
}

// Report is the outcome of a suite run. On error it holds the cases that
// completed.
type Report struct {
	Started     time.Time    `json:"started" yaml:"started"`
	Finished    time.Time    `json:"finished" yaml:"finished"`
	Features    string       `json:"features" yaml:"features"`
	Options     Options      `json:"options" yaml:"options"`
	Cases       []CaseReport `json:"cases" yaml:"cases"`
	Comparisons []Comparison `json:"comparisons,omitempty" yaml:"comparisons,omitempty"`
}

// Runner executes cases.
type Runner struct {
	opts      Options
	observers []Observer
	logger    *slog.Logger
}

// NewRunner creates a runner notifying observers of every measured run.
func NewRunner(opts Options, observers ...Observer) *Runner {
	return &Runner{opts: opts, observers: observers, logger: slog.Default()}
}

// WithLogger replaces the progress logger.
func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	if l != nil {
		r.logger = l
	}
	return r
}

// Run executes cases in order. It stops at the first failing case or when
// ctx is done; cancellation is checked between runs, never inside one.
func (r *Runner) Run(ctx context.Context, cases []Case) (Report, error) {
	clock := timing.Start()
	rep := Report{
		Started:  time.Now(),
		Features: cpu.DetectFeatures().String(),
		Options:  r.opts,
	}

	if err := r.opts.Validate(); err != nil {
		rep.Finished = rep.Started
		return rep, err
	}
	if err := validateCases(cases); err != nil {
		rep.Finished = rep.Started
		return rep, err
	}

	for _, c := range cases {
		cr, err := r.runCase(ctx, c)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				r.fail(c.Name, err)
			}
			rep.Finished = time.Now()
			rep.Comparisons = Compare(rep.Cases)
			return rep, fmt.Errorf("suite: case %q: %w", c.Name, err)
		}
		rep.Cases = append(rep.Cases, cr)
		r.logger.Debug("suite progress", "done", len(rep.Cases), "of", len(cases), "elapsed", clock.Elapsed())
	}

	rep.Comparisons = Compare(rep.Cases)
	rep.Finished = time.Now()
	return rep, nil
}

func validateCases(cases []Case) error {
	if len(cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidCase)
	}
	seen := make(map[string]bool, len(cases))
	for _, c := range cases {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidCase, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

func (r *Runner) runCase(ctx context.Context, c Case) (CaseReport, error) {
	t, _ := c.transform()
	opts := c.options()
	if r.opts.MaxBytes > 0 {
		opts = append(opts, bench.WithMaxBytes(r.opts.MaxBytes))
	}

	cr := CaseReport{Case: c}
	log := r.logger.With("case", c.Name)

	if r.opts.Verify {
		if err := ctx.Err(); err != nil {
			return cr, err
		}
		n := min(c.Size, r.opts.VerifySize)
		if err := bench.Verify(n, t, bench.WithLayout(c.Layout)); err != nil {
			return cr, err
		}
		cr.Verified = true
		log.Debug("strategies agree", "size", n)
	}

	for range r.opts.Warmup {
		if err := ctx.Err(); err != nil {
			return cr, err
		}
		if _, err := bench.Run(c.Size, t, opts...); err != nil {
			return cr, err
		}
	}

	cr.Durations = make([]time.Duration, 0, r.opts.Repetitions)
	running := sample.NewStreaming()
	for i := range r.opts.Repetitions {
		if err := ctx.Err(); err != nil {
			return cr, err
		}
		res, err := bench.Run(c.Size, t, opts...)
		if err != nil {
			return cr, err
		}
		cr.Impl = res.Impl
		cr.Durations = append(cr.Durations, res.Elapsed)
		for _, o := range r.observers {
			o.Observe(c.Name, res)
		}
		running.Update(res.Seconds())
		log.Debug("repetition", "n", i+1, "seconds", res.Seconds(), "mean_s", running.Result().Mean)
	}

	secs := sample.Seconds(cr.Durations)
	cr.Summary = sample.Summarize(secs)
	if len(secs) >= minPeriodicitySamples {
		if p, err := periodicity.Detect(secs); err == nil {
			cr.Periodicity = &p
		}
	}

	log.Info("case finished",
		"impl", cr.Impl,
		"median_s", cr.Summary.Median,
		"cv", cr.Summary.CV,
	)

	return cr, nil
}

func (r *Runner) fail(name string, err error) {
	for _, o := range r.observers {
		o.Failed(name, err)
	}
}
