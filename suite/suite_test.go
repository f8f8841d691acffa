package suite

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bench/bench"
)

type recorder struct {
	runs     map[string]int
	failures []error
	onRun    func()
}

func newRecorder() *recorder { return &recorder{runs: make(map[string]int)} }

func (r *recorder) Observe(name string, _ bench.Result) {
	r.runs[name]++
	if r.onRun != nil {
		r.onRun()
	}
}

func (r *recorder) Failed(_ string, err error) { r.failures = append(r.failures, err) }

func smallCases() []Case {
	return []Case{
		{Name: "plain", Size: 1000, Transform: "tan"},
		{Name: "boxed", Size: 1000, Transform: "tan", Layout: bench.LayoutBoxed},
		{Name: "accel", Size: 1000, Transform: "tan", Strategy: bench.StrategyAccelerated, AllocMode: bench.AllocTimed},
	}
}

func testOptions() Options {
	return Options{Warmup: 1, Repetitions: 8, Verify: true, VerifySize: 100}
}

func TestRunnerRun(t *testing.T) {
	rec := newRecorder()
	rep, err := NewRunner(testOptions(), rec).Run(context.Background(), smallCases())
	require.NoError(t, err)

	require.Len(t, rep.Cases, 3)
	assert.False(t, rep.Finished.Before(rep.Started))
	assert.NotEmpty(t, rep.Features)

	for _, cr := range rep.Cases {
		assert.True(t, cr.Verified, cr.Case.Name)
		assert.Len(t, cr.Durations, 8, cr.Case.Name)
		assert.Equal(t, 8, cr.Summary.N)
		assert.GreaterOrEqual(t, cr.Summary.Min, 0.0)
		assert.NotNil(t, cr.Periodicity)
		assert.Equal(t, 8, rec.runs[cr.Case.Name], "observer sees measured runs only")
	}
	assert.Equal(t, "loop", rep.Cases[0].Impl)
	assert.Equal(t, "generic", rep.Cases[2].Impl)
	assert.Empty(t, rec.failures)

	require.Len(t, rep.Comparisons, 1)
	assert.Equal(t, "plain", rep.Comparisons[0].Plain)
	assert.Equal(t, "accel", rep.Comparisons[0].Accelerated)
}

func TestRunnerSkipsPeriodicityForFewRepetitions(t *testing.T) {
	opts := testOptions()
	opts.Repetitions = 3
	opts.Verify = false

	rep, err := NewRunner(opts).Run(context.Background(), smallCases()[:1])
	require.NoError(t, err)
	assert.Nil(t, rep.Cases[0].Periodicity)
	assert.False(t, rep.Cases[0].Verified)
}

func TestRunnerValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewRunner(testOptions()).Run(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidCase)

	_, err = NewRunner(testOptions()).Run(ctx, []Case{{Name: "zero", Size: 0}})
	assert.ErrorIs(t, err, ErrInvalidCase)

	_, err = NewRunner(testOptions()).Run(ctx, []Case{{Name: "x", Size: 10, Transform: "nope"}})
	assert.ErrorIs(t, err, ErrInvalidCase)

	dup := []Case{{Name: "a", Size: 10}, {Name: "a", Size: 20}}
	_, err = NewRunner(testOptions()).Run(ctx, dup)
	assert.ErrorIs(t, err, ErrInvalidCase)

	_, err = NewRunner(Options{Repetitions: 0}).Run(ctx, smallCases())
	assert.Error(t, err)
}

func TestRunnerStopsOnFailure(t *testing.T) {
	rec := newRecorder()
	opts := testOptions()
	opts.MaxBytes = 1 << 20

	cases := []Case{
		{Name: "fits", Size: 1000},
		{Name: "too-big", Size: 1 << 20},
		{Name: "never", Size: 10},
	}
	rep, err := NewRunner(opts, rec).Run(context.Background(), cases)

	require.Error(t, err)
	assert.ErrorIs(t, err, bench.ErrAllocation)
	assert.Contains(t, err.Error(), "too-big")
	assert.Len(t, rep.Cases, 1)
	assert.Len(t, rec.failures, 1)
	assert.Zero(t, rec.runs["never"])
}

func TestRunnerDomainFailure(t *testing.T) {
	opts := testOptions()
	opts.Verify = false

	_, err := NewRunner(opts).Run(context.Background(), []Case{{Name: "log", Size: 10, Transform: "log"}})
	var de *bench.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 0, de.Index)
}

func TestRunnerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := newRecorder()
	rec.onRun = cancel

	opts := testOptions()
	opts.Verify = false
	rep, err := NewRunner(opts, rec).Run(ctx, smallCases())

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rep.Cases)
	assert.Equal(t, 1, rec.runs["plain"], "cancellation is checked between runs")
	assert.Empty(t, rec.failures, "cancellation is not reported as a failure")
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := LogObserver{Logger: logger}

	obs.Observe("c", bench.Result{Transform: "tan", Size: 3, Impl: "loop"})
	obs.Failed("c", &bench.DomainError{Transform: "log"})

	out := buf.String()
	assert.Contains(t, out, `"msg":"run finished"`)
	assert.Contains(t, out, `"kind":"domain"`)
}

func TestRunnerProgressLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	opts := DefaultOptions()
	opts.Warmup, opts.Repetitions, opts.Verify = 0, 2, false
	cases := []Case{
		{Name: "a", Size: 4, Transform: "square"},
		{Name: "b", Size: 4, Transform: "square", Strategy: bench.StrategyAccelerated},
	}

	_, err := NewRunner(opts).WithLogger(logger).Run(context.Background(), cases)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 4, strings.Count(out, `"msg":"repetition"`))
	assert.Contains(t, out, `"mean_s":`)
	assert.Contains(t, out, `"msg":"suite progress","done":2,"of":2`)
	assert.Contains(t, out, `"elapsed":`)
}

func TestCompare(t *testing.T) {
	cases := []CaseReport{
		{Case: Case{Name: "p", Size: 10, Transform: "tan"}},
		{Case: Case{Name: "p2", Size: 10, Transform: "tan", AllocMode: bench.AllocTimed}},
		{Case: Case{Name: "a", Size: 10, Strategy: bench.StrategyAccelerated}},
		{Case: Case{Name: "other", Size: 20, Transform: "tan", Strategy: bench.StrategyAccelerated}},
	}
	cases[0].Summary.Median = 2
	cases[2].Summary.Median = 0.5

	comps := Compare(cases)
	require.Len(t, comps, 1)
	assert.Equal(t, "p", comps[0].Plain, "first plain case wins; empty transform means default")
	assert.InDelta(t, 4.0, comps[0].Speedup, 1e-12)
	assert.Equal(t, "p vs a: 4.00x", comps[0].String())

	cases[2].Summary.Median = 0
	assert.Zero(t, Compare(cases)[0].Speedup)
}

func TestDefaultCases(t *testing.T) {
	cases := DefaultCases()
	require.Len(t, cases, 4)
	for _, c := range cases {
		assert.NoError(t, c.Validate())
	}
	assert.Equal(t, "jit", cases[2].Name)
	assert.Equal(t, bench.StrategyAccelerated, cases[2].Strategy)
	assert.Equal(t, bench.AllocTimed, cases[2].AllocMode)
	assert.Equal(t, 100_000, cases[3].Size)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	bad := []Options{
		{Warmup: -1, Repetitions: 1},
		{Repetitions: 0},
		{Repetitions: 1, Verify: true},
		{Repetitions: 1, MaxBytes: -1},
	}
	for _, o := range bad {
		assert.Error(t, o.Validate(), "%+v", o)
	}
	assert.False(t, errors.Is(DefaultOptions().Validate(), ErrInvalidCase))
}
