// Package bench measures the wall-clock cost of an elementwise transform.
//
// A run allocates an input sequence input[i] = i and an output sequence of the
// same length, then times a single increasing-index pass computing
// output[i] = f(input[i]):
//
//	res, err := bench.Run(100_000_000, transform.MustLookup("tan"))
//	fmt.Println(res.Seconds())
//
// Options select the storage layout (contiguous or boxed), the execution
// strategy (plain or accelerated) and whether allocation is timed. The
// accelerated strategy produces bit-identical outputs; only the duration may
// differ.
//
// Runs are single-threaded and synchronous. Each run owns its sequences and
// releases them on return unless WithCaptureOutput is set.
package bench

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-bench/internal/timing"
	"github.com/cwbudde/algo-bench/transform"
)

// Result is the outcome of one successful run.
type Result struct {
	Size      int
	Transform string
	Strategy  Strategy
	Layout    Layout
	AllocMode AllocMode

	// Impl names the code path that executed the loop: "loop" for the plain
	// strategy, otherwise the kernel implementation.
	Impl string

	Span    timing.Span
	Elapsed time.Duration

	// Output is set only with WithCaptureOutput.
	Output []float64
}

// Seconds returns the elapsed time in seconds.
func (r Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// Sink receives results as they are produced.
type Sink interface {
	Report(Result) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Result) error

func (f SinkFunc) Report(r Result) error { return f(r) }

// RunFunc benchmarks an arbitrary scalar function. It has no block kernel,
// so the accelerated strategy uses the unrolled fallback.
func RunFunc(size int, fn transform.Func, opts ...Option) (Result, error) {
	return Run(size, transform.Custom("func", fn), opts...)
}

// Run benchmarks t over size elements.
func Run(size int, t transform.Transform, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Result{}, err
		}
	}

	if size < 1 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if !t.Valid() {
		return Result{}, ErrNilTransform
	}

	layout := cfg.effectiveLayout()
	need, ok := requiredBytes(size, layout)
	if !ok || need > cfg.maxBytes {
		return Result{}, &AllocationError{Size: size, Bytes: need, Limit: cfg.maxBytes}
	}

	j := newJob(cfg, t)

	span, err := measure(j, size, cfg.allocMode)
	if err != nil {
		if de, isDomain := err.(*DomainError); isDomain {
			de.Transform = t.Name
			locatePanic(de, t.Fn, size)
		}
		return Result{}, err
	}

	out := j.output()
	if !cfg.allowNonFinite {
		if err := checkFinite(t, out); err != nil {
			return Result{}, err
		}
	}

	res := Result{
		Size:      size,
		Transform: t.Name,
		Strategy:  cfg.strategy,
		Layout:    layout,
		AllocMode: cfg.allocMode,
		Impl:      j.impl(),
		Span:      span,
		Elapsed:   span.Duration(),
	}
	if cfg.capture {
		res.Output = out
	}

	if cfg.sink != nil {
		if err := cfg.sink.Report(res); err != nil {
			return res, fmt.Errorf("bench: report result: %w", err)
		}
	}

	return res, nil
}

// measure times j. In AllocUntimed mode the start timestamp is taken after
// allocation; in AllocTimed mode before it.
func measure(j job, size int, mode AllocMode) (timing.Span, error) {
	if mode == AllocTimed {
		m := timing.Start()
		if err := allocate(j, size); err != nil {
			return timing.Span{}, err
		}
		if err := execute(j); err != nil {
			return timing.Span{}, err
		}
		return m.Stop(), nil
	}

	if err := allocate(j, size); err != nil {
		return timing.Span{}, err
	}
	m := timing.Start()
	if err := execute(j); err != nil {
		return timing.Span{}, err
	}
	return m.Stop(), nil
}

// allocate converts a runtime allocation panic (e.g. makeslice: len out of
// range) into an AllocationError.
func allocate(j job, size int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AllocationError{Size: size, Cause: fmt.Errorf("%v", r)}
		}
	}()
	j.alloc(size)
	return nil
}

// execute converts a panic inside the transform into a DomainError. The
// index is filled in by locatePanic once the timer has stopped.
func execute(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DomainError{Index: -1, Input: math.NaN(), Output: math.NaN(), Cause: fmt.Errorf("%v", r)}
		}
	}()
	j.exec()
	return nil
}

// locatePanic replays fn in index order to find the first input it panics
// at. The transform is pure, so the replay fails at the same element.
func locatePanic(de *DomainError, fn transform.Func, size int) {
	for i := range size {
		panicked := func() (p bool) {
			defer func() {
				if recover() != nil {
					p = true
				}
			}()
			fn(float64(i))
			return false
		}()
		if panicked {
			de.Index = i
			de.Input = float64(i)
			return
		}
	}
}

// checkFinite reports the first output at which t is undefined: any NaN, and
// ±Inf only when t has a pole. Inputs are the indices themselves and
// therefore always finite.
func checkFinite(t transform.Transform, out []float64) error {
	for i, y := range out {
		if math.IsNaN(y) || (t.Pole && math.IsInf(y, 0)) {
			return &DomainError{Transform: t.Name, Index: i, Input: float64(i), Output: y}
		}
	}
	return nil
}
