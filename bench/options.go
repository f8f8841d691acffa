package bench

import (
	"errors"
	"fmt"
)

const (
	defaultMaxBytes int64 = 8 << 30

	bytesPerFloat = 8
	// An interface header plus the heap-allocated float64 it points at.
	bytesPerBoxed = 16 + 8
)

type config struct {
	strategy       Strategy
	layout         Layout
	allocMode      AllocMode
	maxBytes       int64
	allowNonFinite bool
	capture        bool
	sink           Sink
}

func defaultConfig() config {
	return config{
		strategy:  StrategyPlain,
		layout:    LayoutContiguous,
		allocMode: AllocUntimed,
		maxBytes:  defaultMaxBytes,
	}
}

// Option configures a benchmark run.
type Option func(*config) error

// WithStrategy selects plain or accelerated execution (default plain).
func WithStrategy(s Strategy) Option {
	return func(cfg *config) error {
		if !s.Valid() {
			return fmt.Errorf("bench: invalid strategy: %d", s)
		}
		cfg.strategy = s
		return nil
	}
}

// WithLayout selects the sequence representation (default contiguous).
// The accelerated strategy always runs on contiguous storage.
func WithLayout(l Layout) Option {
	return func(cfg *config) error {
		if !l.Valid() {
			return fmt.Errorf("bench: invalid layout: %d", l)
		}
		cfg.layout = l
		return nil
	}
}

// WithAllocMode selects whether allocation is inside the timed region
// (default untimed).
func WithAllocMode(m AllocMode) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return fmt.Errorf("bench: invalid allocation mode: %d", m)
		}
		cfg.allocMode = m
		return nil
	}
}

// WithMaxBytes caps the memory the two sequences may use (default 8 GiB).
// Larger requests fail with ErrAllocation before anything is allocated.
func WithMaxBytes(n int64) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("bench: max bytes must be > 0: %d", n)
		}
		cfg.maxBytes = n
		return nil
	}
}

// WithAllowNonFinite accepts NaN and ±Inf outputs instead of reporting them
// as domain errors.
func WithAllowNonFinite(allow bool) Option {
	return func(cfg *config) error {
		cfg.allowNonFinite = allow
		return nil
	}
}

// WithCaptureOutput keeps the output sequence in Result.Output.
func WithCaptureOutput() Option {
	return func(cfg *config) error {
		cfg.capture = true
		return nil
	}
}

// WithSink reports every successful result to s.
func WithSink(s Sink) Option {
	return func(cfg *config) error {
		if s == nil {
			return errors.New("bench: nil sink")
		}
		cfg.sink = s
		return nil
	}
}

// effectiveLayout is the layout actually used for a run.
func (cfg config) effectiveLayout() Layout {
	if cfg.strategy == StrategyAccelerated {
		return LayoutContiguous
	}
	return cfg.layout
}

// requiredBytes estimates the memory both sequences need, and reports
// false if the estimate overflows int64.
func requiredBytes(size int, layout Layout) (int64, bool) {
	per := int64(2 * bytesPerFloat)
	if layout == LayoutBoxed {
		per = 2 * bytesPerBoxed
	}
	n := int64(size)
	if n > (1<<63-1)/per {
		return 0, false
	}
	return n * per, true
}
