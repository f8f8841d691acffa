package bench

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-bench/transform"
)

// Verify runs t with both strategies and compares the outputs bit for bit.
// opts apply to both runs; any strategy, capture or sink options are
// overridden.
func Verify(size int, t transform.Transform, opts ...Option) error {
	base := append([]Option{}, opts...)
	base = append(base, WithCaptureOutput(), withoutSink())

	plain, err := Run(size, t, append(base, WithStrategy(StrategyPlain))...)
	if err != nil {
		return fmt.Errorf("bench: verify plain: %w", err)
	}
	accel, err := Run(size, t, append(base, WithStrategy(StrategyAccelerated))...)
	if err != nil {
		return fmt.Errorf("bench: verify accelerated: %w", err)
	}

	return compareOutputs(t.Name, plain.Output, accel.Output)
}

func withoutSink() Option {
	return func(cfg *config) error {
		cfg.sink = nil
		return nil
	}
}

func compareOutputs(name string, plain, accel []float64) error {
	if len(plain) != len(accel) {
		return &MismatchError{Transform: name, Index: min(len(plain), len(accel))}
	}
	for i := range plain {
		if math.Float64bits(plain[i]) != math.Float64bits(accel[i]) {
			return &MismatchError{Transform: name, Index: i, Plain: plain[i], Accelerated: accel[i]}
		}
	}
	return nil
}
