package suite

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-bench/bench"
	"github.com/cwbudde/algo-bench/transform"
)

// ErrInvalidCase is returned for cases that cannot be run.
var ErrInvalidCase = errors.New("suite: invalid case")

// Case is one benchmark configuration.
type Case struct {
	Name      string          `json:"name" yaml:"name"`
	Size      int             `json:"size" yaml:"size"`
	Transform string          `json:"transform" yaml:"transform"`
	Strategy  bench.Strategy  `json:"strategy" yaml:"strategy"`
	Layout    bench.Layout    `json:"layout" yaml:"layout"`
	AllocMode bench.AllocMode `json:"alloc_mode" yaml:"alloc_mode"`
}

// Validate checks c without running it.
func (c Case) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCase)
	}
	if c.Size < 1 {
		return fmt.Errorf("%w: %s: size %d", ErrInvalidCase, c.Name, c.Size)
	}
	if !c.Strategy.Valid() || !c.Layout.Valid() || !c.AllocMode.Valid() {
		return fmt.Errorf("%w: %s: bad mode", ErrInvalidCase, c.Name)
	}
	if _, err := c.transform(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidCase, c.Name, err)
	}
	return nil
}

func (c Case) transform() (transform.Transform, error) {
	name := c.Transform
	if name == "" {
		name = transform.Default
	}
	return transform.Lookup(name)
}

func (c Case) options() []bench.Option {
	return []bench.Option{
		bench.WithStrategy(c.Strategy),
		bench.WithLayout(c.Layout),
		bench.WithAllocMode(c.AllocMode),
	}
}

// DefaultCases returns the four reference cases: a boxed list
// loop, a contiguous array loop, a compiled loop timed together with its
// allocation, and a small native array loop.
func DefaultCases() []Case {
	return []Case{
		{Name: "list", Size: 100_000_000, Transform: transform.Default, Layout: bench.LayoutBoxed},
		{Name: "ndarray", Size: 10_000_000, Transform: transform.Default},
		{
			Name: "jit", Size: 100_000_000, Transform: transform.Default,
			Strategy: bench.StrategyAccelerated, Layout: bench.LayoutBoxed, AllocMode: bench.AllocTimed,
		},
		{Name: "c-array", Size: 100_000, Transform: transform.Default, AllocMode: bench.AllocTimed},
	}
}
