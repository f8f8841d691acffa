// Package transform provides the scalar functions that the benchmark applies
// elementwise.
//
// A [Transform] pairs a pure float64 -> float64 function with the name of the
// block kernel that computes the same values over a whole slice. Custom
// transforms carry no kernel and are accelerated by loop unrolling only.
package transform

import (
	"errors"
	"fmt"
	"math"
	"slices"

	approx "github.com/meko-christian/algo-approx"
)

// ErrUnknownTransform is returned by [Lookup] for names not in the catalog.
var ErrUnknownTransform = errors.New("transform: unknown transform")

// Default is the transform timed by the reference cases.
const Default = "tan"

// Func is a scalar function of one real number.
type Func func(float64) float64

// Transform is a named scalar function.
type Transform struct {
	Name string
	Fn   Func

	// Kernel names the block kernel computing Fn bit-for-bit, or "" if none.
	Kernel string

	// Approximate marks functions that trade accuracy for speed.
	Approximate bool

	// Pole marks functions that diverge at some finite input. For these an
	// infinite result means the function is undefined there; for the others
	// it is an overflow of a defined value.
	Pole bool

	Description string
}

// Custom wraps fn as a transform without a block kernel.
func Custom(name string, fn Func) Transform {
	return Transform{Name: name, Fn: fn, Description: "user supplied"}
}

// Valid reports whether t can be evaluated.
func (t Transform) Valid() bool {
	return t.Fn != nil
}

func (t Transform) String() string {
	return t.Name
}

var catalog = map[string]Transform{
	"tan":      builtin("tan", math.Tan, "tangent"),
	"sin":      builtin("sin", math.Sin, "sine"),
	"cos":      builtin("cos", math.Cos, "cosine"),
	"identity": builtin("identity", identity, "x"),
	"square":   builtin("square", square, "x*x"),
	"sqrt":     builtin("sqrt", math.Sqrt, "square root"),
	"exp":      builtin("exp", math.Exp, "e^x"),
	"log":      withPole(builtin("log", math.Log, "natural logarithm, undefined at 0")),
	"abs":      builtin("abs", math.Abs, "absolute value"),

	"fastexp":  approximate("fastexp", fastExp, "e^x, algo-approx"),
	"fastlog":  withPole(approximate("fastlog", fastLog, "natural logarithm, algo-approx")),
	"fastsqrt": approximate("fastsqrt", fastSqrt, "square root, algo-approx"),
}

func builtin(name string, fn Func, desc string) Transform {
	return Transform{Name: name, Fn: fn, Kernel: name, Description: desc}
}

func approximate(name string, fn Func, desc string) Transform {
	return Transform{Name: name, Fn: fn, Approximate: true, Description: desc}
}

func withPole(t Transform) Transform {
	t.Pole = true
	return t
}

func identity(x float64) float64 { return x }
func square(x float64) float64   { return x * x }
func fastExp(x float64) float64  { return approx.FastExp(x) }
func fastLog(x float64) float64  { return approx.FastLog(x) }
func fastSqrt(x float64) float64 { return approx.FastSqrt(x) }

// Lookup returns the catalog entry for name.
func Lookup(name string) (Transform, error) {
	t, ok := catalog[name]
	if !ok {
		return Transform{}, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
	return t, nil
}

// MustLookup is like [Lookup] but panics on unknown names.
func MustLookup(name string) Transform {
	t, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Names returns the catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every catalog entry, sorted by name.
func All() []Transform {
	names := Names()
	out := make([]Transform, len(names))
	for i, name := range names {
		out[i] = catalog[name]
	}
	return out
}
