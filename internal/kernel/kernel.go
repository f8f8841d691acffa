// Package kernel compiles a transform into a block function for the
// accelerated strategy.
//
// Catalog transforms with a registered kernel run the best implementation for
// the current CPU. Anything else runs through an unrolled loop around the
// transform's scalar function. Either way the output is bit-identical to the
// plain per-element loop; only the time taken differs.
package kernel

import (
	"sync"

	"github.com/cwbudde/algo-bench/internal/cpu"
	"github.com/cwbudde/algo-bench/internal/kernel/registry"
	"github.com/cwbudde/algo-bench/transform"
)

// ImplUnrolled names the fallback used when no block kernel is registered.
const ImplUnrolled = "unrolled"

// Kernel is a compiled transform.
type Kernel struct {
	// Transform is the name of the compiled transform.
	Transform string

	// Impl names the registry entry providing Apply, or ImplUnrolled.
	Impl string

	// Level is the SIMD level the implementation requires.
	Level cpu.SIMDLevel

	Apply registry.BlockFunc
}

var (
	selected   map[string]Kernel
	selectOnce sync.Once
	selectMu   sync.Mutex
)

func initSelection() {
	features := cpu.DetectFeatures()
	selected = make(map[string]Kernel)

	for _, op := range registry.Global.Ops() {
		entry := registry.Global.Lookup(features, op)
		if entry == nil {
			continue
		}
		fn, _ := entry.Kernel(op)
		selected[op] = Kernel{
			Transform: op,
			Impl:      entry.Name,
			Level:     entry.SIMDLevel,
			Apply:     fn,
		}
	}
}

func selection() map[string]Kernel {
	selectMu.Lock()
	defer selectMu.Unlock()
	selectOnce.Do(initSelection)
	return selected
}

// resetSelection drops the cached selection so the next Compile re-reads
// CPU features. Used by tests.
func resetSelection() {
	selectMu.Lock()
	defer selectMu.Unlock()
	selectOnce = sync.Once{}
	selected = nil
}

// Compile returns the block function for t. t must be valid.
func Compile(t transform.Transform) Kernel {
	if t.Kernel != "" {
		if k, ok := selection()[t.Kernel]; ok {
			k.Transform = t.Name
			return k
		}
	}

	return Kernel{
		Transform: t.Name,
		Impl:      ImplUnrolled,
		Level:     cpu.SIMDNone,
		Apply:     Unrolled(t.Fn),
	}
}

// Unrolled returns a block function evaluating fn four elements per
// iteration, in increasing index order.
func Unrolled(fn transform.Func) registry.BlockFunc {
	return func(dst, src []float64) {
		if len(dst) != len(src) {
			panic("kernel: slice length mismatch")
		}
		n := len(src)
		i := 0
		for ; i+4 <= n; i += 4 {
			dst[i] = fn(src[i])
			dst[i+1] = fn(src[i+1])
			dst[i+2] = fn(src[i+2])
			dst[i+3] = fn(src[i+3])
		}
		for ; i < n; i++ {
			dst[i] = fn(src[i])
		}
	}
}
