package generic

import (
	"github.com/cwbudde/algo-bench/internal/cpu"
	"github.com/cwbudde/algo-bench/internal/kernel/registry"
)

// init registers the pure Go kernels. They are the fallback for every
// operation at priority 0.
func init() {
	registry.Global.Register(Entry())
}

// Entry returns the generic registry entry.
func Entry() registry.Entry {
	return registry.Entry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Kernels: map[string]registry.BlockFunc{
			"tan":      Tan,
			"sin":      Sin,
			"cos":      Cos,
			"identity": Identity,
			"square":   Square,
			"abs":      Abs,
			"sqrt":     Sqrt,
			"exp":      Exp,
			"log":      Log,
		},
	}
}

func checkLen(dst, src []float64) {
	if len(dst) != len(src) {
		panic("kernel: slice length mismatch")
	}
}
