package vector

import (
	"github.com/cwbudde/algo-bench/internal/kernel/registry"
)

func init() {
	if entry, ok := Entry(); ok {
		registry.Global.Register(entry)
	}
}

// Entry returns the vecmath registry entry, or false on architectures
// without a vector path.
func Entry() (registry.Entry, bool) {
	level, ok := simdLevel()
	if !ok {
		return registry.Entry{}, false
	}

	return registry.Entry{
		Name:      "vecmath",
		SIMDLevel: level,
		Priority:  10,
		Kernels: map[string]registry.BlockFunc{
			"square":   Square,
			"identity": Identity,
		},
	}, true
}
