//go:build arm64

package vector

import "github.com/cwbudde/algo-bench/internal/cpu"

func simdLevel() (cpu.SIMDLevel, bool) { return cpu.SIMDNEON, true }
