// Package vector provides block kernels backed by algo-vecmath, which
// dispatches to SIMD code on amd64 and arm64.
package vector

import (
	"github.com/cwbudde/algo-vecmath"
)

// Square computes dst[i] = src[i] * src[i] with a vectorised multiply.
// A lane-wise IEEE multiply rounds exactly like the scalar one.
func Square(dst, src []float64) {
	if len(dst) != len(src) {
		panic("kernel: slice length mismatch")
	}
	if len(src) == 0 {
		return
	}
	vecmath.MulBlock(dst, src, src)
}

// Identity computes dst[i] = src[i] * 1 with a vectorised scale, which
// returns every finite value and both signed zeros unchanged.
func Identity(dst, src []float64) {
	if len(dst) != len(src) {
		panic("kernel: slice length mismatch")
	}
	if len(src) == 0 {
		return
	}
	vecmath.ScaleBlock(dst, src, 1)
}
