// Package generic provides pure Go block kernels.
//
// Each kernel calls its math function directly instead of through a function
// value and processes four elements per iteration. Results are bit-identical
// to applying the scalar function element by element.
package generic

import "math"

// Tan computes dst[i] = tan(src[i]).
func Tan(dst, src []float64) {
	checkLen(dst, src)
	n := len(src)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = math.Tan(src[i])
		dst[i+1] = math.Tan(src[i+1])
		dst[i+2] = math.Tan(src[i+2])
		dst[i+3] = math.Tan(src[i+3])
	}
	for ; i < n; i++ {
		dst[i] = math.Tan(src[i])
	}
}

// Sin computes dst[i] = sin(src[i]).
func Sin(dst, src []float64) {
	checkLen(dst, src)
	n := len(src)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = math.Sin(src[i])
		dst[i+1] = math.Sin(src[i+1])
		dst[i+2] = math.Sin(src[i+2])
		dst[i+3] = math.Sin(src[i+3])
	}
	for ; i < n; i++ {
		dst[i] = math.Sin(src[i])
	}
}

// Cos computes dst[i] = cos(src[i]).
func Cos(dst, src []float64) {
	checkLen(dst, src)
	n := len(src)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = math.Cos(src[i])
		dst[i+1] = math.Cos(src[i+1])
		dst[i+2] = math.Cos(src[i+2])
		dst[i+3] = math.Cos(src[i+3])
	}
	for ; i < n; i++ {
		dst[i] = math.Cos(src[i])
	}
}
