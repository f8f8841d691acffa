package generic

import "math"

// Sqrt computes dst[i] = sqrt(src[i]).
func Sqrt(dst, src []float64) {
	checkLen(dst, src)
	n := len(src)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = math.Sqrt(src[i])
		dst[i+1] = math.Sqrt(src[i+1])
		dst[i+2] = math.Sqrt(src[i+2])
		dst[i+3] = math.Sqrt(src[i+3])
	}
	for ; i < n; i++ {
		dst[i] = math.Sqrt(src[i])
	}
}

// Exp computes dst[i] = e^src[i].
func Exp(dst, src []float64) {
	checkLen(dst, src)
	for i, x := range src {
		dst[i] = math.Exp(x)
	}
}

// Log computes dst[i] = ln(src[i]).
func Log(dst, src []float64) {
	checkLen(dst, src)
	for i, x := range src {
		dst[i] = math.Log(x)
	}
}
