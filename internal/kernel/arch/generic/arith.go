package generic

import "math"

// Identity copies src into dst.
func Identity(dst, src []float64) {
	checkLen(dst, src)
	copy(dst, src)
}

// Square computes dst[i] = src[i] * src[i].
func Square(dst, src []float64) {
	checkLen(dst, src)
	n := len(src)
	i := 0
	for ; i+4 <= n; i += 4 {
		x0, x1, x2, x3 := src[i], src[i+1], src[i+2], src[i+3]
		dst[i] = x0 * x0
		dst[i+1] = x1 * x1
		dst[i+2] = x2 * x2
		dst[i+3] = x3 * x3
	}
	for ; i < n; i++ {
		dst[i] = src[i] * src[i]
	}
}

// Abs computes dst[i] = |src[i]|.
func Abs(dst, src []float64) {
	checkLen(dst, src)
	for i, x := range src {
		dst[i] = math.Abs(x)
	}
}
