package testutil

// Ramp returns [0, 1, ..., n-1], the benchmark's input sequence.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Apply returns fn applied to every element of xs.
func Apply(fn func(float64) float64, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = fn(x)
	}
	return out
}
