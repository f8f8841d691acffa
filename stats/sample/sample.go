// Package sample summarizes a series of repeated measurements.
//
// Moments are accumulated with Welford's online algorithm, so long series of
// near-identical durations do not lose precision to cancellation.
package sample

import (
	"math"
	"slices"
	"time"
)

// Summary holds descriptive statistics of a sample.
type Summary struct {
	N        int     `json:"n" yaml:"n"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Median   float64 `json:"median" yaml:"median"`
	Min      float64 `json:"min" yaml:"min"`
	MinPos   int     `json:"min_pos" yaml:"min_pos"`
	Max      float64 `json:"max" yaml:"max"`
	MaxPos   int     `json:"max_pos" yaml:"max_pos"`
	Variance float64 `json:"variance" yaml:"variance"` // population
	StdDev   float64 `json:"stddev" yaml:"stddev"`
	CV       float64 `json:"cv" yaml:"cv"` // StdDev / Mean, 0 if Mean is 0
	Skewness float64 `json:"skewness" yaml:"skewness"`
	Kurtosis float64 `json:"kurtosis" yaml:"kurtosis"` // excess
	P90      float64 `json:"p90" yaml:"p90"`
	P99      float64 `json:"p99" yaml:"p99"`
}

// welford holds the running central moments.
type welford struct {
	n              int
	mean           float64
	m2, m3, m4     float64
	minVal, maxVal float64
	minPos, maxPos int
}

func (w *welford) add(x float64) {
	w.n++
	ni := float64(w.n)
	delta := x - w.mean
	deltaN := delta / ni
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * float64(w.n-1)

	// M4 before M3 before M2.
	w.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*w.m2 - 4*deltaN*w.m3
	w.m3 += term1*deltaN*(float64(w.n-1)-1) - 3*deltaN*w.m2
	w.m2 += term1
	w.mean += deltaN

	if w.n == 1 || x < w.minVal {
		w.minVal = x
		w.minPos = w.n - 1
	}
	if w.n == 1 || x > w.maxVal {
		w.maxVal = x
		w.maxPos = w.n - 1
	}
}

func (w *welford) summary() Summary {
	if w.n == 0 {
		return Summary{}
	}

	nf := float64(w.n)
	variance := w.m2 / nf

	s := Summary{
		N:        w.n,
		Mean:     w.mean,
		Min:      w.minVal,
		MinPos:   w.minPos,
		Max:      w.maxVal,
		MaxPos:   w.maxPos,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
	if w.mean != 0 {
		s.CV = s.StdDev / w.mean
	}
	if variance > 0 {
		s.Skewness = (w.m3 / nf) / (variance * math.Sqrt(variance))
		s.Kurtosis = (w.m4/nf)/(variance*variance) - 3
	}

	return s
}

// Summarize computes all statistics of xs. An empty sample yields the zero
// Summary.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}

	var w welford
	for _, x := range xs {
		w.add(x)
	}
	s := w.summary()

	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	s.Median = Percentile(sorted, 50)
	s.P90 = Percentile(sorted, 90)
	s.P99 = Percentile(sorted, 99)

	return s
}

// Percentile returns the p-th percentile (0..100) of an ascending sample
// using linear interpolation between closest ranks. p is clamped to [0, 100].
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	p = math.Max(0, math.Min(100, p))
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)

	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Seconds converts durations to seconds.
func Seconds(ds []time.Duration) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.Seconds()
	}
	return out
}

// Streaming accumulates moments across blocks of samples. Its moments and
// extrema are bit-identical to Summarize over the concatenated blocks; it keeps
// no samples, so Median, P90 and P99 stay zero.
type Streaming struct {
	w welford
}

// NewStreaming creates an empty accumulator.
func NewStreaming() *Streaming {
	return &Streaming{}
}

// Update adds samples.
func (s *Streaming) Update(xs ...float64) {
	for _, x := range xs {
		s.w.add(x)
	}
}

// Result returns the statistics so far.
func (s *Streaming) Result() Summary {
	return s.w.summary()
}
