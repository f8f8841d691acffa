// Package periodicity looks for periodic interference in a series of
// repeated measurements, such as a timer or scheduler tick aliasing with the
// repetition rate.
package periodicity

import (
	"errors"
	"fmt"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// MinSamples is the shortest series Detect accepts.
const MinSamples = 4

// flatFloor is the AC power, relative to the total signal power, below which
// a series counts as constant. Subtracting the mean leaves rounding residue
// that would otherwise show up as a component.
const flatFloor = 1e-20

// ErrTooShort is returned for series shorter than MinSamples.
var ErrTooShort = errors.New("periodicity: series too short")

// Result describes the strongest periodic component of a series.
type Result struct {
	// FFTSize is the zero-padded transform length.
	FFTSize int `json:"fft_size" yaml:"fft_size"`
	// Bin is the index of the dominant non-DC bin, 0 if the series is flat.
	Bin int `json:"bin" yaml:"bin"`
	// Period is the dominant period in samples (FFTSize / Bin).
	Period float64 `json:"period" yaml:"period"`
	// Share is the fraction of AC power in the dominant bin, in [0, 1].
	Share float64 `json:"share" yaml:"share"`
}

// Periodic reports whether the dominant component carries at least
// threshold of the AC power.
func (r Result) Periodic(threshold float64) bool {
	return r.Bin > 0 && r.Share >= threshold
}

// Detect removes the mean of xs, zero-pads it to a power of two and returns
// the dominant component of its power spectrum.
func Detect(xs []float64) (Result, error) {
	if len(xs) < MinSamples {
		return Result{}, fmt.Errorf("%w: %d < %d", ErrTooShort, len(xs), MinSamples)
	}

	n := nextPow2(len(xs))

	var mean, energy float64
	for _, x := range xs {
		mean += x
		energy += x * x
	}
	mean /= float64(len(xs))

	in := make([]complex128, n)
	for i, x := range xs {
		in[i] = complex(x-mean, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Result{}, fmt.Errorf("periodicity: plan: %w", err)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("periodicity: forward: %w", err)
	}

	res := Result{FFTSize: n}

	// Only periods that fit inside the series are candidates.
	var total, best float64
	for k := 1; k <= n/2; k++ {
		re, im := real(out[k]), imag(out[k])
		p := re*re + im*im
		total += p
		if p > best && k*len(xs) >= n {
			best = p
			res.Bin = k
		}
	}

	if total <= flatFloor*float64(n)*energy || res.Bin == 0 {
		res.Bin = 0
		return res, nil
	}

	res.Period = float64(n) / float64(res.Bin)
	res.Share = best / total

	return res, nil
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
