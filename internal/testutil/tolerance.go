// Package testutil holds helpers shared by the benchmark tests.
package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireRelClose fails t unless every got[i] is within rel of want[i],
// measured relative to |want[i]|. Zero references require an exact zero.
func RequireRelClose(t testing.TB, got, want []float64, rel float64) {
	t.Helper()
	i, e, err := WorstRelErr(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if e > rel {
		t.Fatalf("index %d: got %v, want %v (relative error %.3g > %.3g)", i, got[i], want[i], e, rel)
	}
}

// RequireBitsEqual fails t unless got and want are identical bit for bit.
// NaNs compare equal only if their payloads match.
func RequireBitsEqual(t testing.TB, got, want []float64) {
	t.Helper()
	if i, ok := FirstBitsDiff(got, want); !ok {
		if i >= min(len(got), len(want)) {
			t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
		}
		t.Fatalf("index %d: got %v (%#x), want %v (%#x)",
			i, got[i], math.Float64bits(got[i]), want[i], math.Float64bits(want[i]))
	}
}

// FirstBitsDiff returns the first index where a and b differ and false, or
// -1 and true if they are identical.
func FirstBitsDiff(a, b []float64) (int, bool) {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return i, false
		}
	}
	if len(a) != len(b) {
		return n, false
	}
	return -1, true
}

// WorstRelErr returns the index and size of the largest relative error of
// got against want. A nonzero value against a zero reference counts as +Inf.
func WorstRelErr(got, want []float64) (int, float64, error) {
	if len(got) != len(want) {
		return -1, 0, fmt.Errorf("length mismatch: got %d, want %d", len(got), len(want))
	}
	worst, at := 0.0, -1
	for i := range want {
		var e float64
		switch {
		case got[i] == want[i]:
			continue
		case want[i] == 0:
			e = math.Inf(1)
		default:
			e = math.Abs(got[i]-want[i]) / math.Abs(want[i])
		}
		if at < 0 || e > worst {
			worst, at = e, i
		}
	}
	return at, worst, nil
}
