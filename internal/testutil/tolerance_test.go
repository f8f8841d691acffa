package testutil

import (
	"math"
	"testing"
)

func TestWorstRelErr(t *testing.T) {
	tests := []struct {
		name      string
		got, want []float64
		wantIdx   int
		wantErr   float64
	}{
		{"identical", []float64{0, 1, 2}, []float64{0, 1, 2}, -1, 0},
		{"largest relative wins", []float64{1.1, 102}, []float64{1, 100}, 0, 0.1},
		{"zero reference", []float64{1e-300}, []float64{0}, 0, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, e, err := WorstRelErr(tt.got, tt.want)
			if err != nil {
				t.Fatal(err)
			}
			if idx != tt.wantIdx || math.Abs(e-tt.wantErr) > 1e-12 && e != tt.wantErr {
				t.Errorf("WorstRelErr = (%d, %v), want (%d, %v)", idx, e, tt.wantIdx, tt.wantErr)
			}
		})
	}

	if _, _, err := WorstRelErr([]float64{1}, []float64{1, 2}); err == nil {
		t.Error("expected error for length mismatch")
	}
}

func TestFirstBitsDiff(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float64
		wantIdx int
		wantOK  bool
	}{
		{"identical", []float64{0, 1, 2}, []float64{0, 1, 2}, -1, true},
		{"value differs", []float64{0, 1, 2}, []float64{0, 1, 3}, 2, false},
		{"signed zero differs", []float64{0}, []float64{math.Copysign(0, -1)}, 0, false},
		{"length differs", []float64{0, 1}, []float64{0}, 1, false},
		{"empty", nil, nil, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := FirstBitsDiff(tt.a, tt.b)
			if idx != tt.wantIdx || ok != tt.wantOK {
				t.Errorf("FirstBitsDiff = (%d, %v), want (%d, %v)", idx, ok, tt.wantIdx, tt.wantOK)
			}
		})
	}
}

func TestRampAndApply(t *testing.T) {
	r := Ramp(4)
	RequireBitsEqual(t, r, []float64{0, 1, 2, 3})

	sq := Apply(func(x float64) float64 { return x * x }, r)
	RequireRelClose(t, sq, []float64{0, 1, 4, 9}, 0)
}
