package vector

import (
	"math"
	"testing"
)

func TestSquareMatchesScalar(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 4, 7, 8, 9, 33, 1024} {
		src := make([]float64, n)
		for i := range src {
			src[i] = float64(i)*1.25 - 7
		}
		dst := make([]float64, n)

		Square(dst, src)

		for i, x := range src {
			if math.Float64bits(dst[i]) != math.Float64bits(x*x) {
				t.Fatalf("n=%d [%d]: got %v, want %v", n, i, dst[i], x*x)
			}
		}
	}
}

func TestIdentity(t *testing.T) {
	for _, n := range []int{0, 1, 5, 9, 1024} {
		src := make([]float64, n)
		for i := range src {
			src[i] = float64(i)*0.75 - 3
		}
		if n > 0 {
			src[0] = math.Copysign(0, -1)
		}
		dst := make([]float64, n)

		Identity(dst, src)

		for i := range src {
			if math.Float64bits(dst[i]) != math.Float64bits(src[i]) {
				t.Fatalf("n=%d [%d] = %v, want %v", n, i, dst[i], src[i])
			}
		}
	}
}

func TestLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Square did not panic")
		}
	}()
	Square(make([]float64, 2), make([]float64, 3))
}

func TestEntry(t *testing.T) {
	entry, ok := Entry()
	if !ok {
		t.Skip("no vector path on this architecture")
	}
	if entry.Priority <= 0 {
		t.Errorf("vecmath priority %d should exceed generic", entry.Priority)
	}
	if _, ok := entry.Kernel("square"); !ok {
		t.Error("vecmath entry missing square")
	}
}

func BenchmarkSquare(b *testing.B) {
	src := make([]float64, 4096)
	for i := range src {
		src[i] = float64(i)
	}
	dst := make([]float64, len(src))

	b.SetBytes(int64(len(src) * 8))
	for b.Loop() {
		Square(dst, src)
	}
}
