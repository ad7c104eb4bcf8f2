package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	sig := DeterministicSine(11025, 44100, 0.5, 8)
	want := []float64{0, 0.5, 0, -0.5, 0, 0.5, 0, -0.5}
	RequireSliceNearlyEqual(t, sig, want, 1e-12)
}

func TestAlternating(t *testing.T) {
	sig := Alternating(1, 5)
	RequireSliceNearlyEqual(t, sig, []float64{1, -1, 1, -1, 1}, 0)
	RequireWithin(t, sig, -1, 1)

	if got := PeakAbs(sig); got != 1 {
		t.Fatalf("PeakAbs = %v, want 1", got)
	}
}

func TestPeakAbsEmpty(t *testing.T) {
	if got := PeakAbs(nil); got != 0 {
		t.Fatalf("PeakAbs(nil) = %v, want 0", got)
	}
	RequireFinite(t, []float64{0, -math.MaxFloat64})
}
