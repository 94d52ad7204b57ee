package testutil

import "testing"

func TestRequireSliceNearlyEqual(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2.0000001}, []float64{1, 2}, 1e-6)
}

func TestRequireInRange(t *testing.T) {
	RequireInRange(t, []float64{-1, 0, 1}, -1, 1)
}

func TestPeakAbs(t *testing.T) {
	if got := PeakAbs([]float64{0.25, -0.75, 0.5}); got != 0.75 {
		t.Fatalf("PeakAbs = %v, want 0.75", got)
	}
	if PeakAbs(nil) != 0 {
		t.Fatal("PeakAbs(nil) should be 0")
	}
}
