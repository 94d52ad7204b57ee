package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	// 48 samples at 1 kHz / 48 kHz are one full period.
	s := DeterministicSine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-0.5) > 1e-12 || math.Abs(s[36]+0.5) > 1e-12 {
		t.Fatalf("quarter-period samples = %v, %v", s[12], s[36])
	}
	RequireInRange(t, s, -0.5, 0.5)
}

func TestDC(t *testing.T) {
	for i, v := range DC(0.25, 4) {
		if v != 0.25 {
			t.Fatalf("DC[%d] = %v, want 0.25", i, v)
		}
	}
	if len(DC(1, -3)) != 0 {
		t.Fatal("negative length should yield an empty signal")
	}
}
