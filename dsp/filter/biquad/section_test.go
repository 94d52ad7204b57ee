package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func testCoefficients() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSampleDFIIT(t *testing.T) {
	// n=0: y=0.25, d0=0.5+0.05=0.55, d1=0.25-0.01=0.24
	// n=1: y=0.55, d0=0.11+0.24=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.07-0.022=0.048, d1=-0.014
	// n=3: y=0.048
	s := NewSection(testCoefficients())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessBlockMatchesProcessSample(t *testing.T) {
	for _, n := range []int{0, 1, 5, 128, 257} {
		in := make([]float64, n)
		for i := range in {
			in[i] = math.Sin(0.05*float64(i)) + 0.3*math.Cos(0.31*float64(i))
		}

		ref := NewSection(testCoefficients())
		want := make([]float64, n)
		for i, x := range in {
			want[i] = ref.ProcessSample(x)
		}

		blk := NewSection(testCoefficients())
		got := append([]float64(nil), in...)
		blk.ProcessBlock(got)

		for i := range got {
			if !almostEqual(got[i], want[i], eps) {
				t.Fatalf("n=%d sample %d: got %.15f, want %.15f", n, i, got[i], want[i])
			}
		}
		st, rt := blk.State(), ref.State()
		if !almostEqual(st[0], rt[0], eps) || !almostEqual(st[1], rt[1], eps) {
			t.Fatalf("n=%d state: got %v, want %v", n, st, rt)
		}
	}
}

func TestRetuneKeepsState(t *testing.T) {
	s := NewSection(testCoefficients())
	s.ProcessSample(1)
	before := s.State()

	next := Coefficients{B0: 0.5, A1: 0.1}
	s.Retune(next)

	if s.Coefficients != next {
		t.Fatalf("coefficients not replaced: %v", s.Coefficients)
	}
	if s.State() != before {
		t.Fatalf("state changed on retune: got %v, want %v", s.State(), before)
	}
}

func TestResetAndSetState(t *testing.T) {
	s := NewSection(testCoefficients())
	s.ProcessSample(1)
	saved := s.State()

	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("reset left state %v", s.State())
	}

	s.SetState(saved)
	if s.State() != saved {
		t.Fatalf("SetState: got %v, want %v", s.State(), saved)
	}
}

func TestKernelNameNotEmpty(t *testing.T) {
	if KernelName() == "" {
		t.Fatal("no kernel selected")
	}
}
