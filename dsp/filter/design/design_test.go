package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fart/dsp/filter/biquad"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func magDB(c biquad.Coefficients, f, sr float64) float64 {
	return c.MagnitudeDB(f, sr)
}

func TestBandpassPeakUnityAtCenter(t *testing.T) {
	sr := 44100.0
	for _, f := range []float64{100, 220, 440, 1000, 5000} {
		c := BandpassPeak(f, 2.8, sr)
		if db := magDB(c, f, sr); !almostEqual(db, 0, 1e-9) {
			t.Errorf("f=%v: center gain = %v dB, want 0", f, db)
		}
		if magDB(c, f/4, sr) > -6 || magDB(c, f*4, sr) > -6 {
			t.Errorf("f=%v: skirts not attenuated", f)
		}
	}
}

func TestBandpassPeakNarrowsWithQ(t *testing.T) {
	sr := 48000.0
	wide := BandpassPeak(1000, 0.7, sr)
	narrow := BandpassPeak(1000, 2.8, sr)
	if !(magDB(narrow, 1500, sr) < magDB(wide, 1500, sr)) {
		t.Fatal("higher Q should attenuate more off center")
	}
}

func TestBandpassPeakOutOfRangeIsSilent(t *testing.T) {
	for _, f := range []float64{0, -10, 22050, 30000, math.NaN()} {
		if c := BandpassPeak(f, 2.8, 44100); c != (biquad.Coefficients{}) {
			t.Errorf("f=%v: got %+v, want zero coefficients", f, c)
		}
	}
	if c := BandpassPeak(1000, 2.8, 0); c != (biquad.Coefficients{}) {
		t.Errorf("zero sample rate: got %+v", c)
	}
}

func TestPeakGainAtCenter(t *testing.T) {
	sr := 44100.0
	for _, g := range []float64{-6, 0, 6, 12} {
		c := Peak(330, g, 2.8, sr)
		if db := magDB(c, 330, sr); !almostEqual(db, g, 1e-6) {
			t.Errorf("gain %v: center = %v dB", g, db)
		}
		if db := magDB(c, 20, sr); math.Abs(db) > 0.5 {
			t.Errorf("gain %v: far response %v dB, want ~0", g, db)
		}
	}
}

func TestPeakOutOfRangeIsPassthrough(t *testing.T) {
	want := biquad.Coefficients{B0: 1}
	if c := Peak(30000, 6, 2.8, 44100); c != want {
		t.Errorf("above Nyquist: got %+v, want passthrough", c)
	}
	if c := Peak(1000, math.Inf(1), 2.8, 44100); c != want {
		t.Errorf("infinite gain: got %+v, want passthrough", c)
	}
}

func TestCookbookQDefault(t *testing.T) {
	want, _ := cookbook(1000, defaultQ, 44100)
	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		got, ok := cookbook(1000, q, 44100)
		if !ok || !almostEqual(got.alpha, want.alpha, tol) {
			t.Errorf("q=%v: alpha = %v, want %v", q, got.alpha, want.alpha)
		}
	}
	if got, _ := cookbook(1000, 2.8, 44100); almostEqual(got.alpha, want.alpha, tol) {
		t.Errorf("q=2.8 fell back to the default")
	}
	if _, ok := cookbook(22050, 1, 44100); ok {
		t.Error("nyquist center accepted")
	}
}

func TestDesignsAreStable(t *testing.T) {
	sr := 44100.0
	for _, f := range []float64{50, 220, 1000, 8000, 20000} {
		for _, c := range []biquad.Coefficients{BandpassPeak(f, 2.8, sr), Peak(f, 6, 2.8, sr)} {
			// Stability triangle: |a2| < 1 and |a1| < 1 + a2.
			if !(math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2) {
				t.Errorf("f=%v: unstable %+v", f, c)
			}
		}
	}
}
