package core

import "math"

// Clamp limits value to the closed interval spanned by lo and hi, in either
// order.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(value, lo), hi)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NearlyEqual compares a and b with tolerance eps, absolute near zero and
// relative to the larger magnitude elsewhere. A non-positive eps means 1e-12.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = 1e-12
	}
	diff := math.Abs(a - b)
	return diff <= eps || diff <= eps*math.Max(math.Abs(a), math.Abs(b))
}

// SecondsToSamples converts a duration to a whole number of samples,
// rounding to the nearest sample. Non-positive durations yield 0.
func SecondsToSamples(seconds, sampleRate float64) int {
	if seconds <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(math.Round(seconds * sampleRate))
}

// LinearToDB converts an amplitude to dB full scale: -Inf for zero, NaN for
// negative input.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}
