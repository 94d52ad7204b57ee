package design

import (
	"math"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

var (
	silent      = biquad.Coefficients{}
	passthrough = biquad.Coefficients{B0: 1}
)

// terms holds the cookbook intermediates for one center frequency.
type terms struct {
	cw    float64 // cos(w0)
	alpha float64 // sin(w0) / 2Q
}

// cookbook returns the terms for freq at sampleRate, or false when freq is
// not strictly between 0 and Nyquist. Non-positive or non-finite q falls
// back to 1/sqrt(2).
func cookbook(freq, q, sampleRate float64) (terms, bool) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return terms{}, false
	}
	if !core.IsFinite(freq) || freq <= 0 || freq >= sampleRate/2 {
		return terms{}, false
	}
	if !core.IsFinite(q) || q <= 0 {
		q = defaultQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	return terms{cw: math.Cos(w0), alpha: math.Sin(w0) / (2 * q)}, true
}

// shelfAmplitude converts a dB gain to the cookbook amplitude A = 10^(g/40).
func shelfAmplitude(gainDB float64) (float64, bool) {
	if !core.IsFinite(gainDB) {
		return 0, false
	}
	return math.Pow(10, gainDB/40), true
}

// coefficients divides every term by a0.
func coefficients(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || !core.IsFinite(a0) {
		return silent
	}
	inv := 1 / a0
	return biquad.Coefficients{B0: b0 * inv, B1: b1 * inv, B2: b2 * inv, A1: a1 * inv, A2: a2 * inv}
}

// BandpassPeak designs a band-pass biquad whose gain at freq is 0 dB, the
// response of a WebAudio "bandpass" BiquadFilterNode. A center outside
// (0, Nyquist) yields a silent section.
func BandpassPeak(freq, q, sampleRate float64) biquad.Coefficients {
	t, ok := cookbook(freq, q, sampleRate)
	if !ok {
		return silent
	}
	return coefficients(t.alpha, 0, -t.alpha, 1+t.alpha, -2*t.cw, 1-t.alpha)
}

// Peak designs a peaking-EQ biquad boosting (or cutting) gainDB around freq.
// Invalid input yields a passthrough section.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	t, ok := cookbook(freq, q, sampleRate)
	a, okGain := shelfAmplitude(gainDB)
	if !ok || !okGain {
		return passthrough
	}
	return coefficients(
		1+t.alpha*a, -2*t.cw, 1-t.alpha*a,
		1+t.alpha/a, -2*t.cw, 1-t.alpha/a,
	)
}
