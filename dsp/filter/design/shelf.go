package design

import (
	"math"

	"github.com/cwbudde/algo-fart/dsp/filter/biquad"
)

// Highpass designs a second-order highpass. Frequencies outside
// (0, Nyquist) return a passthrough section.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	t, ok := cookbook(freq, q, sampleRate)
	if !ok {
		return passthrough
	}
	b := (1 + t.cw) / 2
	return coefficients(b, -2*b, b, 1+t.alpha, -2*t.cw, 1-t.alpha)
}

// HighShelf designs a high shelf with gainDB above freq. Invalid input
// returns a passthrough section.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	t, ok := cookbook(freq, q, sampleRate)
	a, okGain := shelfAmplitude(gainDB)
	if !ok || !okGain {
		return passthrough
	}

	beta := 2 * math.Sqrt(a) * t.alpha
	ap, am := a+1, a-1

	return coefficients(
		a*(ap+am*t.cw+beta), -2*a*(am+ap*t.cw), a*(ap+am*t.cw-beta),
		ap-am*t.cw+beta, 2*(am-ap*t.cw), ap-am*t.cw-beta,
	)
}
