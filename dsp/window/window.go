// Package window provides the tapers used around the effect renderer: a Hann
// window for spectral analysis and linear edge fades for export.
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fart/dsp/core"
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form used for FFT framing instead of the
// symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Hann returns Hann window coefficients of the given length, or nil for a
// non-positive length.
func Hann(length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	denom := float64(length - 1)
	if cfg.periodic {
		denom = float64(length)
	}
	for i := range out {
		out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/denom)
	}

	return out
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return fmt.Errorf("%w: %d samples for %d window coefficients",
			core.ErrInvalidParameter, len(samples), len(coeffs))
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// FadeOut ramps the tail of buf linearly toward zero. Sample n-k is scaled
// by k/fadeSamples for every k below floor(fadeSamples), so the last sample
// keeps 1/fadeSamples of its level.
func FadeOut(buf []float64, fadeSamples float64) {
	n := len(buf)
	if n == 0 || !(fadeSamples > 0) || math.IsInf(fadeSamples, 0) {
		return
	}

	first := 0
	if fadeSamples < float64(n) {
		first = n - int(fadeSamples) + 1
	}
	if first >= n {
		return
	}

	ramp := make([]float64, n-first)
	for i := range ramp {
		ramp[i] = float64(n-first-i) / fadeSamples
	}
	vecmath.MulBlockInPlace(buf[first:], ramp)
}
