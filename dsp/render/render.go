// Package render plays an effect offline: the noise buffer runs through a
// band-pass filter whose center follows the frequency curve, a fixed peaking
// boost above it, and finally the gain curve.
package render

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/envelope"
	"github.com/cwbudde/algo-fart/dsp/filter/biquad"
	"github.com/cwbudde/algo-fart/dsp/filter/design"
)

// Fixed filter settings of the effect chain.
const (
	BandQ      = 2.8 // band-pass quality factor
	PeakRatio  = 1.5 // peaking center relative to the base frequency
	PeakQ      = 2.8
	PeakGainDB = 6.0
)

// Input is everything the renderer needs from a synthesized sound.
type Input struct {
	Noise         []float64
	Gain          envelope.Curve
	Frequency     envelope.Curve
	BaseFrequency float64 // Hz, anchors the peaking filter
	Start         float64 // curve time of Noise[0], seconds
	SampleRate    float64
}

// Render returns the processed signal, the same length as in.Noise.
//
// The band-pass is redesigned once per block (core.WithBlockSize, default
// 128 samples) at the frequency curve's value at the block start. Gain is
// applied per sample.
func Render(in Input, opts ...core.ProcessorOption) ([]float64, error) {
	if !core.IsFinite(in.SampleRate) || in.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: render sample rate must be finite and > 0: %v", core.ErrInvalidParameter, in.SampleRate)
	}
	if !core.IsFinite(in.BaseFrequency) || in.BaseFrequency <= 0 {
		return nil, fmt.Errorf("%w: render base frequency must be finite and > 0: %v", core.ErrInvalidParameter, in.BaseFrequency)
	}
	if !core.IsFinite(in.Start) {
		return nil, fmt.Errorf("%w: render start must be finite: %v", core.ErrInvalidParameter, in.Start)
	}

	n := len(in.Noise)
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}
	copy(out, in.Noise)

	cfg := core.ApplyProcessorOptions(opts...)
	bs := cfg.BlockSize
	sr := in.SampleRate

	blocks := (n + bs - 1) / bs
	centers := make([]float64, blocks)
	in.Frequency.Render(centers, in.Start, sr/float64(bs))

	gain := make([]float64, n)
	in.Gain.Render(gain, in.Start, sr)

	chain := biquad.NewChain(
		design.BandpassPeak(centers[0], BandQ, sr),
		design.Peak(PeakRatio*in.BaseFrequency, PeakGainDB, PeakQ, sr),
	)

	for b := range blocks {
		lo := b * bs
		hi := min(lo+bs, n)

		chain.Retune(0, design.BandpassPeak(centers[b], BandQ, sr))
		chain.ProcessBlock(out[lo:hi])
	}

	vecmath.MulBlockInPlace(out, gain)

	return out, nil
}
