package fart

import (
	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/envelope"
	"github.com/cwbudde/algo-fart/dsp/render"
)

// Sound is one synthesized effect, ready for a host to play or render.
type Sound struct {
	Params     Params
	Preset     PresetKind
	SampleRate float64
	Start      float64 // seconds on the host clock

	Noise     []float64      // source buffer, len = round(Duration*SampleRate)
	Gain      envelope.Curve // output gain automation
	Frequency envelope.Curve // band-pass center automation
}

// Duration returns the nominal length in seconds.
func (s *Sound) Duration() float64 {
	return s.Params.Duration
}

// End returns the host time at which the release reaches zero.
func (s *Sound) End() float64 {
	return s.Start + s.Params.Duration
}

// RenderInput adapts the sound for the offline renderer.
func (s *Sound) RenderInput() render.Input {
	return render.Input{
		Noise:         s.Noise,
		Gain:          s.Gain,
		Frequency:     s.Frequency,
		BaseFrequency: s.Params.Frequency,
		Start:         s.Start,
		SampleRate:    s.SampleRate,
	}
}

// Render runs the sound through the offline effect chain.
func (s *Sound) Render(opts ...core.ProcessorOption) ([]float64, error) {
	return render.Render(s.RenderInput(), opts...)
}
