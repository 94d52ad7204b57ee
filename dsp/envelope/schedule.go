package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/random"
)

// MaxBubbles bounds the bubble count a [Spec] may ask for.
const MaxBubbles = 10000

// BubbleWidth is the time (seconds) a bubble takes to recover from its dip.
const BubbleWidth = 0.05

// Randomization ranges, as fractions of the bubble spacing, the intensity and
// the base frequency respectively.
const (
	JitterMin  = 0.7
	JitterMax  = 1.3
	DipMin     = 0.5
	DipMax     = 0.7
	FreqDevMin = 0.8
	FreqDevMax = 1.2
)

// Spec holds the envelope-relevant subset of the synthesis parameters.
type Spec struct {
	Duration   float64 // seconds
	Suddenness float64 // attack time in seconds
	Intensity  float64 // peak gain in [0,1]
	Frequency  float64 // base filter center frequency in Hz
	Bubbles    int     // bubble events, values below 1 count as 1
}

// Validate checks the spec. A zero duration is accepted together with a zero
// attack and describes a degenerate, silent envelope.
func (s Spec) Validate() error {
	if !core.IsFinite(s.Duration) || s.Duration < 0 {
		return fmt.Errorf("%w: envelope duration must be finite and >= 0: %v", core.ErrInvalidParameter, s.Duration)
	}
	if !core.IsFinite(s.Suddenness) || s.Suddenness < 0 {
		return fmt.Errorf("%w: envelope suddenness must be finite and >= 0: %v", core.ErrInvalidParameter, s.Suddenness)
	}
	if s.Duration > 0 && s.Suddenness >= s.Duration {
		return fmt.Errorf("%w: envelope suddenness must be < duration: %v >= %v", core.ErrInvalidParameter, s.Suddenness, s.Duration)
	}
	if s.Duration == 0 && s.Suddenness != 0 {
		return fmt.Errorf("%w: envelope suddenness must be 0 for a zero duration: %v", core.ErrInvalidParameter, s.Suddenness)
	}
	if math.IsNaN(s.Intensity) || s.Intensity < 0 || s.Intensity > 1 {
		return fmt.Errorf("%w: envelope intensity must be in [0,1]: %v", core.ErrInvalidParameter, s.Intensity)
	}
	if !core.IsFinite(s.Frequency) || s.Frequency <= 0 {
		return fmt.Errorf("%w: envelope frequency must be finite and > 0: %v", core.ErrInvalidParameter, s.Frequency)
	}
	if s.Bubbles > MaxBubbles {
		return fmt.Errorf("%w: envelope bubbles must be <= %d: %d", core.ErrInvalidParameter, MaxBubbles, s.Bubbles)
	}
	return nil
}

// Schedule computes the gain and filter-frequency curves of one effect
// starting at start (seconds). Per bubble it draws, in order, the jitter, the
// dip depth and the frequency deviation from src.
func Schedule(spec Spec, start float64, src random.Source) (gain, freq Curve, err error) {
	if err := spec.Validate(); err != nil {
		return nil, nil, err
	}
	if !core.IsFinite(start) {
		return nil, nil, fmt.Errorf("%w: envelope start time must be finite: %v", core.ErrInvalidParameter, start)
	}
	if src == nil {
		return nil, nil, fmt.Errorf("%w: envelope source must not be nil", core.ErrInvalidParameter)
	}

	base := spec.Frequency
	end := start + spec.Duration

	if spec.Duration == 0 {
		return Curve{{start, 0}, {end, 0}}, Curve{{start, base}}, nil
	}

	bubbles := max(spec.Bubbles, 1)
	gain = make(Curve, 0, 3+2*bubbles)
	freq = make(Curve, 0, 1+2*bubbles)

	attackEnd := start + spec.Suddenness
	gain = append(gain, Point{start, 0}, Point{attackEnd, spec.Intensity})
	freq = append(freq, Point{start, base})

	spacing := (spec.Duration - spec.Suddenness) / float64(bubbles)
	t := attackEnd
	for range bubbles {
		jitter := random.Uniform(src, JitterMin, JitterMax) * spacing
		dip := random.Uniform(src, DipMin, DipMax) * spec.Intensity
		wobble := random.Uniform(src, FreqDevMin, FreqDevMax) * base

		gain = append(gain, Point{t, dip}, Point{t + BubbleWidth, spec.Intensity})
		freq = append(freq, Point{t, wobble}, Point{t + BubbleWidth, base})
		t += jitter
	}

	gain = append(gain, Point{end, 0})
	return gain, freq, nil
}
