package noise

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/random"
)

// BrownCoefficient is the integration constant k of the brown-noise
// recurrence. It was tuned by ear and is not configurable.
const BrownCoefficient = 0.02

// MaxSamples bounds the buffer length [Length] accepts, about six minutes at
// 44.1 kHz.
const MaxSamples = 1 << 24

// Generate returns round(duration*sampleRate) samples of blended noise drawn
// from src. A zero duration yields an empty, non-nil slice.
func Generate(duration, wetness, sampleRate float64, src random.Source) ([]float64, error) {
	n, err := Length(duration, sampleRate)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(wetness) || wetness < 0 || wetness > 1 {
		return nil, fmt.Errorf("%w: noise wetness must be in [0,1]: %v", core.ErrInvalidParameter, wetness)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: noise source must not be nil", core.ErrInvalidParameter)
	}

	out := make([]float64, n)
	Fill(out, wetness, src)
	return out, nil
}

// Length validates duration and sampleRate and returns the buffer length.
func Length(duration, sampleRate float64) (int, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return 0, fmt.Errorf("%w: noise sample rate must be finite and > 0: %v", core.ErrInvalidParameter, sampleRate)
	}
	if !core.IsFinite(duration) || duration < 0 {
		return 0, fmt.Errorf("%w: noise duration must be finite and >= 0: %v", core.ErrInvalidParameter, duration)
	}
	if duration*sampleRate > MaxSamples {
		return 0, fmt.Errorf("%w: noise length must be <= %d samples: %v s at %v Hz", core.ErrInvalidParameter, MaxSamples, duration, sampleRate)
	}
	return core.SecondsToSamples(duration, sampleRate), nil
}

// Fill writes blended noise into dst, starting the brown accumulator at zero.
func Fill(dst []float64, wetness float64, src random.Source) {
	dry := 1 - wetness
	brown := 0.0
	for i := range dst {
		white := random.Uniform(src, -1, 1)
		brown = (brown + BrownCoefficient*white) / (1 + BrownCoefficient)
		dst[i] = dry*brown + wetness*white
	}
}
