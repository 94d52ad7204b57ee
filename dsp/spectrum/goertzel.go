package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fart/dsp/core"
)

// SilenceDB is the floor reported for a bin with no energy.
const SilenceDB = -300.0

// Tracker follows one DFT bin through a stream of samples with the Goertzel
// recurrence. After n samples, Power equals |X(f)|^2 of an n-point DFT
// evaluated at f.
type Tracker struct {
	coeff  float64
	s0, s1 float64
	n      int
}

// NewTracker returns a tracker for freqHz, which must lie in
// [0, sampleRate/2].
func NewTracker(freqHz, sampleRate float64) (*Tracker, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: tracker sample rate must be > 0: %v", core.ErrInvalidParameter, sampleRate)
	}
	if !core.IsFinite(freqHz) || freqHz < 0 || freqHz > sampleRate/2 {
		return nil, fmt.Errorf("%w: tracker frequency must be within [0, %v]: %v",
			core.ErrInvalidParameter, sampleRate/2, freqHz)
	}

	return &Tracker{coeff: 2 * math.Cos(2*math.Pi*freqHz/sampleRate)}, nil
}

// Write feeds samples into the tracker.
func (t *Tracker) Write(samples []float64) {
	s0, s1, c := t.s0, t.s1, t.coeff
	for _, x := range samples {
		s0, s1 = x+c*s0-s1, s0
	}
	t.s0, t.s1 = s0, s1
	t.n += len(samples)
}

// Reset forgets all samples written so far.
func (t *Tracker) Reset() {
	*t = Tracker{coeff: t.coeff}
}

// Len reports how many samples have been written since the last Reset.
func (t *Tracker) Len() int { return t.n }

// Power returns the squared bin magnitude.
func (t *Tracker) Power() float64 {
	return t.s0*t.s0 + t.s1*t.s1 - t.coeff*t.s0*t.s1
}

// LevelDB returns the bin level relative to a full-scale sine at the bin
// frequency, which reaches a power of (n/2)^2 over n samples.
func (t *Tracker) LevelDB() float64 {
	if t.n == 0 {
		return SilenceDB
	}
	half := float64(t.n) / 2
	p := t.Power() / (half * half)
	if p <= 1e-30 {
		return SilenceDB
	}
	return 10 * math.Log10(p)
}

// BinPower returns the Goertzel power of samples at freqHz.
func BinPower(samples []float64, freqHz, sampleRate float64) (float64, error) {
	t, err := NewTracker(freqHz, sampleRate)
	if err != nil {
		return 0, err
	}
	t.Write(samples)
	return t.Power(), nil
}

// LevelDB returns the level of freqHz in samples relative to a full-scale
// sine. An empty input reports SilenceDB.
func LevelDB(samples []float64, freqHz, sampleRate float64) (float64, error) {
	t, err := NewTracker(freqHz, sampleRate)
	if err != nil {
		return 0, err
	}
	t.Write(samples)
	return t.LevelDB(), nil
}
