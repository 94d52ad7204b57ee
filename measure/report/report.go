package report

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/spectrum"
	"github.com/cwbudde/algo-fart/dsp/window"
)

// DefaultFrameSize is the FFT frame length used for the averaged spectrum.
const DefaultFrameSize = 4096

// Report summarizes one rendered buffer.
type Report struct {
	SampleRate       float64
	Duration         float64
	Levels           Levels
	PeakDBFS         float64
	RMSDBFS          float64
	CrestFactorDB    float64
	LoudnessLUFS     float64
	SpectralCentroid float64

	// ToneFrequency and ToneDB are set when a tone level was requested.
	ToneFrequency float64
	ToneDB        float64
}

// Option configures Analyze.
type Option func(*config)

type config struct {
	frameSize int
	tone      float64
}

// WithFrameSize sets the FFT frame length. Values that are not a power of
// two of at least 16 are ignored.
func WithFrameSize(n int) Option {
	return func(c *config) {
		if n >= 16 && n&(n-1) == 0 {
			c.frameSize = n
		}
	}
}

// WithToneLevel requests the level at freqHz relative to a full-scale sine.
func WithToneLevel(freqHz float64) Option {
	return func(c *config) {
		c.tone = freqHz
	}
}

// Analyze measures samples rendered at sampleRate.
func Analyze(samples []float64, sampleRate float64, opts ...Option) (Report, error) {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return Report{}, fmt.Errorf("%w: sample rate must be > 0: %v", core.ErrInvalidParameter, sampleRate)
	}

	cfg := config{frameSize: DefaultFrameSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	levels := MeasureLevels(samples)

	rep := Report{
		SampleRate:    sampleRate,
		Duration:      float64(len(samples)) / sampleRate,
		Levels:        levels,
		PeakDBFS:      core.LinearToDB(levels.Peak),
		RMSDBFS:       core.LinearToDB(levels.RMS),
		CrestFactorDB: core.LinearToDB(levels.CrestFactor),
		LoudnessLUFS:  IntegratedLoudness(samples, sampleRate),
	}

	if len(samples) == 0 {
		return rep, nil
	}

	power, err := averagePower(samples, cfg.frameSize)
	if err != nil {
		return Report{}, err
	}

	rep.SpectralCentroid, err = spectrum.Centroid(power, spectrum.BinFrequency(1, cfg.frameSize, sampleRate))
	if err != nil {
		return Report{}, err
	}

	if cfg.tone > 0 {
		db, err := spectrum.LevelDB(samples, cfg.tone, sampleRate)
		if err != nil {
			return Report{}, err
		}

		rep.ToneFrequency = cfg.tone
		rep.ToneDB = db
	}

	return rep, nil
}

// averagePower returns the one-sided power spectrum averaged over
// Hann-windowed frames with 50% overlap. Short inputs are zero padded into a
// single frame.
func averagePower(samples []float64, frameSize int) ([]float64, error) {
	plan, err := algofft.NewPlan64(frameSize)
	if err != nil {
		return nil, fmt.Errorf("report: fft plan: %w", err)
	}

	win := window.Hann(frameSize, window.WithPeriodic())
	frame := make([]float64, frameSize)
	in := make([]complex128, frameSize)
	out := make([]complex128, frameSize)
	bins := frameSize/2 + 1
	acc := make([]float64, bins)

	hop := frameSize / 2
	frames := 0
	for start := 0; start == 0 || start+frameSize <= len(samples); start += hop {
		clear(frame)
		copy(frame, samples[start:])
		if err := window.ApplyCoefficientsInPlace(frame, win); err != nil {
			return nil, fmt.Errorf("report: window frame: %w", err)
		}
		for i, x := range frame {
			in[i] = complex(x, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("report: fft forward: %w", err)
		}

		p := spectrum.Power(out[:bins])
		for k := range acc {
			acc[k] += p[k]
		}
		frames++
	}

	inv := 1 / float64(frames)
	for k := range acc {
		acc[k] *= inv
	}

	return acc, nil
}
