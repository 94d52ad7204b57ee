package fart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/envelope"
	"github.com/cwbudde/algo-fart/dsp/noise"
	"github.com/cwbudde/algo-fart/dsp/random"
)

// Recorder receives synthesis metrics. *observe.Metrics satisfies it.
type Recorder interface {
	RecordSynthesis(ctx context.Context, preset string, seconds float64)
	RecordInvalid(ctx context.Context)
}

type nopRecorder struct{}

func (nopRecorder) RecordSynthesis(context.Context, string, float64) {}
func (nopRecorder) RecordInvalid(context.Context)                    {}

// Synthesizer turns parameters into sounds. It is safe for concurrent use
// when its source is; the default and seeded sources are locked. Concurrent
// requests interleave their draws, so per-request reproducibility needs
// either sequential use or one Synthesizer per goroutine.
type Synthesizer struct {
	sampleRate float64
	src        random.Source
	logger     *slog.Logger
	metrics    Recorder
}

// Option configures a [Synthesizer].
type Option func(*Synthesizer)

// WithSampleRate sets the noise sample rate in Hz. Default: 44100.
func WithSampleRate(sampleRate float64) Option {
	return func(s *Synthesizer) { s.sampleRate = sampleRate }
}

// WithSource replaces the random source. The caller is responsible for its
// concurrency safety.
func WithSource(src random.Source) Option {
	return func(s *Synthesizer) {
		if src != nil {
			s.src = src
		}
	}
}

// WithSeed selects a deterministic, locked source.
func WithSeed(seed int64) Option {
	return func(s *Synthesizer) { s.src = random.NewLocked(random.New(seed)) }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m Recorder) Option {
	return func(s *Synthesizer) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New creates a Synthesizer. It fails if the sample rate is not a finite
// positive number.
func New(opts ...Option) (*Synthesizer, error) {
	s := &Synthesizer{
		sampleRate: core.DefaultSampleRate,
		logger:     slog.Default(),
		metrics:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if !core.IsFinite(s.sampleRate) || s.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be finite and > 0: %v", ErrInvalidParameter, s.sampleRate)
	}
	if s.src == nil {
		s.src = random.NewLocked(random.New(time.Now().UnixNano()))
	}
	return s, nil
}

// SampleRate returns the configured sample rate in Hz.
func (s *Synthesizer) SampleRate() float64 {
	return s.sampleRate
}

// Synthesize validates p and produces a sound starting at time 0.
func (s *Synthesizer) Synthesize(ctx context.Context, p Params) (*Sound, error) {
	return s.synthesize(ctx, p, 0, Custom)
}

// SynthesizeAt is like Synthesize with curves anchored at start seconds on
// the host clock.
func (s *Synthesizer) SynthesizeAt(ctx context.Context, p Params, start float64) (*Sound, error) {
	return s.synthesize(ctx, p, start, Custom)
}

// Preset samples the parameters of kind.
func (s *Synthesizer) Preset(kind PresetKind) (Params, error) {
	return SamplePreset(kind, s.src)
}

// SynthesizePreset samples kind, applies overrides on top of the draw and
// synthesizes the result. Overrides are validated against the drawn values,
// not the defaults, and the sound keeps kind as its preset.
func (s *Synthesizer) SynthesizePreset(ctx context.Context, kind PresetKind, overrides ...ParamOption) (*Sound, error) {
	return s.SynthesizePresetAt(ctx, kind, 0, overrides...)
}

// SynthesizePresetAt is like SynthesizePreset with curves anchored at start
// seconds on the host clock.
func (s *Synthesizer) SynthesizePresetAt(ctx context.Context, kind PresetKind, start float64, overrides ...ParamOption) (*Sound, error) {
	p, err := s.Preset(kind)
	if err != nil {
		s.metrics.RecordInvalid(ctx)
		return nil, err
	}
	for _, o := range overrides {
		o(&p)
	}
	return s.synthesize(ctx, p, start, kind)
}

// ComputeEnvelope schedules the gain and frequency curves of p starting at
// start without generating noise.
func (s *Synthesizer) ComputeEnvelope(p Params, start float64) (gain, freq envelope.Curve, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	return envelope.Schedule(p.Envelope(), start, s.src)
}

func (s *Synthesizer) synthesize(ctx context.Context, p Params, start float64, kind PresetKind) (*Sound, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		s.metrics.RecordInvalid(ctx)
		s.logger.DebugContext(ctx, "rejected parameters", "preset", kind, "err", err)
		return nil, err
	}

	began := time.Now()

	buf, err := noise.Generate(p.Duration, p.Wetness, s.sampleRate, s.src)
	if err != nil {
		s.metrics.RecordInvalid(ctx)
		return nil, fmt.Errorf("fart: generate noise: %w", err)
	}
	gain, freq, err := envelope.Schedule(p.Envelope(), start, s.src)
	if err != nil {
		s.metrics.RecordInvalid(ctx)
		return nil, fmt.Errorf("fart: schedule envelope: %w", err)
	}

	elapsed := time.Since(began)
	s.metrics.RecordSynthesis(ctx, string(kind), elapsed.Seconds())
	s.logger.DebugContext(ctx, "synthesized",
		"preset", kind,
		"duration", p.Duration,
		"wetness", p.Wetness,
		"frequency", p.Frequency,
		"bubbles", p.Bubbles(),
		"samples", len(buf),
		"elapsed", elapsed,
	)

	return &Sound{
		Params:     p,
		Preset:     kind,
		SampleRate: s.sampleRate,
		Start:      start,
		Noise:      buf,
		Gain:       gain,
		Frequency:  freq,
	}, nil
}
