// Package webdemo is the Go side of the browser demo. It synthesizes sounds
// and turns them into WebAudio schedules; web/wasm binds it to JavaScript.
package webdemo

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-fart/dsp/filter/biquad"
	"github.com/cwbudde/algo-fart/dsp/filter/design"
	"github.com/cwbudde/algo-fart/dsp/render"
	"github.com/cwbudde/algo-fart/fart"
)

// Request selects what to synthesize. Params override the preset draws, or
// the defaults when Preset is empty.
type Request struct {
	Preset string
	Params map[string]float64
}

// Engine runs the web demo synthesis in Go.
type Engine struct {
	synth *fart.Synthesizer
}

// NewEngine creates an engine for an AudioContext running at sampleRate.
// A zero seed seeds from the clock.
func NewEngine(sampleRate float64, seed int64) (*Engine, error) {
	opts := []fart.Option{fart.WithSampleRate(sampleRate)}
	if seed != 0 {
		opts = append(opts, fart.WithSeed(seed))
	}

	s, err := fart.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("webdemo: %w", err)
	}
	return &Engine{synth: s}, nil
}

// SampleRate returns the engine's sample rate.
func (e *Engine) SampleRate() float64 { return e.synth.SampleRate() }

// Sound synthesizes req with curves anchored at now on the AudioContext
// clock.
func (e *Engine) Sound(ctx context.Context, req Request, now float64) (*fart.Sound, error) {
	var overrides []fart.ParamOption
	for _, name := range fart.ParamNames() {
		v, ok := req.Params[name]
		if !ok {
			continue
		}
		opt, err := fart.ParamOptionFor(name, v)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, opt)
	}

	if req.Preset == "" {
		return e.synth.SynthesizeAt(ctx, fart.NewParams(overrides...), now)
	}
	kind, err := fart.ParsePreset(req.Preset)
	if err != nil {
		return nil, err
	}
	return e.synth.SynthesizePresetAt(ctx, kind, now, overrides...)
}

// Render synthesizes req and renders it offline, for download or for hosts
// without WebAudio.
func (e *Engine) Render(ctx context.Context, req Request) ([]float64, error) {
	s, err := e.Sound(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	return s.Render()
}

// ResponseCurveDB returns the static magnitude response of the effect's
// filter pair for a base frequency, evaluated at freqs.
func (e *Engine) ResponseCurveDB(baseHz float64, freqs []float64) []float64 {
	sr := e.SampleRate()
	chain := biquad.NewChain(
		design.BandpassPeak(baseHz, render.BandQ, sr),
		design.Peak(render.PeakRatio*baseHz, render.PeakGainDB, render.PeakQ, sr),
	)

	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = chain.MagnitudeDB(f, sr)
	}
	return out
}
