package fart

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/envelope"
)

// Default parameter values.
const (
	DefaultDuration   = 1.0
	DefaultWetness    = 0.5
	DefaultIntensity  = 0.8
	DefaultFrequency  = 220.0
	DefaultBubbliness = 4.0
	DefaultSuddenness = 0.1
)

// Upper bounds enforced by [Params.Validate].
const (
	MaxDuration   = 60.0
	MaxBubbliness = envelope.MaxBubbles
)

// Params fully determines one sound instance.
type Params struct {
	Duration   float64 `yaml:"duration" json:"duration"`     // seconds, > 0
	Wetness    float64 `yaml:"wetness" json:"wetness"`       // 0 brown, 1 white
	Intensity  float64 `yaml:"intensity" json:"intensity"`   // peak gain in [0,1]
	Frequency  float64 `yaml:"frequency" json:"frequency"`   // band-pass center in Hz
	Bubbliness float64 `yaml:"bubbliness" json:"bubbliness"` // bubble count, floored, at least 1
	Suddenness float64 `yaml:"suddenness" json:"suddenness"` // attack seconds, < Duration
}

// DefaultParams returns the default parameter set.
func DefaultParams() Params {
	return Params{
		Duration:   DefaultDuration,
		Wetness:    DefaultWetness,
		Intensity:  DefaultIntensity,
		Frequency:  DefaultFrequency,
		Bubbliness: DefaultBubbliness,
		Suddenness: DefaultSuddenness,
	}
}

// ParamOption overrides one field of [DefaultParams].
type ParamOption func(*Params)

// NewParams returns the defaults with opts applied in order.
func NewParams(opts ...ParamOption) Params {
	p := DefaultParams()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithDuration sets the duration in seconds.
func WithDuration(seconds float64) ParamOption {
	return func(p *Params) { p.Duration = seconds }
}

// WithWetness sets the brown/white blend.
func WithWetness(w float64) ParamOption {
	return func(p *Params) { p.Wetness = w }
}

// WithIntensity sets the peak gain.
func WithIntensity(v float64) ParamOption {
	return func(p *Params) { p.Intensity = v }
}

// WithFrequency sets the base filter frequency in Hz.
func WithFrequency(hz float64) ParamOption {
	return func(p *Params) { p.Frequency = hz }
}

// WithBubbliness sets the number of bubble events.
func WithBubbliness(n float64) ParamOption {
	return func(p *Params) { p.Bubbliness = n }
}

// WithSuddenness sets the attack time in seconds.
func WithSuddenness(seconds float64) ParamOption {
	return func(p *Params) { p.Suddenness = seconds }
}

// ParamNames lists the parameter names accepted by [ParamOptionFor], in
// field order.
func ParamNames() []string {
	return []string{"duration", "wetness", "intensity", "frequency", "bubbliness", "suddenness"}
}

// ParamOptionFor returns the option setting the named parameter to v. Names
// match the yaml and json tags of [Params].
func ParamOptionFor(name string, v float64) (ParamOption, error) {
	switch name {
	case "duration":
		return WithDuration(v), nil
	case "wetness":
		return WithWetness(v), nil
	case "intensity":
		return WithIntensity(v), nil
	case "frequency":
		return WithFrequency(v), nil
	case "bubbliness":
		return WithBubbliness(v), nil
	case "suddenness":
		return WithSuddenness(v), nil
	default:
		return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, name)
	}
}

// Bubbles returns Bubbliness floored to an integer, at least 1 and at most
// MaxBubbliness.
func (p Params) Bubbles() int {
	if !core.IsFinite(p.Bubbliness) || p.Bubbliness < 1 {
		return 1
	}
	if p.Bubbliness > MaxBubbliness {
		return MaxBubbliness
	}
	return int(math.Floor(p.Bubbliness))
}

// Validate reports every violated constraint. Each joined error wraps
// [ErrInvalidParameter].
func (p Params) Validate() error {
	var errs []error

	switch {
	case !core.IsFinite(p.Duration) || p.Duration <= 0:
		errs = append(errs, fmt.Errorf("%w: duration must be finite and > 0: %v", ErrInvalidParameter, p.Duration))
	case p.Duration > MaxDuration:
		errs = append(errs, fmt.Errorf("%w: duration must be <= %v: %v", ErrInvalidParameter, MaxDuration, p.Duration))
	}
	if math.IsNaN(p.Wetness) || p.Wetness < 0 || p.Wetness > 1 {
		errs = append(errs, fmt.Errorf("%w: wetness must be in [0,1]: %v", ErrInvalidParameter, p.Wetness))
	}
	if math.IsNaN(p.Intensity) || p.Intensity < 0 || p.Intensity > 1 {
		errs = append(errs, fmt.Errorf("%w: intensity must be in [0,1]: %v", ErrInvalidParameter, p.Intensity))
	}
	if !core.IsFinite(p.Frequency) || p.Frequency <= 0 {
		errs = append(errs, fmt.Errorf("%w: frequency must be finite and > 0: %v", ErrInvalidParameter, p.Frequency))
	}
	switch {
	case !core.IsFinite(p.Bubbliness):
		errs = append(errs, fmt.Errorf("%w: bubbliness must be finite: %v", ErrInvalidParameter, p.Bubbliness))
	case p.Bubbliness >= MaxBubbliness+1:
		errs = append(errs, fmt.Errorf("%w: bubbliness must be < %d: %v", ErrInvalidParameter, MaxBubbliness+1, p.Bubbliness))
	}
	switch {
	case !core.IsFinite(p.Suddenness) || p.Suddenness < 0:
		errs = append(errs, fmt.Errorf("%w: suddenness must be finite and >= 0: %v", ErrInvalidParameter, p.Suddenness))
	case p.Suddenness >= p.Duration:
		errs = append(errs, fmt.Errorf("%w: suddenness must be < duration: %v >= %v", ErrInvalidParameter, p.Suddenness, p.Duration))
	}

	return errors.Join(errs...)
}

// Envelope returns the envelope subset of p.
func (p Params) Envelope() envelope.Spec {
	return envelope.Spec{
		Duration:   p.Duration,
		Suddenness: p.Suddenness,
		Intensity:  p.Intensity,
		Frequency:  p.Frequency,
		Bubbles:    p.Bubbles(),
	}
}
