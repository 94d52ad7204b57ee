package fart

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-fart/dsp/random"
)

// PresetKind names a randomized parameter preset.
type PresetKind string

// Available presets.
const (
	Quick   PresetKind = "quick"
	Long    PresetKind = "long"
	Wet     PresetKind = "wet"
	Squeaky PresetKind = "squeaky"
)

// Custom labels sounds synthesized from explicit parameters.
const Custom PresetKind = "custom"

// Presets lists the preset kinds in display order.
func Presets() []PresetKind {
	return []PresetKind{Quick, Long, Wet, Squeaky}
}

// ParsePreset resolves a case-insensitive preset name.
func ParsePreset(name string) (PresetKind, error) {
	kind := PresetKind(strings.ToLower(strings.TrimSpace(name)))
	switch kind {
	case Quick, Long, Wet, Squeaky:
		return kind, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
}

// SamplePreset draws a parameter set for kind from src. Fields a preset does
// not randomize keep their defaults. Draws happen in field order: duration,
// then wetness or frequency, then bubbliness.
func SamplePreset(kind PresetKind, src random.Source) (Params, error) {
	if src == nil {
		return Params{}, fmt.Errorf("%w: preset source must not be nil", ErrInvalidParameter)
	}
	p := DefaultParams()

	switch kind {
	case Quick:
		p.Duration = random.Uniform(src, 0.3, 0.7)
		p.Wetness = random.Uniform(src, 0.1, 0.4)
		p.Suddenness = 0.05
		p.Bubbliness = float64(random.IntRange(src, 1, 3))
	case Long:
		p.Duration = random.Uniform(src, 1.5, 3.0)
		p.Wetness = random.Uniform(src, 0.3, 0.7)
		p.Suddenness = 0.1
		p.Bubbliness = float64(random.IntRange(src, 8, 8))
	case Wet:
		p.Duration = random.Uniform(src, 0.7, 1.5)
		p.Wetness = random.Uniform(src, 0.7, 1.0)
		p.Suddenness = 0.08
		p.Bubbliness = float64(random.IntRange(src, 4, 4))
	case Squeaky:
		p.Duration = random.Uniform(src, 0.5, 1.2)
		p.Wetness = 0.1
		p.Frequency = random.Uniform(src, 350, 700)
		p.Bubbliness = float64(random.IntRange(src, 3, 3))
	default:
		return Params{}, fmt.Errorf("%w %q", ErrUnknownPreset, string(kind))
	}

	return p, nil
}
