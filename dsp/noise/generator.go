package noise

import (
	"github.com/cwbudde/algo-fart/dsp/core"
	"github.com/cwbudde/algo-fart/dsp/random"
)

// Generator produces noise buffers from a shared processor configuration.
type Generator struct {
	cfg core.ProcessorConfig
	src random.Source
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed selects a deterministic math/rand stream.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.src = random.New(seed)
	}
}

// WithSource injects the random source directly.
func WithSource(src random.Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.src = src
		}
	}
}

// NewGenerator creates a generator. Without options it uses the default
// processor config and seed.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg: core.ApplyProcessorOptions(coreOpts...),
		src: random.New(0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Blend generates duration seconds of noise at the configured sample rate.
func (g *Generator) Blend(duration, wetness float64) ([]float64, error) {
	return Generate(duration, wetness, g.cfg.SampleRate, g.src)
}
