// Package observe provides the observability primitives shared by the fart
// command and HTTP service: OpenTelemetry metrics, a Prometheus bridge, the
// slog logger factory and HTTP middleware.
//
// Tests should build a [Metrics] with [NewMetrics] and their own
// [metric.MeterProvider]; [DefaultMetrics] binds to the global provider.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope of all instruments below.
const meterName = "github.com/cwbudde/algo-fart"

// Metrics holds the metric instruments of the application. The OTel types
// are safe for concurrent use.
type Metrics struct {
	// SynthesizeDuration tracks wall time of one synthesis request.
	SynthesizeDuration metric.Float64Histogram

	// Sounds counts synthesized sounds. Use with attribute.String("preset", ...).
	Sounds metric.Int64Counter

	// InvalidParams counts rejected synthesis requests.
	InvalidParams metric.Int64Counter

	// ActiveVoices tracks voices that have started and not yet been released.
	ActiveVoices metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request time. Use with attributes
	// method and path.
	HTTPRequestDuration metric.Float64Histogram
}

// synthBuckets are histogram boundaries in seconds. Synthesis of a few
// seconds of audio takes milliseconds.
var synthBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1,
}

// NewMetrics creates all instruments from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.SynthesizeDuration, err = m.Float64Histogram("fart.synthesize.duration",
		metric.WithDescription("Latency of noise and envelope synthesis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(synthBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Sounds, err = m.Int64Counter("fart.sounds",
		metric.WithDescription("Total synthesized sounds by preset."),
	); err != nil {
		return nil, err
	}
	if met.InvalidParams, err = m.Int64Counter("fart.invalid_params",
		metric.WithDescription("Total synthesis requests rejected for invalid parameters."),
	); err != nil {
		return nil, err
	}
	if met.ActiveVoices, err = m.Int64UpDownCounter("fart.voices.active",
		metric.WithDescription("Number of voices currently playing."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("fart.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] bound to
// [otel.GetMeterProvider]. It panics if instrument creation fails.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordSynthesis records one successful synthesis.
func (m *Metrics) RecordSynthesis(ctx context.Context, preset string, seconds float64) {
	m.SynthesizeDuration.Record(ctx, seconds)
	m.Sounds.Add(ctx, 1, metric.WithAttributes(attribute.String("preset", preset)))
}

// RecordInvalid records one rejected request.
func (m *Metrics) RecordInvalid(ctx context.Context) {
	m.InvalidParams.Add(ctx, 1)
}

// VoiceStarted increments the active voice gauge.
func (m *Metrics) VoiceStarted(ctx context.Context) {
	m.ActiveVoices.Add(ctx, 1)
}

// VoiceReleased decrements the active voice gauge.
func (m *Metrics) VoiceReleased(ctx context.Context) {
	m.ActiveVoices.Add(ctx, -1)
}
