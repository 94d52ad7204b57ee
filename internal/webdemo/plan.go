package webdemo

import (
	"github.com/cwbudde/algo-fart/dsp/envelope"
	"github.com/cwbudde/algo-fart/dsp/render"
	"github.com/cwbudde/algo-fart/fart"
)

// StopTail is how long the buffer source keeps running past the sound's
// nominal duration.
const StopTail = 0.1

// AudioParam automation methods.
const (
	SetValueAtTime          = "setValueAtTime"
	LinearRampToValueAtTime = "linearRampToValueAtTime"
)

// Automation is one AudioParam call.
type Automation struct {
	Method string
	Value  float64
	Time   float64
}

// FilterSpec configures one BiquadFilterNode.
type FilterSpec struct {
	Type      string
	Frequency float64
	Q         float64
	GainDB    float64
}

// Plan describes the node graph and schedule for one sound on an
// AudioContext whose clock reads sound.Start.
type Plan struct {
	StartAt float64
	StopAt  float64

	Band FilterSpec
	Peak FilterSpec

	Gain      []Automation
	Frequency []Automation
}

// BuildPlan derives the WebAudio schedule of sound. Curves are resolved
// before scheduling so the browser plays the same envelope as the offline
// renderer.
func BuildPlan(sound *fart.Sound) Plan {
	base := sound.Params.Frequency
	return Plan{
		StartAt: sound.Start,
		StopAt:  sound.End() + StopTail,
		Band: FilterSpec{
			Type:      "bandpass",
			Frequency: base,
			Q:         render.BandQ,
		},
		Peak: FilterSpec{
			Type:      "peaking",
			Frequency: render.PeakRatio * base,
			Q:         render.PeakQ,
			GainDB:    render.PeakGainDB,
		},
		Gain:      automations(sound.Gain),
		Frequency: automations(sound.Frequency),
	}
}

// automations sets the first point and ramps to the rest.
func automations(c envelope.Curve) []Automation {
	resolved := c.Resolve()
	out := make([]Automation, len(resolved))
	for i, p := range resolved {
		method := LinearRampToValueAtTime
		if i == 0 {
			method = SetValueAtTime
		}
		out[i] = Automation{Method: method, Value: p.Value, Time: p.Time}
	}
	return out
}
