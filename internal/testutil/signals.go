// Package testutil holds signal fixtures and assertions shared by tests.
package testutil

import "math"

// DeterministicSine returns length samples of
// amplitude*sin(2*pi*freqHz*n/sampleRate), starting at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, max(length, 0))
	for n := range out {
		out[n] = amplitude * math.Sin(2*math.Pi*freqHz*float64(n)/sampleRate)
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, max(length, 0))
	for n := range out {
		out[n] = value
	}
	return out
}
