// Package fart synthesizes comedic sound effects from a handful of musical
// parameters.
//
// A [Synthesizer] turns [Params] into a [Sound]: a blended brown/white noise
// buffer plus two automation curves, one for output gain and one for the
// center frequency of a band-pass filter. Hosts such as the offline renderer
// in dsp/render or the WebAudio binding turn a Sound into audio.
//
// Randomized presets ("quick", "long", "wet", "squeaky") sample parameters
// from fixed ranges; see [SamplePreset].
package fart
