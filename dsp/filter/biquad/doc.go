// Package biquad provides the second-order IIR filter runtime used by the
// offline renderer.
//
// A [Section] implements Direct Form II Transposed processing for one set of
// [Coefficients]. A [Chain] runs sections in series and lets callers retune
// individual sections between blocks without clearing their state, which is
// how automated filter frequencies are rendered.
//
// Coefficient design lives in dsp/filter/design.
package biquad
