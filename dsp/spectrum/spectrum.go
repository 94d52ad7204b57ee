package spectrum

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratch is pooled memory for unpacking complex bins into the planar
// layout vecmath expects.
var scratch = sync.Pool{New: func() any { return new([]float64) }}

// planar splits in into real and imaginary halves of a pooled buffer. The
// caller returns buf to the pool when done.
func planar(in []complex128) (re, im []float64, buf *[]float64) {
	buf = scratch.Get().(*[]float64)
	n := len(in)
	if cap(*buf) < 2*n {
		*buf = make([]float64, 2*n)
	}
	data := (*buf)[:2*n]
	re, im = data[:n], data[n:]
	for i, c := range in {
		re[i], im[i] = real(c), imag(c)
	}
	return re, im, buf
}

// Power returns |X[k]|^2 for each bin. Scratch buffers are pooled, so in
// steady state this allocates only the output slice.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := planar(in)
	vecmath.Power(out, re, im)
	scratch.Put(buf)
	return out
}

// BinFrequency returns the center frequency of bin k of an fftSize-point
// transform.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(fftSize)
}

// Centroid returns the power-weighted mean frequency of a one-sided power
// spectrum whose bins are spaced binHz apart, starting at DC. It returns 0
// for a silent spectrum.
func Centroid(power []float64, binHz float64) (float64, error) {
	if len(power) == 0 {
		return 0, fmt.Errorf("centroid requires a non-empty spectrum")
	}
	if !(binHz > 0) || math.IsInf(binHz, 0) {
		return 0, fmt.Errorf("centroid bin spacing must be > 0: %f", binHz)
	}

	var num, den float64
	for k, p := range power {
		num += float64(k) * binHz * p
		den += p
	}
	if den == 0 {
		return 0, nil
	}
	return num / den, nil
}
