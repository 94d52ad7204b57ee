package report

import "math"

// Levels holds time-domain level statistics.
type Levels struct {
	Length        int
	DC            float64
	RMS           float64
	Peak          float64
	PeakPos       int
	CrestFactor   float64
	Energy        float64
	ZeroCrossings int
}

// MeasureLevels computes Levels in a single pass.
func MeasureLevels(signal []float64) Levels {
	n := len(signal)
	if n == 0 {
		return Levels{}
	}

	var (
		sum, c        float64
		sumSq         float64
		peak          float64
		peakPos       int
		zeroCrossings int
	)

	for i, x := range signal {
		// Kahan summation for the mean.
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
			peakPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Levels{
		Length:        n,
		DC:            sum / nf,
		RMS:           rms,
		Peak:          peak,
		PeakPos:       peakPos,
		CrestFactor:   crest,
		Energy:        sumSq,
		ZeroCrossings: zeroCrossings,
	}
}
