package biquad

import "math"

// SilenceDB is reported for a response with no energy at the queried
// frequency.
const SilenceDB = -300.0

// MagnitudeSquared returns |H(f)|^2, evaluated in closed form on the unit
// circle.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)

	num := (c.B0-c.B2)*(c.B0-c.B2) + c.B1*c.B1 + (c.B1*(c.B0+c.B2)+c.B0*c.B2*cw)*cw
	den := (1-c.A2)*(1-c.A2) + c.A1*c.A1 + (c.A1*(c.A2+1)+cw*c.A2)*cw
	return num / den
}

// MagnitudeDB returns the section gain at freqHz in dB, floored at SilenceDB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return powerDB(c.MagnitudeSquared(freqHz, sampleRate))
}

// MagnitudeDB returns the cascade gain at freqHz in dB, floored at
// SilenceDB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	p := 1.0
	for i := range c.sections {
		p *= c.sections[i].MagnitudeSquared(freqHz, sampleRate)
	}
	return powerDB(p)
}

func powerDB(p float64) float64 {
	if !(p > 1e-30) {
		return SilenceDB
	}
	return 10 * math.Log10(p)
}
