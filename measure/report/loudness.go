package report

import (
	"math"

	"github.com/cwbudde/algo-fart/dsp/filter/biquad"
	"github.com/cwbudde/algo-fart/dsp/filter/design"
)

const (
	// K-weighting filter parameters from BS.1770.
	kShelfFreq = 1500.0
	kShelfGain = 4.0
	kHPFreq    = 38.0

	gateBlock    = 0.4 // seconds
	gateStep     = 0.1 // 75% overlap
	absoluteGate = -70.0
	relativeGate = -10.0

	// SilenceLUFS is reported for signals with no block above the gate.
	SilenceLUFS = -120.0
)

// IntegratedLoudness returns the gated BS.1770 loudness of a mono signal
// in LUFS. Signals shorter than one 400 ms block are measured as a single
// zero-padded block.
func IntegratedLoudness(signal []float64, sampleRate float64) float64 {
	if len(signal) == 0 || !(sampleRate > 0) {
		return SilenceLUFS
	}

	q := 1 / math.Sqrt2
	chain := biquad.NewChain(
		design.HighShelf(kShelfFreq, kShelfGain, q, sampleRate),
		design.Highpass(kHPFreq, q, sampleRate),
	)

	sq := make([]float64, len(signal))
	copy(sq, signal)
	chain.ProcessBlock(sq)
	for i, v := range sq {
		sq[i] = v * v
	}

	blockLen := max(int(math.Round(gateBlock*sampleRate)), 1)
	stepLen := max(int(math.Round(gateStep*sampleRate)), 1)

	var blocks []float64
	if len(sq) <= blockLen {
		blocks = append(blocks, sum(sq)/float64(blockLen))
	} else {
		for start := 0; start+blockLen <= len(sq); start += stepLen {
			blocks = append(blocks, sum(sq[start:start+blockLen])/float64(blockLen))
		}
	}

	return gatedLoudness(blocks)
}

func gatedLoudness(blocks []float64) float64 {
	var absSum float64
	var absKept []float64
	for _, b := range blocks {
		if toLUFS(b) > absoluteGate {
			absKept = append(absKept, b)
			absSum += b
		}
	}
	if len(absKept) == 0 {
		return SilenceLUFS
	}

	threshold := toLUFS(absSum/float64(len(absKept))) + relativeGate

	var relSum float64
	var relCount int
	for _, b := range absKept {
		if toLUFS(b) > threshold {
			relSum += b
			relCount++
		}
	}
	if relCount == 0 {
		return SilenceLUFS
	}

	return toLUFS(relSum / float64(relCount))
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return SilenceLUFS
	}
	return -0.691 + 10*math.Log10(meanSquare)
}
