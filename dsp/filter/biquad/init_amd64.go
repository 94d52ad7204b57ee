//go:build amd64 && !purego

package biquad

import (
	_ "github.com/cwbudde/algo-fart/dsp/filter/biquad/internal/arch/amd64/unroll4" // register unrolled kernel
	_ "github.com/cwbudde/algo-fart/dsp/filter/biquad/internal/arch/generic"       // register generic kernel
)
