package fart

import (
	"fmt"

	"github.com/cwbudde/algo-fart/dsp/core"
)

// ErrInvalidParameter is wrapped by every parameter validation error. It is
// shared with the dsp packages, so errors.Is works across layers.
var ErrInvalidParameter = core.ErrInvalidParameter

// ErrUnknownPreset reports a preset name outside the fixed table. It wraps
// [ErrInvalidParameter].
var ErrUnknownPreset = fmt.Errorf("%w: unknown preset", ErrInvalidParameter)
