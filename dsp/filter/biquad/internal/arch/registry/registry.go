// Package registry selects a biquad block kernel for the running CPU.
package registry

import (
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients with a0 normalized to 1.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// ProcessBlockFn filters buf in place and returns the new delay-line state.
type ProcessBlockFn func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

// OpEntry is one registered kernel.
type OpEntry struct {
	Name         string
	SIMDLevel    cpu.SIMDLevel
	Priority     int
	ProcessBlock ProcessBlockFn
}

// OpRegistry keeps kernels ordered by descending priority. Entries with
// equal priority keep their registration order.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
}

// Global is the registry kernels register with from init.
var Global = &OpRegistry{}

// Register adds a kernel.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	at := slices.IndexFunc(r.entries, func(e OpEntry) bool { return e.Priority < entry.Priority })
	if at < 0 {
		at = len(r.entries)
	}
	r.entries = slices.Insert(r.entries, at, entry)
}

// Lookup returns the highest-priority kernel the features support, or nil.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if supports(features, r.entries[i].SIMDLevel) {
			e := r.entries[i]
			return &e
		}
	}
	return nil
}

// ListEntries returns a copy of the registered kernels in lookup order.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.entries)
}

func supports(f cpu.Features, level cpu.SIMDLevel) bool {
	switch {
	case level == cpu.SIMDNone:
		return true
	case f.ForceGeneric:
		return false
	case level == cpu.SIMDAVX2:
		return f.HasAVX2
	case level == cpu.SIMDSSE2:
		return f.HasSSE2
	default:
		return false
	}
}
