package random

import (
	"math/rand"
	"sync"
)

// defaultSeed is used when callers pass seed == 0.
const defaultSeed int64 = 1

// Source yields uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// New returns a deterministic Source backed by math/rand. A zero seed selects
// a fixed default seed. The returned Source is not safe for concurrent use;
// wrap it with [Locked] when it is shared.
func New(seed int64) Source {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Uniform maps one draw from src onto [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

// IntRange draws an integer in [lo, lo+n) as floor(u*n)+lo.
func IntRange(src Source, lo, n int) int {
	if n <= 0 {
		return lo
	}
	v := int(src.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return lo + v
}

// Sequence replays a fixed list of values cyclically.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence returns a Source that yields values in order and wraps around.
// An empty list yields zeros.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: append([]float64(nil), values...)}
}

// Float64 returns the next value of the sequence.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Drawn reports how many values have been consumed since the last wrap.
func (s *Sequence) Drawn() int {
	return s.next
}

// Locked serializes access to an underlying Source.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src for concurrent use.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// Float64 returns the next draw of the wrapped Source.
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}
