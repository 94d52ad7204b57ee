package envelope

import "sort"

// Point is one automation breakpoint: the curve reaches Value at Time
// (seconds) by linear interpolation from the preceding point.
type Point struct {
	Time  float64
	Value float64
}

// Curve is a piecewise-linear automation sequence.
type Curve []Point

// Times returns the breakpoint times in order.
func (c Curve) Times() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Time
	}
	return out
}

// Values returns the breakpoint values in order.
func (c Curve) Values() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Value
	}
	return out
}

// Resolve returns the curve sorted by time, the order a host plays it back
// in. Points with equal times keep their emission order, so the last one
// written wins at that instant. The receiver is not modified.
func (c Curve) Resolve() Curve {
	out := make(Curve, len(c))
	copy(out, c)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// ValueAt evaluates the resolved curve at time t. Before the first point it
// holds the first value, after the last point it holds the last value.
// An empty curve evaluates to 0.
func (c Curve) ValueAt(t float64) float64 {
	return c.Resolve().valueAt(t)
}

// Render writes the curve sampled at start + i/sampleRate into dst.
func (c Curve) Render(dst []float64, start, sampleRate float64) {
	r := c.Resolve()
	if len(r) == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}

	// seg is the index of the last point with Time <= t; times only grow, so
	// it only moves forward.
	seg := -1
	for i := range dst {
		t := start + float64(i)/sampleRate
		for seg+1 < len(r) && r[seg+1].Time <= t {
			seg++
		}
		dst[i] = r.segmentValue(seg, t)
	}
}

func (c Curve) valueAt(t float64) float64 {
	if len(c) == 0 {
		return 0
	}
	seg := sort.Search(len(c), func(i int) bool { return c[i].Time > t }) - 1
	return c.segmentValue(seg, t)
}

// segmentValue interpolates on a resolved curve given the index of the last
// point at or before t.
func (c Curve) segmentValue(seg int, t float64) float64 {
	if seg < 0 {
		return c[0].Value
	}
	if seg >= len(c)-1 {
		return c[len(c)-1].Value
	}
	p0, p1 := c[seg], c[seg+1]
	frac := (t - p0.Time) / (p1.Time - p0.Time)
	return p0.Value + frac*(p1.Value-p0.Value)
}
