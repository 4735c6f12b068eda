package graph

import "math"

// Range is a Y-axis extent in hundredths of a unit.
type Range struct {
	Min int
	Max int
}

// Span returns Max-Min.
func (r Range) Span() int { return r.Max - r.Min }

// Valid reports whether the range has positive height.
func (r Range) Valid() bool { return r.Max > r.Min }

// Headroom floors and the floors under the auto-scale data maximum.
const (
	rmsFloor      = 100
	hfrFloor      = 200
	rmsMinDataMax = 0.5
	hfrMinDataMax = 1.0
)

// Resolve computes the Y range for buf under sel. It must not be called with
// an empty buffer; the result is then the zero Range.
//
// RMS ranges are symmetric around zero. HFR ranges start at zero. Auto mode
// adds 20% headroom over the largest magnitude; RMS additionally pads by half
// an arc-second while HFR only rounds, so the two kinds do not share a
// formula.
func Resolve(buf *Buffer, sel Selection) Range {
	if buf.Empty() {
		return Range{}
	}
	if v := sel.ScaleValue(); v > 0 {
		if sel.Kind == KindHFR {
			return Range{Min: 0, Max: v}
		}
		return Range{Min: -v, Max: v}
	}

	if sel.Kind == KindHFR {
		peak := hfrMinDataMax
		for _, s := range buf.HFRSamples() {
			peak = math.Max(peak, s.HFR)
		}
		r := int(peak*120 + 0.5)
		if r < hfrFloor {
			r = hfrFloor
		}
		return Range{Min: 0, Max: r}
	}

	peak := rmsMinDataMax
	for _, s := range buf.RMSSamples() {
		peak = math.Max(peak, math.Abs(s.RA))
		peak = math.Max(peak, math.Abs(s.Dec))
	}
	r := int(peak*120 + 50)
	if r < rmsFloor {
		r = rmsFloor
	}
	return Range{Min: -r, Max: r}
}
