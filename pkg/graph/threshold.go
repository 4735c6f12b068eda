package graph

import "math"

// ThresholdDef holds the guide-line values for one kind, in display units,
// and the colours drawn for them. BadColor is used only for grading values
// above OkMax; it never produces a line.
type ThresholdDef struct {
	GoodMax   float64
	OkMax     float64
	GoodColor uint32
	OkColor   uint32
	BadColor  uint32
}

// ReturnContext records the dashboard page the overlay was opened from.
type ReturnContext int

// ThresholdProvider supplies thresholds for the instance behind a page.
type ThresholdProvider interface {
	Thresholds(ctx ReturnContext, kind Kind) ThresholdDef
}

// Tone says which band a guide-line marks.
type Tone int

const (
	ToneGood Tone = iota
	ToneOk
)

// Line is one threshold guide-line slot. Hidden slots carry zero values.
type Line struct {
	Visible   bool
	Value     float64
	Frac      float64
	StartFrac float64
	EndFrac   float64
	Tone      Tone
	Color     uint32
}

// PixelY maps the line into a plot area whose drawable part begins topPad
// pixels down and is drawableH pixels tall.
func (l Line) PixelY(topPad, drawableH int) int {
	return topPad + int(float64(drawableH)*(1-l.Frac))
}

// Overlay is the fixed pool of threshold lines.
type Overlay [4]Line

// VisibleCount returns the number of visible slots.
func (o *Overlay) VisibleCount() int {
	n := 0
	for _, l := range o {
		if l.Visible {
			n++
		}
	}
	return n
}

// Hide marks every slot hidden.
func (o *Overlay) Hide() {
	for i := range o {
		o[i] = Line{}
	}
}

// Place repositions the pool for range r. Candidates are +good, -good, +ok,
// -ok for RMS and good, ok for HFR; the remaining slots are hidden. A
// candidate is visible when the range has positive height and the value lies
// inside it, bounds included.
func (o *Overlay) Place(r Range, k Kind, def ThresholdDef) {
	o.Hide()
	type candidate struct {
		v     float64
		tone  Tone
		color uint32
	}
	var cands []candidate
	if k == KindHFR {
		cands = []candidate{
			{def.GoodMax, ToneGood, def.GoodColor},
			{def.OkMax, ToneOk, def.OkColor},
		}
	} else {
		cands = []candidate{
			{def.GoodMax, ToneGood, def.GoodColor},
			{-def.GoodMax, ToneGood, def.GoodColor},
			{def.OkMax, ToneOk, def.OkColor},
			{-def.OkMax, ToneOk, def.OkColor},
		}
	}
	if !r.Valid() {
		return
	}
	for i, c := range cands {
		v := int(math.Round(c.v * 100))
		if v < r.Min || v > r.Max {
			continue
		}
		o[i] = Line{
			Visible:   true,
			Value:     c.v,
			Frac:      float64(v-r.Min) / float64(r.Span()),
			StartFrac: 0,
			EndFrac:   1,
			Tone:      c.tone,
			Color:     c.color,
		}
	}
}

// PlaceThresholds returns a fresh overlay for r.
func PlaceThresholds(r Range, k Kind, def ThresholdDef) Overlay {
	var o Overlay
	o.Place(r, k, def)
	return o
}
