package graph

import "math"

// RMSSample is one guide step. Both errors are signed arc-seconds.
type RMSSample struct {
	RA  float64
	Dec float64
}

// Total is the combined error magnitude. It is always derived, never stored.
func (s RMSSample) Total() float64 {
	return math.Sqrt(s.RA*s.RA + s.Dec*s.Dec)
}

// RMSSummary carries the guider's own statistics alongside the samples. The
// values are shown as-is and play no part in scaling.
type RMSSummary struct {
	RA         float64
	Dec        float64
	Total      float64
	PeakRA     float64
	PeakDec    float64
	PixelScale float64
}

// HFRSample is the focus metric of one saved image.
type HFRSample struct {
	HFR   float64
	Stars int
}

// Buffer holds one fetched dataset. Count is the number of valid samples as
// reported by the source; it may disagree with the slice length and is
// reconciled by Len.
type Buffer struct {
	Kind    Kind
	Count   int
	RMS     []RMSSample
	HFR     []HFRSample
	Summary RMSSummary
}

// NewRMSBuffer builds an RMS buffer whose Count equals len(samples).
func NewRMSBuffer(samples []RMSSample, summary RMSSummary) *Buffer {
	return &Buffer{Kind: KindRMS, Count: len(samples), RMS: samples, Summary: summary}
}

// NewHFRBuffer builds an HFR buffer whose Count equals len(samples).
func NewHFRBuffer(samples []HFRSample) *Buffer {
	return &Buffer{Kind: KindHFR, Count: len(samples), HFR: samples}
}

// EmptyBuffer is a "no data" result for kind k.
func EmptyBuffer(k Kind) *Buffer {
	return &Buffer{Kind: k}
}

// Len returns the number of usable samples: Count clamped to MaxPoints and to
// the samples actually present. A non-positive Count yields 0.
func (b *Buffer) Len() int {
	if b == nil || b.Count <= 0 {
		return 0
	}
	n := b.Count
	if n > MaxPoints {
		n = MaxPoints
	}
	avail := len(b.RMS)
	if b.Kind == KindHFR {
		avail = len(b.HFR)
	}
	if n > avail {
		n = avail
	}
	return n
}

// Empty reports whether the buffer is in the "no data" state.
func (b *Buffer) Empty() bool {
	return b.Len() == 0
}

// RMSSamples returns the usable RMS samples.
func (b *Buffer) RMSSamples() []RMSSample {
	if b == nil || b.Kind != KindRMS {
		return nil
	}
	return b.RMS[:b.Len()]
}

// HFRSamples returns the usable HFR samples.
func (b *Buffer) HFRSamples() []HFRSample {
	if b == nil || b.Kind != KindHFR {
		return nil
	}
	return b.HFR[:b.Len()]
}

// Values returns series s of the buffer in display units. Total is computed
// from RA and DEC on every call.
func (b *Buffer) Values(s Series) []float64 {
	var out []float64
	switch s {
	case SeriesRA, SeriesDEC, SeriesTotal:
		samples := b.RMSSamples()
		out = make([]float64, len(samples))
		for i, smp := range samples {
			switch s {
			case SeriesRA:
				out[i] = smp.RA
			case SeriesDEC:
				out[i] = smp.Dec
			default:
				out[i] = smp.Total()
			}
		}
	case SeriesHFR:
		samples := b.HFRSamples()
		out = make([]float64, len(samples))
		for i, smp := range samples {
			out[i] = smp.HFR
		}
	}
	return out
}

// AverageHFR returns the mean HFR of the usable samples, or 0 when empty.
func (b *Buffer) AverageHFR() float64 {
	samples := b.HFRSamples()
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s.HFR
	}
	return sum / float64(len(samples))
}
