package collectors

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// Synthetic generates plausible guiding and focus histories without a NINA
// instance. The same seed always yields the same samples.
type Synthetic struct {
	name string
	seed uint64

	mu    sync.Mutex
	calls uint64
}

// NewSynthetic returns a synthetic fetcher.
func NewSynthetic(name string, seed int64) *Synthetic {
	return &Synthetic{name: name, seed: uint64(seed)}
}

// Name returns the fetcher name.
func (s *Synthetic) Name() string { return s.name }

// Fetch returns points samples. Successive calls drift slightly so a
// refreshing overlay visibly changes.
func (s *Synthetic) Fetch(ctx context.Context, kind graph.Kind, points int) (*graph.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	call := s.calls
	s.calls++
	s.mu.Unlock()

	points = max(0, min(points, graph.MaxPoints))
	rng := rand.New(rand.NewPCG(s.seed, call))
	if kind == graph.KindHFR {
		return NewHFRSeries(rng, points), nil
	}
	return NewRMSSeries(rng, points), nil
}

// NewRMSSeries builds a guiding trace: RA wanders with periodic error, DEC
// drifts slowly, both with seeing noise.
func NewRMSSeries(rng *rand.Rand, n int) *graph.Buffer {
	samples := make([]graph.RMSSample, n)
	phase := rng.Float64() * 2 * math.Pi
	dec := 0.0
	var sumRA, sumDec, peakRA, peakDec float64
	for i := range samples {
		ra := 0.45*math.Sin(phase+float64(i)/8) + rng.NormFloat64()*0.25
		dec = 0.9*dec + rng.NormFloat64()*0.2
		samples[i] = graph.RMSSample{RA: ra, Dec: dec}
		sumRA += ra * ra
		sumDec += dec * dec
		peakRA = math.Max(peakRA, math.Abs(ra))
		peakDec = math.Max(peakDec, math.Abs(dec))
	}
	sum := graph.RMSSummary{PeakRA: peakRA, PeakDec: peakDec, PixelScale: 1.12}
	if n > 0 {
		sum.RA = math.Sqrt(sumRA / float64(n))
		sum.Dec = math.Sqrt(sumDec / float64(n))
		sum.Total = math.Hypot(sum.RA, sum.Dec)
	}
	return graph.NewRMSBuffer(samples, sum)
}

// NewHFRSeries builds a focus trace that slowly softens with temperature
// drift and snaps back after each simulated autofocus run.
func NewHFRSeries(rng *rand.Rand, n int) *graph.Buffer {
	samples := make([]graph.HFRSample, n)
	base := 1.8 + rng.Float64()*0.4
	drift := 0.0
	for i := range samples {
		if i%30 == 0 {
			drift = 0
		}
		drift += 0.02 + rng.Float64()*0.02
		hfr := base + drift + rng.NormFloat64()*0.08
		if hfr < 0.5 {
			hfr = 0.5
		}
		samples[i] = graph.HFRSample{HFR: hfr, Stars: 250 + rng.IntN(200)}
	}
	return graph.NewHFRBuffer(samples)
}
