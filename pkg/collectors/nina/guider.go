package nina

import (
	"context"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// guiderGraph is the equipment/guider/graph response. Distances and RMS
// values are in guide-camera pixels; PixelScale converts them to
// arc-seconds.
type guiderGraph struct {
	RMS struct {
		RA      float64 `json:"RA"`
		Dec     float64 `json:"Dec"`
		Total   float64 `json:"Total"`
		PeakRA  float64 `json:"PeakRA"`
		PeakDec float64 `json:"PeakDec"`
	} `json:"RMS"`
	PixelScale float64     `json:"PixelScale"`
	GuideSteps []guideStep `json:"GuideSteps"`
}

type guideStep struct {
	RADistanceRaw  float64 `json:"RADistanceRaw"`
	DECDistanceRaw float64 `json:"DECDistanceRaw"`
}

func (c *Client) fetchRMS(ctx context.Context, points int) (*graph.Buffer, error) {
	var g guiderGraph
	if err := c.getJSON(ctx, "equipment/guider/graph", nil, &g); err != nil {
		return nil, err
	}
	return g.buffer(points), nil
}

// buffer converts the newest points guide steps to arc-seconds.
func (g guiderGraph) buffer(points int) *graph.Buffer {
	scale := g.PixelScale
	if scale <= 0 {
		scale = 1
	}
	steps := g.GuideSteps
	if len(steps) > points {
		steps = steps[len(steps)-points:]
	}
	samples := make([]graph.RMSSample, len(steps))
	for i, s := range steps {
		samples[i] = graph.RMSSample{RA: s.RADistanceRaw * scale, Dec: s.DECDistanceRaw * scale}
	}
	return graph.NewRMSBuffer(samples, graph.RMSSummary{
		RA:         g.RMS.RA * scale,
		Dec:        g.RMS.Dec * scale,
		Total:      g.RMS.Total * scale,
		PeakRA:     g.RMS.PeakRA * scale,
		PeakDec:    g.RMS.PeakDec * scale,
		PixelScale: g.PixelScale,
	})
}
