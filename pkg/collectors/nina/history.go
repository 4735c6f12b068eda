package nina

import (
	"context"
	"net/url"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// imageRecord is one entry of the image-history response.
type imageRecord struct {
	HFR   float64 `json:"HFR"`
	Stars int     `json:"Stars"`
}

// fetchHFR serves HFR history. The first fetch after ResetSeed, and every
// fetch while no socket is connected, reloads the full history over REST;
// otherwise the ring kept current by Listen is used.
func (c *Client) fetchHFR(ctx context.Context, points int) (*graph.Buffer, error) {
	if !c.seeded.Load() || !c.listening.Load() {
		if err := c.seedHFR(ctx); err != nil {
			return nil, err
		}
	}
	return graph.NewHFRBuffer(c.ring.Last(points)), nil
}

func (c *Client) seedHFR(ctx context.Context) error {
	var records []imageRecord
	if err := c.getJSON(ctx, "image-history", url.Values{"all": {"true"}}, &records); err != nil {
		return err
	}
	samples := make([]graph.HFRSample, 0, len(records))
	for _, r := range records {
		samples = append(samples, graph.HFRSample{HFR: r.HFR, Stars: r.Stars})
	}
	c.ring.Replace(samples)
	c.seeded.Store(true)
	c.logger.Debug("hfr history seeded", "instance", c.name, "images", len(samples))
	return nil
}
