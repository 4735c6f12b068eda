// Package export writes graph frames to image files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/theme"
)

// ErrNotRendered is returned for frames that have no data to draw.
var ErrNotRendered = errors.New("export: frame has no data")

// Default image size in pixels.
const (
	DefaultWidth  = 1000
	DefaultHeight = 400
)

// Options control the look of an exported image.
type Options struct {
	Theme      theme.Theme
	Brightness int // percent, applied to series and threshold colours
	Width      int
	Height     int
}

// WritePNG renders f as a PNG line chart: the visible series over sample
// index, the Y axis fixed to the frame's range with its five labels as
// ticks, and the visible threshold lines dashed across the plot.
func WritePNG(w io.Writer, f graph.Frame, opts Options) error {
	if f.Mode != graph.ModeRendered || f.Buffer.Empty() {
		return ErrNotRendered
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	n := f.Buffer.Len()
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	xMax := float64(max(1, n-1))

	var series []chart.Series
	for _, s := range graph.LegendSeries(f.Kind) {
		if !f.Visible.Shown(s) {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name: s.String(),
			Style: chart.Style{
				StrokeColor: color(opts.Theme.SeriesColor(s), opts.Brightness),
				StrokeWidth: 2,
			},
			XValues: xs,
			YValues: f.Buffer.Values(s),
		})
	}
	if len(series) == 0 {
		return fmt.Errorf("export: all series hidden: %w", ErrNotRendered)
	}

	for _, l := range f.Lines {
		if !l.Visible {
			continue
		}
		c := theme.ApplyBrightness(l.Color, opts.Brightness)
		r, g, b := theme.RGB(c)
		series = append(series, chart.ContinuousSeries{
			Name: fmt.Sprintf("%.2f", l.Value),
			Style: chart.Style{
				StrokeColor:     drawing.Color{R: r, G: g, B: b, A: 255},
				StrokeWidth:     1,
				StrokeDashArray: []float64{5, 5},
			},
			XValues: []float64{0, xMax},
			YValues: []float64{l.Value, l.Value},
		})
	}

	ch := chart.Chart{
		Title:  frameTitle(f),
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "sample",
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{
				Min: float64(f.Range.Min) / 100,
				Max: float64(f.Range.Max) / 100,
			},
			Ticks: yTicks(f),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("export: render: %w", err)
	}
	return nil
}

// WriteFile renders f into dir under a timestamped name and returns the
// path written.
func WriteFile(dir string, f graph.Frame, opts Options, now time.Time) (string, error) {
	name := fmt.Sprintf("nina-pulse-%s-%s.png", f.Kind, now.Format("20060102-150405"))
	path := filepath.Join(dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := WritePNG(out, f, opts); err != nil {
		out.Close()
		os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}

// yTicks places the frame's labels at the top, quarter, middle and bottom
// of the range.
func yTicks(f graph.Frame) []chart.Tick {
	lo, hi := float64(f.Range.Min)/100, float64(f.Range.Max)/100
	ticks := make([]chart.Tick, len(f.Labels))
	for i, label := range f.Labels {
		ticks[i] = chart.Tick{Value: hi - (hi-lo)*float64(i)/4, Label: label}
	}
	return ticks
}

func frameTitle(f graph.Frame) string {
	if f.Kind == graph.KindHFR {
		return fmt.Sprintf("HFR, last %d images", f.Buffer.Len())
	}
	s := f.Buffer.Summary
	return fmt.Sprintf(`Guiding RMS  RA %.2f"  DEC %.2f"  Tot %.2f"`, s.RA, s.Dec, s.Total)
}

func color(hex string, brightness int) drawing.Color {
	c, ok := theme.ParseHex(hex)
	if !ok {
		return drawing.ColorBlack
	}
	r, g, b := theme.RGB(theme.ApplyBrightness(c, brightness))
	return drawing.Color{R: r, G: g, B: b, A: 255}
}
