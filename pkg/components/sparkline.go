package components

import (
	"fmt"
	"math"
	"strings"
)

// Sparkline block characters: 8 vertical levels per cell.
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineStyle configures the appearance of a sparkline.
type SparklineStyle struct {
	Color      string   // hex color for the sparkline
	ShowMinMax bool     // show min/max values flanking the sparkline
	MinY       *float64 // optional fixed minimum Y (nil = auto-scale)
	Label      string   // optional prefix label
}

// Sparkline renders inline sparkline charts using Unicode block elements.
type Sparkline struct {
	style SparklineStyle
}

// NewSparkline creates a new Sparkline with the given style.
func NewSparkline(style SparklineStyle) *Sparkline {
	return &Sparkline{style: style}
}

// Render draws the newest width values. Empty data renders as "".
func (s *Sparkline) Render(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}

	minY, maxY := sparkAutoRange(points)
	if s.style.MinY != nil {
		minY = *s.style.MinY
	}

	var b strings.Builder
	if s.style.Label != "" {
		b.WriteString(s.style.Label)
		b.WriteString(" ")
	}
	if s.style.ShowMinMax {
		fmt.Fprintf(&b, "%.2f ", minY)
	}
	chars := sparkMapToBlocks(points, minY, maxY)
	if fg := Color(s.style.Color); fg != "" {
		chars = fg + chars + Reset()
	}
	b.WriteString(chars)
	if s.style.ShowMinMax {
		fmt.Fprintf(&b, " %.2f", maxY)
	}
	return b.String()
}

// sparkAutoRange finds the min and max values in a data slice.
func sparkAutoRange(data []float64) (minY, maxY float64) {
	if len(data) == 0 {
		return 0, 0
	}
	minY, maxY = data[0], data[0]
	for _, v := range data[1:] {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	return minY, maxY
}

// sparkMapToBlocks maps data values to block characters based on the Y range.
func sparkMapToBlocks(data []float64, minY, maxY float64) string {
	var b strings.Builder
	rangeY := maxY - minY
	for _, v := range data {
		idx := 3
		if rangeY > 0 {
			normalized := math.Max(0, math.Min(1, (v-minY)/rangeY))
			idx = int(math.Round(normalized * 7))
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}
