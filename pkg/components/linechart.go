// Package components provides the terminal drawing primitives of the
// dashboard: a braille line chart for the graph overlay, inline sparklines
// for the instance pages, and ANSI-aware text helpers.
package components

import (
	"math"
	"strings"
)

// ChartSeries is one plotted line. Values are drawn left to right by index,
// so the newest sample sits at the right edge.
type ChartSeries struct {
	Name   string
	Color  string // hex color, e.g. "#ff5500"
	Values []float64
	Hidden bool
}

// Guide is a horizontal reference line across the plot area.
type Guide struct {
	Frac  float64 // 0 = bottom edge, 1 = top edge
	Color string
}

// LineChartConfig holds configuration for a LineChart.
type LineChartConfig struct {
	Min, Max   float64   // fixed Y range in display units
	Labels     [5]string // top, upper quarter, middle, lower quarter, bottom
	LabelWidth int       // width reserved for Y labels (default 7)
	LabelColor string
	Guides     []Guide
}

// LineChart renders index-based series as a Braille-dot chart with a fixed
// Y range.
type LineChart struct {
	cfg    LineChartConfig
	series []ChartSeries
}

// NewLineChart creates a LineChart with the given configuration.
func NewLineChart(cfg LineChartConfig) *LineChart {
	if cfg.LabelWidth <= 0 {
		cfg.LabelWidth = 7
	}
	return &LineChart{cfg: cfg}
}

// AddSeries appends a series and returns its index.
func (lc *LineChart) AddSeries(s ChartSeries) int {
	lc.series = append(lc.series, s)
	return len(lc.series) - 1
}

// Render draws the chart into a string of the given cell dimensions. Labels
// sit on the rows closest to their quarter positions.
func (lc *LineChart) Render(width, height int) string {
	if width < 10 || height < 2 {
		return tooSmallMsg(width)
	}

	labelW := lc.cfg.LabelWidth
	if width < labelW+8 {
		labelW = 0
	}
	chartW := width - labelW
	chartH := height
	dotsW := chartW * 2
	dotsH := chartH * 4

	grid := make([][]uint8, chartH)
	owner := make([][]int, chartH)
	for r := range grid {
		grid[r] = make([]uint8, chartW)
		owner[r] = make([]int, chartW)
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}

	span := lc.cfg.Max - lc.cfg.Min
	toDotY := func(v float64) int {
		if span <= 0 {
			return dotsH / 2
		}
		frac := (v - lc.cfg.Min) / span
		frac = math.Max(0, math.Min(1, frac))
		return int(math.Round((1 - frac) * float64(dotsH-1)))
	}
	set := func(si, x, y int) {
		if x < 0 || x >= dotsW || y < 0 || y >= dotsH {
			return
		}
		r, c := y/4, x/2
		grid[r][c] |= brailleBit(x%2, y%4)
		owner[r][c] = si
	}

	for si, s := range lc.series {
		if s.Hidden || len(s.Values) == 0 {
			continue
		}
		n := len(s.Values)
		prevX, prevY := -1, -1
		for i, v := range s.Values {
			x := dotsW - 1
			if n > 1 {
				x = int(math.Round(float64(i) * float64(dotsW-1) / float64(n-1)))
			}
			y := toDotY(v)
			if prevX < 0 {
				set(si, x, y)
			} else {
				lcDrawSegment(prevX, prevY, x, y, func(px, py int) { set(si, px, py) })
			}
			prevX, prevY = x, y
		}
	}

	guideRows := make(map[int]string, len(lc.cfg.Guides))
	for _, g := range lc.cfg.Guides {
		row := lcRowForFrac(g.Frac, chartH)
		guideRows[row] = g.Color
	}
	labelRows := make(map[int]string, 5)
	for i, l := range lc.cfg.Labels {
		labelRows[lcRowForFrac(1-float64(i)/4, chartH)] = l
	}

	resetSeq := Reset()
	lines := make([]string, 0, chartH)
	for r := 0; r < chartH; r++ {
		var sb strings.Builder
		if labelW > 0 {
			label := PadLeft(Truncate(labelRows[r], labelW-1), labelW-1) + " "
			if lc.cfg.LabelColor != "" && strings.TrimSpace(label) != "" {
				label = Color(lc.cfg.LabelColor) + label + resetSeq
			}
			sb.WriteString(label)
		}
		guideColor, isGuide := guideRows[r]
		for c := 0; c < chartW; c++ {
			bits := grid[r][c]
			switch {
			case bits != 0:
				sb.WriteString(Color(lc.series[owner[r][c]].Color))
				sb.WriteRune(rune(0x2800 + int(bits)))
				sb.WriteString(resetSeq)
			case isGuide:
				sb.WriteString(Color(guideColor))
				sb.WriteRune('┄')
				sb.WriteString(resetSeq)
			default:
				sb.WriteRune(' ')
			}
		}
		lines = append(lines, trimRight(sb.String()))
	}
	return strings.Join(lines, "\n")
}

// lcRowForFrac maps a vertical fraction (1 = top) to a cell row.
func lcRowForFrac(frac float64, rows int) int {
	frac = math.Max(0, math.Min(1, frac))
	return int(math.Round((1 - frac) * float64(rows-1)))
}

// lcDrawSegment plots the dots between two points with Bresenham's line.
func lcDrawSegment(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := lcAbs(x1 - x0)
	dy := -lcAbs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func lcAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// brailleBit returns the bitmask for a dot at offset (offX, offY) within a
// Braille cell. offX is 0 (left) or 1 (right). offY is 0..3 (top to bottom).
//
// Unicode Braille dot numbering:
//
//	1 4      bit: 0x01  0x08
//	2 5           0x02  0x10
//	3 6           0x04  0x20
//	7 8           0x40  0x80
func brailleBit(offX, offY int) uint8 {
	leftBits := [4]uint8{0x01, 0x02, 0x04, 0x40}
	rightBits := [4]uint8{0x08, 0x10, 0x20, 0x80}

	if offY < 0 || offY > 3 {
		return 0
	}
	if offX == 0 {
		return leftBits[offY]
	}
	return rightBits[offY]
}

// tooSmallMsg returns a "too small" message for tiny viewports.
func tooSmallMsg(width int) string {
	msg := "too small"
	if width < 0 {
		return ""
	}
	if width < len(msg) {
		return msg[:width]
	}
	return msg
}

// trimRight removes trailing whitespace from a string.
func trimRight(s string) string {
	return strings.TrimRight(s, " \t")
}
