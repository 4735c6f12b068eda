package theme

import (
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// SeriesColor returns the hex colour of series s.
func (t Theme) SeriesColor(s graph.Series) string {
	switch s {
	case graph.SeriesRA:
		return t.SeriesRA
	case graph.SeriesDEC:
		return t.SeriesDEC
	case graph.SeriesTotal:
		return t.SeriesTotal
	case graph.SeriesHFR:
		return t.SeriesHFR
	default:
		return t.Foreground
	}
}

// ApplyBrightness scales each channel of a 0xRRGGBB colour by pct/100.
// 100 and above return the colour unchanged; 0 and below return black.
func ApplyBrightness(color uint32, pct int) uint32 {
	if pct >= 100 {
		return color
	}
	if pct <= 0 {
		return 0
	}
	r := (color >> 16 & 0xFF) * uint32(pct) / 100
	g := (color >> 8 & 0xFF) * uint32(pct) / 100
	b := (color & 0xFF) * uint32(pct) / 100
	return r<<16 | g<<8 | b
}

// Dim applies ApplyBrightness to a "#rrggbb" colour. Strings that are not
// hex colours are returned unchanged.
func Dim(hex string, pct int) string {
	c, ok := ParseHex(hex)
	if !ok {
		return hex
	}
	return Hex(ApplyBrightness(c, pct))
}

// Hex formats a 0xRRGGBB colour as "#rrggbb".
func Hex(color uint32) string {
	return fmt.Sprintf("#%06x", color&0xFFFFFF)
}

// ParseHex parses "#rrggbb" or "rrggbb" into 0xRRGGBB.
func ParseHex(hex string) (uint32, bool) {
	r, g, b, ok := thParseHex(hex)
	if !ok {
		return 0, false
	}
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), true
}

// RGB splits a 0xRRGGBB colour into channels.
func RGB(color uint32) (r, g, b uint8) {
	return uint8(color >> 16), uint8(color >> 8), uint8(color)
}

func thParseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
