// Package widgets provides the widget implementations hosted by the
// nina-pulse dashboard. Each widget implements the app.Widget interface and
// receives data via the Elm-architecture Update loop.
package widgets

import (
	"strings"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/components"
)

// Common color constants for text that is not themed.
const (
	// ColorDim is used for de-emphasized text such as hidden legend pills.
	ColorDim = "#9CA3AF"

	// ColorError is used for error message text.
	ColorError = "#EF4444"
)

// centerMessage renders msg centered in the given area.
func centerMessage(msg string, width, height int) []string {
	lines := make([]string, height)
	if height == 0 {
		return lines
	}
	pad := max(0, (width-components.VisibleLen(msg))/2)
	lines[height/2] = strings.Repeat(" ", pad) + msg
	return lines
}

// fitLines pads or truncates lines to exactly height lines, each no wider
// than width visible characters.
func fitLines(lines []string, width, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if components.VisibleLen(line) > width {
			lines[i] = components.Truncate(line, width)
		}
	}
	return strings.Join(lines, "\n")
}
