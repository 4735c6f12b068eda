package theme

import (
	"strconv"

	"github.com/muesli/termenv"
)

// Adapt rewrites the hex colours of t as ANSI palette indices for terminals
// below 24-bit depth: the 256-colour palette at depth 8 and above, the 16
// basic colours below that. Colours that do not parse are kept.
func Adapt(t Theme, colorDepth int) Theme {
	if colorDepth >= 24 {
		return t
	}
	profile := termenv.ANSI256
	if colorDepth < 8 {
		profile = termenv.ANSI
	}
	for _, c := range []*string{
		&t.Background, &t.Foreground, &t.Dim, &t.Accent,
		&t.Border, &t.Title, &t.Label, &t.Grid,
		&t.SeriesRA, &t.SeriesDEC, &t.SeriesTotal, &t.SeriesHFR,
		&t.HelpKey, &t.HelpDesc,
	} {
		*c = thConvert(*c, profile)
	}
	return t
}

// thConvert maps a "#rrggbb" colour to its palette index in profile.
func thConvert(hex string, profile termenv.Profile) string {
	switch c := profile.Convert(termenv.RGBColor(hex)).(type) {
	case termenv.ANSI256Color:
		return strconv.Itoa(int(c))
	case termenv.ANSIColor:
		return strconv.Itoa(int(c))
	default:
		return hex
	}
}
