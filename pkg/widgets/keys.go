package widgets

import "gitlab.com/tinyland/lab/nina-pulse/pkg/graph"

// legendKeys maps legend toggle keys to series.
var legendKeys = map[string]graph.Series{
	"r": graph.SeriesRA,
	"d": graph.SeriesDEC,
	"t": graph.SeriesTotal,
	"h": graph.SeriesHFR,
}

// legendKey returns the toggle key of series s.
func legendKey(s graph.Series) string {
	for k, v := range legendKeys {
		if v == s {
			return k
		}
	}
	return "?"
}

// KeyEvent translates an overlay key into an engine event. sel is the
// current selection, needed to step through scale options.
func KeyEvent(key string, sel graph.Selection) (graph.Event, bool) {
	switch key {
	case "1", "2", "3", "4", "5":
		return graph.SelectPoints{Index: int(key[0] - '1')}, true
	case "a":
		return graph.SelectScale{Index: 0}, true
	case "s":
		n := graph.ScaleOptions(sel.Kind).Len()
		return graph.SelectScale{Index: (sel.ScaleIndex + 1) % n}, true
	case "S":
		n := graph.ScaleOptions(sel.Kind).Len()
		return graph.SelectScale{Index: (sel.ScaleIndex - 1 + n) % n}, true
	case "esc", "b":
		return graph.Back{}, true
	}
	if s, ok := legendKeys[key]; ok {
		return graph.ToggleLegend{Series: s}, true
	}
	return nil, false
}
