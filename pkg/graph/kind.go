// Package graph is the scaling and state engine behind the RMS/HFR history
// overlay. It tracks the user's selections, turns a fetched sample buffer into
// an axis range, axis labels, threshold guide-line placements and per-series
// visibility, and decides when a fresh fetch is needed. It performs no I/O and
// draws nothing; a render driver consumes the Frame it produces.
package graph

// Kind selects which telemetry the overlay shows.
type Kind int

const (
	// KindRMS is guiding error: signed RA/DEC components plus a derived total.
	KindRMS Kind = iota
	// KindHFR is the half-flux radius of each captured image.
	KindHFR
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRMS:
		return "RMS"
	case KindHFR:
		return "HFR"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k == KindRMS || k == KindHFR
}

// Series identifies one plotted line. The order matches the legend flag
// slots: RA, DEC, HFR, Total.
type Series int

const (
	SeriesRA Series = iota
	SeriesDEC
	SeriesHFR
	SeriesTotal

	numSeries = 4
)

// String returns the short legend label of the series.
func (s Series) String() string {
	switch s {
	case SeriesRA:
		return "RA"
	case SeriesDEC:
		return "DEC"
	case SeriesHFR:
		return "HFR"
	case SeriesTotal:
		return "Tot"
	default:
		return "?"
	}
}

// AllSeries lists every series in legend slot order.
var AllSeries = [numSeries]Series{SeriesRA, SeriesDEC, SeriesHFR, SeriesTotal}

// LegendSeries returns the series that belong on the legend of kind k, in
// display order.
func LegendSeries(k Kind) []Series {
	if k == KindHFR {
		return []Series{SeriesHFR}
	}
	return []Series{SeriesRA, SeriesDEC, SeriesTotal}
}

// MaxPoints is the largest number of samples per series the engine considers.
const MaxPoints = 500

// PointOptions are the selectable history depths.
var PointOptions = [...]int{25, 50, 100, 200, 400}

// DefaultPointsIndex selects 50 points.
const DefaultPointsIndex = 1

// ScaleOption is one Y-scale choice. Value is the half-range (RMS) or full
// range (HFR) in hundredths of a unit; zero means auto.
type ScaleOption struct {
	Label string
	Value int
}

// Auto reports whether the option means "derive the range from the data".
func (o ScaleOption) Auto() bool { return o.Value == 0 }

// maxScaleOptions is the capacity of a ScaleSet, sized to the larger list.
const maxScaleOptions = 6

// ScaleSet is a fixed-capacity list of scale options with an active count.
// Index 0 is always auto.
type ScaleSet struct {
	opts  [maxScaleOptions]ScaleOption
	count int
}

// Len returns the number of active options.
func (s ScaleSet) Len() int { return s.count }

// At returns the option at i and whether i is in range.
func (s ScaleSet) At(i int) (ScaleOption, bool) {
	if i < 0 || i >= s.count {
		return ScaleOption{}, false
	}
	return s.opts[i], true
}

// Options returns a copy of the active options.
func (s ScaleSet) Options() []ScaleOption {
	out := make([]ScaleOption, s.count)
	copy(out, s.opts[:s.count])
	return out
}

var (
	rmsScales = ScaleSet{
		opts: [maxScaleOptions]ScaleOption{
			{"Auto", 0}, {`1"`, 100}, {`2"`, 200}, {`4"`, 400}, {`8"`, 800}, {`16"`, 1600},
		},
		count: 6,
	}
	hfrScales = ScaleSet{
		opts: [maxScaleOptions]ScaleOption{
			{"Auto", 0}, {"2", 200}, {"4", 400}, {"8", 800}, {"16", 1600},
		},
		count: 5,
	}
)

// ScaleOptions returns the scale choices available for kind k.
func ScaleOptions(k Kind) ScaleSet {
	if k == KindHFR {
		return hfrScales
	}
	return rmsScales
}
