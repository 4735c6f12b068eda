package graph

// Legend holds the per-series hidden flags in RA, DEC, HFR, Total order.
type Legend [numSeries]bool

// DefaultLegend hides Total and shows everything else. Both kinds start from
// the same flags.
func DefaultLegend(Kind) Legend {
	var l Legend
	l[SeriesTotal] = true
	return l
}

// Hidden reports whether the user has hidden s.
func (l Legend) Hidden(s Series) bool {
	if s < 0 || int(s) >= numSeries {
		return true
	}
	return l[s]
}

// Visibility says which series the render driver should draw.
type Visibility [numSeries]bool

// Shown reports whether s is drawn.
func (v Visibility) Shown(s Series) bool {
	if s < 0 || int(s) >= numSeries {
		return false
	}
	return v[s]
}

// SeriesVisibility applies the legend to kind k. Series that do not belong to
// k are always hidden regardless of their flag.
func SeriesVisibility(k Kind, l Legend) Visibility {
	var v Visibility
	for _, s := range LegendSeries(k) {
		v[s] = !l[s]
	}
	return v
}
