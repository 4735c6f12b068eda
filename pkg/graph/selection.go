package graph

// Selection is the user's current choice of what to plot.
type Selection struct {
	Kind        Kind
	PointsIndex int
	ScaleIndex  int
	Legend      Legend
}

// NewSelection returns the startup selection for kind k.
func NewSelection(k Kind) Selection {
	return Selection{
		Kind:        k,
		PointsIndex: DefaultPointsIndex,
		ScaleIndex:  0,
		Legend:      DefaultLegend(k),
	}
}

// PointsWanted returns the history depth the next fetch should request.
func (s Selection) PointsWanted() int {
	if s.PointsIndex < 0 || s.PointsIndex >= len(PointOptions) {
		return PointOptions[DefaultPointsIndex]
	}
	return PointOptions[s.PointsIndex]
}

// Scale returns the active scale option.
func (s Selection) Scale() ScaleOption {
	opt, ok := ScaleOptions(s.Kind).At(s.ScaleIndex)
	if !ok {
		opt, _ = ScaleOptions(s.Kind).At(0)
	}
	return opt
}

// ScaleValue returns the active scale in hundredths, 0 for auto.
func (s Selection) ScaleValue() int {
	return s.Scale().Value
}

// AutoScale reports whether the range follows the data.
func (s Selection) AutoScale() bool {
	return s.ScaleValue() == 0
}

// SetKind switches to kind k. The scale returns to auto and the legend to the
// kind's defaults; the history depth is kept.
func (s *Selection) SetKind(k Kind) {
	s.Kind = k
	s.ScaleIndex = 0
	s.Legend = DefaultLegend(k)
}

// SelectPoints sets the history depth. Out-of-range indices are ignored.
func (s *Selection) SelectPoints(i int) bool {
	if i < 0 || i >= len(PointOptions) {
		return false
	}
	s.PointsIndex = i
	return true
}

// SelectScale sets the Y scale. Indices outside the current kind's list are
// ignored.
func (s *Selection) SelectScale(i int) bool {
	if _, ok := ScaleOptions(s.Kind).At(i); !ok {
		return false
	}
	s.ScaleIndex = i
	return true
}

// ToggleLegend flips the hidden flag of one series.
func (s *Selection) ToggleLegend(series Series) bool {
	if series < 0 || int(series) >= numSeries {
		return false
	}
	s.Legend[series] = !s.Legend[series]
	return true
}
