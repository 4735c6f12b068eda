package graph

import "testing"

func TestSeriesVisibility(t *testing.T) {
	rms := SeriesVisibility(KindRMS, DefaultLegend(KindRMS))
	if !rms.Shown(SeriesRA) || !rms.Shown(SeriesDEC) {
		t.Error("RA and DEC should be shown by default")
	}
	if rms.Shown(SeriesTotal) {
		t.Error("Total should be hidden by default")
	}
	if rms.Shown(SeriesHFR) {
		t.Error("HFR is never shown on an RMS graph")
	}

	var all Legend
	hfr := SeriesVisibility(KindHFR, all)
	if !hfr.Shown(SeriesHFR) {
		t.Error("HFR should follow its flag")
	}
	for _, s := range []Series{SeriesRA, SeriesDEC, SeriesTotal} {
		if hfr.Shown(s) {
			t.Errorf("%s is never shown on an HFR graph", s)
		}
	}
}

func TestLegendSeries(t *testing.T) {
	if got := LegendSeries(KindRMS); len(got) != 3 || got[2] != SeriesTotal {
		t.Errorf("LegendSeries(RMS) = %v", got)
	}
	if got := LegendSeries(KindHFR); len(got) != 1 || got[0] != SeriesHFR {
		t.Errorf("LegendSeries(HFR) = %v", got)
	}
}

func TestSelectionBounds(t *testing.T) {
	s := NewSelection(KindHFR)
	if s.SelectScale(5) {
		t.Error("HFR has no scale index 5")
	}
	if !s.SelectScale(4) || s.ScaleValue() != 1600 {
		t.Errorf("SelectScale(4) value = %d, want 1600", s.ScaleValue())
	}
	if s.SelectPoints(5) || s.SelectPoints(-1) {
		t.Error("points index out of range accepted")
	}
	if s.PointsWanted() != 50 {
		t.Errorf("PointsWanted() = %d, want 50", s.PointsWanted())
	}
	if s.ToggleLegend(Series(7)) {
		t.Error("unknown series toggled")
	}
}

func TestScaleOptions(t *testing.T) {
	rms := ScaleOptions(KindRMS)
	if rms.Len() != 6 {
		t.Fatalf("RMS options = %d, want 6", rms.Len())
	}
	if o, _ := rms.At(3); o.Label != `4"` || o.Value != 400 {
		t.Errorf("RMS option 3 = %+v", o)
	}
	hfr := ScaleOptions(KindHFR)
	if hfr.Len() != 5 {
		t.Fatalf("HFR options = %d, want 5", hfr.Len())
	}
	if _, ok := hfr.At(5); ok {
		t.Error("HFR option 5 should not exist")
	}
	for _, set := range []ScaleSet{rms, hfr} {
		if o, _ := set.At(0); !o.Auto() {
			t.Errorf("option 0 = %+v, want auto", o)
		}
	}
}
