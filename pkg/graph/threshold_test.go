package graph

import "testing"

var testDef = ThresholdDef{
	GoodMax:   0.5,
	OkMax:     1.0,
	GoodColor: 0x15803d,
	OkColor:   0xca8a04,
	BadColor:  0xb91c1c,
}

func TestPlaceRMS(t *testing.T) {
	o := PlaceThresholds(Range{-170, 170}, KindRMS, testDef)
	if o.VisibleCount() != 4 {
		t.Fatalf("VisibleCount() = %d, want 4", o.VisibleCount())
	}
	wantValues := []float64{0.5, -0.5, 1.0, -1.0}
	for i, want := range wantValues {
		if o[i].Value != want {
			t.Errorf("slot %d value = %v, want %v", i, o[i].Value, want)
		}
		if o[i].StartFrac != 0 || o[i].EndFrac != 1 {
			t.Errorf("slot %d spans %v..%v, want 0..1", i, o[i].StartFrac, o[i].EndFrac)
		}
	}
	if o[0].Color != testDef.GoodColor || o[2].Color != testDef.OkColor {
		t.Errorf("colours = %06x/%06x, want good/ok", o[0].Color, o[2].Color)
	}
	if o[0].Frac != float64(50+170)/340 {
		t.Errorf("slot 0 frac = %v", o[0].Frac)
	}
}

func TestPlaceInclusiveBounds(t *testing.T) {
	o := PlaceThresholds(Range{-100, 100}, KindRMS, testDef)
	if !o[2].Visible || !o[3].Visible {
		t.Errorf("ok lines at exactly +/-1.0 should be visible: %+v %+v", o[2], o[3])
	}
	if o[2].Frac != 1 || o[3].Frac != 0 {
		t.Errorf("fracs = %v/%v, want 1/0", o[2].Frac, o[3].Frac)
	}
}

func TestPlaceOutsideRangeHidden(t *testing.T) {
	def := ThresholdDef{GoodMax: 2.0, OkMax: 3.5, GoodColor: 1, OkColor: 2}
	o := PlaceThresholds(Range{0, 300}, KindHFR, def)
	if !o[0].Visible {
		t.Error("good line at 2.0 should be visible in 0..3")
	}
	if o[1].Visible {
		t.Error("ok line at 3.5 should be hidden in 0..3")
	}
	if o[2].Visible || o[3].Visible {
		t.Error("HFR uses only two slots")
	}
}

func TestPlaceOneUnitOutside(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		kind Kind
		def  ThresholdDef
		slot int
		want bool
	}{
		{"rms ok at max", Range{-100, 100}, KindRMS, ThresholdDef{GoodMax: 0.5, OkMax: 1.00}, 2, true},
		{"rms ok one above max", Range{-100, 100}, KindRMS, ThresholdDef{GoodMax: 0.5, OkMax: 1.01}, 2, false},
		{"rms -ok one below min", Range{-100, 100}, KindRMS, ThresholdDef{GoodMax: 0.5, OkMax: 1.01}, 3, false},
		{"hfr good at min", Range{0, 200}, KindHFR, ThresholdDef{GoodMax: 0, OkMax: 1}, 0, true},
		{"hfr good one below min", Range{0, 200}, KindHFR, ThresholdDef{GoodMax: -0.01, OkMax: 1}, 0, false},
		{"hfr ok at max", Range{0, 200}, KindHFR, ThresholdDef{GoodMax: 1, OkMax: 2.00}, 1, true},
		{"hfr ok one above max", Range{0, 200}, KindHFR, ThresholdDef{GoodMax: 1, OkMax: 2.01}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := PlaceThresholds(tt.r, tt.kind, tt.def)
			if o[tt.slot].Visible != tt.want {
				t.Errorf("slot %d visible = %v, want %v", tt.slot, o[tt.slot].Visible, tt.want)
			}
		})
	}
}

func TestPlaceDegenerateRange(t *testing.T) {
	for _, r := range []Range{{0, 0}, {100, 100}, {200, -200}} {
		o := PlaceThresholds(r, KindRMS, testDef)
		if o.VisibleCount() != 0 {
			t.Errorf("range %+v: %d visible lines, want 0", r, o.VisibleCount())
		}
	}
}

func TestPlaceReusesPool(t *testing.T) {
	var o Overlay
	o.Place(Range{-400, 400}, KindRMS, testDef)
	o.Place(Range{0, 300}, KindHFR, ThresholdDef{GoodMax: 2, OkMax: 3.5})
	if o[2].Visible || o[3].Visible {
		t.Error("RMS-only slots should be hidden after an HFR placement")
	}
}

func TestLinePixelY(t *testing.T) {
	tests := []struct {
		frac float64
		want int
	}{
		{1, 10},
		{0, 110},
		{0.5, 60},
	}
	for _, tt := range tests {
		l := Line{Visible: true, Frac: tt.frac}
		if got := l.PixelY(10, 100); got != tt.want {
			t.Errorf("PixelY(frac=%v) = %d, want %d", tt.frac, got, tt.want)
		}
	}
}
