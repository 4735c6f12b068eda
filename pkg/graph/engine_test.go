package graph

import (
	"sync"
	"testing"
)

type staticThresholds map[Kind]ThresholdDef

func (s staticThresholds) Thresholds(_ ReturnContext, k Kind) ThresholdDef { return s[k] }

func newTestEngine() *Engine {
	return NewEngine(staticThresholds{
		KindRMS: testDef,
		KindHFR: {GoodMax: 2.0, OkMax: 3.5, GoodColor: 0x15803d, OkColor: 0xca8a04},
	})
}

func TestShowRequestsFetch(t *testing.T) {
	e := newTestEngine()
	if e.Visible() || e.FetchPending() {
		t.Fatal("new engine should be idle with no fetch pending")
	}
	e.Show(KindRMS, 2)
	if !e.Visible() || !e.FetchPending() {
		t.Fatal("Show should make the overlay visible and request a fetch")
	}
	if e.Mode() != ModeLoading {
		t.Errorf("Mode() = %v, want loading", e.Mode())
	}
	if e.ReturnContext() != 2 {
		t.Errorf("ReturnContext() = %d, want 2", e.ReturnContext())
	}
}

func TestFetchFlagCoalesces(t *testing.T) {
	e := newTestEngine()
	e.Show(KindRMS, 1)
	e.SelectPoints(2)
	e.RequestSilentRefresh()
	e.SelectScale(0)

	if !e.ClearFetchPending() {
		t.Fatal("first clear should report a pending fetch")
	}
	if e.ClearFetchPending() {
		t.Error("triggers should coalesce into one fetch")
	}
}

func TestHideClearsOnlyFetchFlag(t *testing.T) {
	e := newTestEngine()
	e.Show(KindHFR, 1)
	e.SelectPoints(3)
	e.ToggleLegend(SeriesHFR)
	e.Hide()

	if e.FetchPending() || e.Visible() {
		t.Error("Hide should clear the fetch flag and the overlay")
	}
	sel := e.Selection()
	if sel.PointsIndex != 3 || !sel.Legend[SeriesHFR] {
		t.Errorf("Hide changed the selection: %+v", sel)
	}
	e.RequestSilentRefresh()
	if e.FetchPending() {
		t.Error("silent refresh while hidden should be ignored")
	}
}

func TestRMSAutoScenario(t *testing.T) {
	e := newTestEngine()
	e.Show(KindRMS, 1)
	e.ClearFetchPending()
	if !e.OnDataArrived(rmsBuf(1.0, 0.3, -0.2, 0.6)) {
		t.Fatal("delivery rejected")
	}

	f := e.Frame()
	if f.Mode != ModeRendered {
		t.Fatalf("Mode = %v, want rendered", f.Mode)
	}
	if f.Range != (Range{-170, 170}) {
		t.Errorf("Range = %+v, want {-170 170}", f.Range)
	}
	if f.Labels[0] != `+1.7"` || f.Labels[2] != `0"` || f.Labels[4] != `-1.7"` {
		t.Errorf("Labels = %q", f.Labels)
	}
	if f.Lines.VisibleCount() != 4 {
		t.Errorf("visible lines = %d, want 4", f.Lines.VisibleCount())
	}
	if !f.LegendShown() {
		t.Error("legend should be shown once rendered")
	}
}

func TestFixedScaleReusesCache(t *testing.T) {
	e := newTestEngine()
	e.Show(KindRMS, 1)
	e.ClearFetchPending()
	e.OnDataArrived(rmsBuf(1.0, 0.3))

	if !e.SelectScale(3) {
		t.Fatal("SelectScale(3) rejected")
	}
	if e.FetchPending() {
		t.Error("a fixed scale must not request a fetch")
	}
	f := e.Frame()
	if f.Mode != ModeRendered || f.Range != (Range{-400, 400}) {
		t.Errorf("frame = %v %+v, want rendered {-400 400}", f.Mode, f.Range)
	}
	if f.Labels[0] != `+4.0"` {
		t.Errorf("top label = %q, want +4.0\"", f.Labels[0])
	}

	e.SelectScale(0)
	if !e.FetchPending() || e.Mode() != ModeLoading {
		t.Error("returning to auto should request a fetch")
	}
}

func TestFixedScaleWithoutDataWaits(t *testing.T) {
	e := newTestEngine()
	e.Show(KindHFR, 1)
	e.SelectScale(2)
	if e.Mode() != ModeLoading {
		t.Errorf("Mode() = %v, want loading", e.Mode())
	}
	e.ClearFetchPending()
	e.OnDataArrived(hfrBuf(1, 2))
	if got := e.Frame().Range; got != (Range{0, 400}) {
		t.Errorf("Range = %+v, want {0 400}", got)
	}
}

func TestHFRNoData(t *testing.T) {
	e := newTestEngine()
	e.Show(KindHFR, 1)
	if !e.OnDataArrived(&Buffer{Kind: KindHFR, Count: 0}) {
		t.Fatal("empty delivery rejected")
	}
	f := e.Frame()
	if f.Mode != ModeNoData {
		t.Fatalf("Mode = %v, want no data", f.Mode)
	}
	if f.Lines.VisibleCount() != 0 || f.LegendShown() {
		t.Error("lines and legend should be hidden without data")
	}
	for _, s := range AllSeries {
		if f.Visible.Shown(s) {
			t.Errorf("%s shown without data", s)
		}
	}
	if e.FetchPending() {
		t.Error("delivery should clear the fetch flag")
	}
}

func TestStaleDeliveryDropped(t *testing.T) {
	e := newTestEngine()
	if e.OnDataArrived(rmsBuf(1, 1)) {
		t.Error("delivery while hidden should be dropped")
	}

	e.Show(KindHFR, 1)
	if e.OnDataArrived(rmsBuf(1, 1)) {
		t.Error("RMS delivery to an HFR overlay should be dropped")
	}
	if !e.FetchPending() {
		t.Error("a dropped delivery must not clear the fetch flag")
	}
}

func TestLegendToggleIsolated(t *testing.T) {
	e := newTestEngine()
	e.Show(KindRMS, 1)
	e.ClearFetchPending()
	e.OnDataArrived(rmsBuf(0.4, 0.4))
	before := e.Frame()

	e.ToggleLegend(SeriesTotal)
	after := e.Frame()
	if e.FetchPending() {
		t.Error("legend toggle must not request a fetch")
	}
	if after.Range != before.Range {
		t.Error("legend toggle changed the range")
	}
	if !after.Visible.Shown(SeriesTotal) || !after.Visible.Shown(SeriesRA) || !after.Visible.Shown(SeriesDEC) {
		t.Errorf("visibility after toggle = %v", after.Visible)
	}
}

func TestKindSwitchResets(t *testing.T) {
	e := newTestEngine()
	e.Show(KindRMS, 1)
	e.SelectPoints(4)
	e.SelectScale(5)
	e.ToggleLegend(SeriesRA)
	e.Hide()

	e.Show(KindHFR, 1)
	sel := e.Selection()
	if sel.ScaleIndex != 0 {
		t.Errorf("ScaleIndex = %d, want 0", sel.ScaleIndex)
	}
	if sel.Legend != DefaultLegend(KindHFR) {
		t.Errorf("Legend = %v, want defaults", sel.Legend)
	}
	if e.PointsWanted() != 400 {
		t.Errorf("PointsWanted() = %d, want 400", e.PointsWanted())
	}
}

func TestDispatch(t *testing.T) {
	e := newTestEngine()
	e.Show(KindRMS, 3)
	e.ClearFetchPending()

	if _, back := e.Dispatch(SelectPoints{Index: 0}); back {
		t.Error("SelectPoints should not leave the overlay")
	}
	if e.PointsWanted() != 25 || !e.FetchPending() {
		t.Error("SelectPoints not applied")
	}
	e.Dispatch(SelectPoints{Index: 9})
	if e.PointsWanted() != 25 {
		t.Error("invalid points index should be ignored")
	}
	e.Dispatch(ToggleLegend{Series: SeriesDEC})
	if !e.Selection().Legend[SeriesDEC] {
		t.Error("ToggleLegend not applied")
	}

	ret, back := e.Dispatch(Back{})
	if !back || ret != 3 {
		t.Errorf("Back = (%d, %v), want (3, true)", ret, back)
	}
	if e.Visible() {
		t.Error("Back should hide the overlay")
	}
}

func TestRefreshThresholds(t *testing.T) {
	th := staticThresholds{KindRMS: testDef}
	e := NewEngine(th)
	e.Show(KindRMS, 1)
	e.OnDataArrived(rmsBuf(1, 0))

	th[KindRMS] = ThresholdDef{GoodMax: 0.2, OkMax: 5}
	e.RefreshThresholds()
	f := e.Frame()
	if !f.Lines[0].Visible || f.Lines[0].Value != 0.2 {
		t.Errorf("good line = %+v, want 0.2", f.Lines[0])
	}
	if f.Lines[2].Visible {
		t.Error("ok line at 5.0 should be out of range")
	}
}

func TestSilentRefreshRacesHide(t *testing.T) {
	e := newTestEngine()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 1000 {
			e.RequestSilentRefresh()
		}
	}()
	for range 1000 {
		e.Show(KindRMS, 1)
		e.Hide()
	}
	wg.Wait()

	if e.FetchPending() {
		t.Error("fetch pending after the final Hide")
	}
}

func TestNilProviderPlacesNoLines(t *testing.T) {
	tests := []struct {
		kind Kind
		buf  *Buffer
	}{
		{KindRMS, rmsBuf(1, 0)},
		{KindHFR, hfrBuf(2.1, 2.4)},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e := NewEngine(nil)
			e.Show(tt.kind, 1)
			if !e.OnDataArrived(tt.buf) {
				t.Fatal("buffer rejected")
			}
			f := e.Frame()
			if n := f.Lines.VisibleCount(); n != 0 {
				t.Errorf("VisibleCount() = %d, want 0", n)
			}
			e.RefreshThresholds()
			f = e.Frame()
			if n := f.Lines.VisibleCount(); n != 0 {
				t.Errorf("after refresh VisibleCount() = %d, want 0", n)
			}
		})
	}
}

func TestRefetchFromRenderedShowsLoading(t *testing.T) {
	e := newTestEngine()
	e.Show(KindRMS, 1)
	e.ClearFetchPending()
	e.OnDataArrived(rmsBuf(1, 0))

	e.SelectPoints(2)
	if e.Mode() != ModeLoading || !e.FetchPending() {
		t.Errorf("after SelectPoints mode = %v pending = %v, want loading and pending", e.Mode(), e.FetchPending())
	}
}
