package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/app"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/config"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/theme"
)

func newTestOverlay() (*GraphOverlay, *graph.Engine) {
	cfg := config.DefaultConfig()
	engine := graph.NewEngine(cfg)
	return NewGraphOverlay(engine, cfg, theme.Get("default")), engine
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyEvent(t *testing.T) {
	rms := graph.NewSelection(graph.KindRMS)
	hfr := graph.NewSelection(graph.KindHFR)
	tests := []struct {
		key  string
		sel  graph.Selection
		want graph.Event
	}{
		{"1", rms, graph.SelectPoints{Index: 0}},
		{"5", rms, graph.SelectPoints{Index: 4}},
		{"a", rms, graph.SelectScale{Index: 0}},
		{"s", rms, graph.SelectScale{Index: 1}},
		{"S", rms, graph.SelectScale{Index: 5}},
		{"S", hfr, graph.SelectScale{Index: 4}},
		{"r", rms, graph.ToggleLegend{Series: graph.SeriesRA}},
		{"d", rms, graph.ToggleLegend{Series: graph.SeriesDEC}},
		{"t", rms, graph.ToggleLegend{Series: graph.SeriesTotal}},
		{"h", hfr, graph.ToggleLegend{Series: graph.SeriesHFR}},
		{"esc", rms, graph.Back{}},
		{"b", rms, graph.Back{}},
	}
	for _, tt := range tests {
		got, ok := KeyEvent(tt.key, tt.sel)
		if !ok || got != tt.want {
			t.Errorf("KeyEvent(%q) = %#v, %v; want %#v", tt.key, got, ok, tt.want)
		}
	}
	if _, ok := KeyEvent("x", rms); ok {
		t.Error("KeyEvent(x) should not map")
	}
}

func TestScaleKeyWraps(t *testing.T) {
	sel := graph.NewSelection(graph.KindHFR)
	sel.SelectScale(4)
	got, _ := KeyEvent("s", sel)
	if got != (graph.SelectScale{Index: 0}) {
		t.Errorf("s from last scale = %#v, want index 0", got)
	}
}

func TestHandleKeyBackEmitsEvent(t *testing.T) {
	w, engine := newTestOverlay()
	engine.Show(graph.KindRMS, 2)

	cmd := w.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command for esc")
	}
	ev, ok := cmd().(app.GraphBackEvent)
	if !ok || ev.Page != 2 {
		t.Errorf("got %#v, want GraphBackEvent{Page: 2}", ev)
	}
	if engine.Visible() {
		t.Error("engine still visible after back")
	}
}

func TestHandleKeyDispatches(t *testing.T) {
	w, engine := newTestOverlay()
	engine.Show(graph.KindRMS, 1)
	engine.ClearFetchPending()

	if cmd := w.HandleKey(runeKey("3")); cmd != nil {
		t.Error("depth key should not emit a command")
	}
	if got := engine.PointsWanted(); got != 100 {
		t.Errorf("PointsWanted = %d, want 100", got)
	}
	if !engine.FetchPending() {
		t.Error("depth change should request a fetch")
	}
}

func TestRefetchRestartsSpinner(t *testing.T) {
	w, engine := newTestOverlay()
	engine.Show(graph.KindRMS, 1)
	engine.ClearFetchPending()
	engine.OnDataArrived(graph.NewRMSBuffer([]graph.RMSSample{{RA: 0.5, Dec: -0.3}}, graph.RMSSummary{}))

	tests := []struct {
		key      string
		wantTick bool
		wantMode graph.Mode
	}{
		{"s", false, graph.ModeRendered},
		{"3", true, graph.ModeLoading},
		{"4", false, graph.ModeLoading},
	}
	for _, tt := range tests {
		cmd := w.HandleKey(runeKey(tt.key))
		if engine.Mode() != tt.wantMode {
			t.Errorf("key %q: mode = %v, want %v", tt.key, engine.Mode(), tt.wantMode)
		}
		if !tt.wantTick {
			if cmd != nil {
				t.Errorf("key %q: unexpected command", tt.key)
			}
			continue
		}
		if cmd == nil {
			t.Fatalf("key %q: spinner not restarted", tt.key)
		}
		if _, ok := cmd().(spinner.TickMsg); !ok {
			t.Errorf("key %q: command did not tick the spinner", tt.key)
		}
	}
}

func TestExportOnlyWhenRendered(t *testing.T) {
	w, engine := newTestOverlay()
	engine.Show(graph.KindHFR, 1)
	if cmd := w.HandleKey(runeKey("e")); cmd != nil {
		t.Error("export while loading should be ignored")
	}

	engine.OnDataArrived(graph.NewHFRBuffer([]graph.HFRSample{{HFR: 2.5, Stars: 100}}))
	cmd := w.HandleKey(runeKey("e"))
	if cmd == nil {
		t.Fatal("expected export command")
	}
	ev, ok := cmd().(app.ExportRequestEvent)
	if !ok || ev.Frame.Kind != graph.KindHFR {
		t.Errorf("got %#v, want HFR ExportRequestEvent", ev)
	}
}

func TestViewModes(t *testing.T) {
	w, engine := newTestOverlay()
	if got := w.View(0, 10); got != "" {
		t.Errorf("View(0, 10) = %q, want empty", got)
	}

	engine.Show(graph.KindRMS, 1)
	if out := w.View(80, 20); !strings.Contains(out, "Loading") {
		t.Errorf("loading view missing spinner text:\n%s", out)
	}

	engine.OnDataArrived(graph.EmptyBuffer(graph.KindRMS))
	if out := w.View(80, 20); !strings.Contains(out, "No data") {
		t.Errorf("no-data view missing message:\n%s", out)
	}
}

func TestViewRenderedRMS(t *testing.T) {
	w, engine := newTestOverlay()
	engine.Show(graph.KindRMS, 1)
	buf := graph.NewRMSBuffer(
		[]graph.RMSSample{{RA: 1.0, Dec: 0.2}, {RA: -0.4, Dec: 0.1}},
		graph.RMSSummary{RA: 0.76, Dec: 0.16, Total: 0.78},
	)
	engine.OnDataArrived(buf)

	out := w.View(80, 20)
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, want := range []string{`RA:0.76"`, `DEC:0.16"`, `Tot:0.78"`, `+1.7"`, `-1.7"`, "[r] RA", "good <= 0.50", "Pts:"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestViewRenderedHFR(t *testing.T) {
	w, engine := newTestOverlay()
	engine.Show(graph.KindHFR, 1)
	engine.OnDataArrived(graph.NewHFRBuffer([]graph.HFRSample{{HFR: 2.0}, {HFR: 3.0}}))

	out := w.View(80, 16)
	if !strings.Contains(out, "Avg:2.50  (2 imgs)") {
		t.Errorf("view missing HFR summary:\n%s", out)
	}
	if strings.Contains(out, "[r] RA") {
		t.Error("HFR legend shows RA")
	}
}
