package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/app"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/components"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/config"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/theme"
)

// Rows taken by everything except the chart: title, summary, thresholds,
// legend, controls and help.
const overlayChromeRows = 6

// GraphOverlay draws the RMS/HFR history overlay for the engine it wraps and
// turns keys into engine events.
type GraphOverlay struct {
	engine  *graph.Engine
	cfg     *config.Config
	theme   theme.Theme
	spinner spinner.Model
}

// NewGraphOverlay creates the overlay for engine. cfg supplies thresholds,
// instance names and colour brightness.
func NewGraphOverlay(engine *graph.Engine, cfg *config.Config, th theme.Theme) *GraphOverlay {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent))
	return &GraphOverlay{engine: engine, cfg: cfg, theme: th, spinner: sp}
}

// ID returns the unique identifier for this widget.
func (w *GraphOverlay) ID() string { return "graph" }

// Title returns the display name for the current kind.
func (w *GraphOverlay) Title() string {
	if w.engine.Kind() == graph.KindHFR {
		return "HFR History"
	}
	return "Guiding RMS"
}

// Init starts the loading spinner.
func (w *GraphOverlay) Init() tea.Cmd {
	return w.spinner.Tick
}

// Update advances the spinner while data is loading.
func (w *GraphOverlay) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	if w.engine.Mode() != graph.ModeLoading {
		return nil
	}
	var cmd tea.Cmd
	w.spinner, cmd = w.spinner.Update(msg)
	return cmd
}

// HandleKey dispatches overlay keys to the engine. Back and export are
// reported to the host as events. A key that starts a refetch restarts the
// spinner.
func (w *GraphOverlay) HandleKey(key tea.KeyMsg) tea.Cmd {
	k := key.String()
	if k == "e" {
		if w.engine.Mode() != graph.ModeRendered {
			return nil
		}
		frame := w.engine.Frame()
		return func() tea.Msg { return app.ExportRequestEvent{Frame: frame} }
	}

	ev, ok := KeyEvent(k, w.engine.Selection())
	if !ok {
		return nil
	}
	before := w.engine.Mode()
	if page, back := w.engine.Dispatch(ev); back {
		return func() tea.Msg { return app.GraphBackEvent{Page: page} }
	}
	if before != graph.ModeLoading && w.engine.Mode() == graph.ModeLoading {
		return w.spinner.Tick
	}
	return nil
}

// View renders the overlay into the given area.
func (w *GraphOverlay) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	f := w.engine.Frame()
	chartH := max(2, height-overlayChromeRows)

	lines := []string{w.titleLine(f), w.summaryLine(f)}
	switch f.Mode {
	case graph.ModeLoading:
		lines = append(lines, centerMessage(w.spinner.View()+" Loading...", width, chartH)...)
	case graph.ModeNoData:
		lines = append(lines, centerMessage(w.style(w.theme.Dim).Render("No data"), width, chartH)...)
	case graph.ModeRendered:
		lines = append(lines, strings.Split(w.chart(f).Render(width, chartH), "\n")...)
	default:
		lines = append(lines, make([]string, chartH)...)
	}
	lines = append(lines,
		w.thresholdLine(f),
		w.legendLine(f),
		w.controlsLine(f),
		w.helpLine(),
	)
	return fitLines(lines, width, height)
}

func (w *GraphOverlay) style(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// bright applies the configured brightness to a 0xRRGGBB colour.
func (w *GraphOverlay) bright(c uint32) string {
	return theme.Hex(theme.ApplyBrightness(c, w.cfg.General.ColorBrightness))
}

func (w *GraphOverlay) titleLine(f graph.Frame) string {
	name := w.cfg.InstanceName(w.engine.ReturnContext())
	title := w.style(w.theme.Title).Bold(true).Render(w.Title())
	info := "  " + name
	if f.Mode != graph.ModeRendered {
		info += "  " + f.Mode.String()
	}
	return title + w.style(w.theme.Dim).Render(info)
}

func (w *GraphOverlay) summaryLine(f graph.Frame) string {
	if f.Mode != graph.ModeRendered || f.Buffer == nil {
		return ""
	}
	ctx := w.engine.ReturnContext()
	graded := func(v float64, format string) string {
		return w.style(w.bright(w.cfg.Grade(ctx, f.Kind, v))).Render(fmt.Sprintf(format, v))
	}
	if f.Kind == graph.KindHFR {
		return "Avg:" + graded(f.Buffer.AverageHFR(), "%.2f") +
			fmt.Sprintf("  (%d imgs)", f.Buffer.Len())
	}
	s := f.Buffer.Summary
	return "RA:" + graded(s.RA, `%.2f"`) +
		" DEC:" + graded(s.Dec, `%.2f"`) +
		" Tot:" + graded(s.Total, `%.2f"`)
}

func (w *GraphOverlay) chart(f graph.Frame) *components.LineChart {
	var guides []components.Guide
	for _, l := range f.Lines {
		if l.Visible {
			guides = append(guides, components.Guide{Frac: l.Frac, Color: w.bright(l.Color)})
		}
	}
	lc := components.NewLineChart(components.LineChartConfig{
		Min:        float64(f.Range.Min) / 100,
		Max:        float64(f.Range.Max) / 100,
		Labels:     f.Labels,
		LabelColor: w.theme.Label,
		Guides:     guides,
	})
	for _, s := range graph.LegendSeries(f.Kind) {
		lc.AddSeries(components.ChartSeries{
			Name:   s.String(),
			Color:  theme.Dim(w.theme.SeriesColor(s), w.cfg.General.ColorBrightness),
			Values: f.Buffer.Values(s),
			Hidden: !f.Visible.Shown(s),
		})
	}
	return lc
}

func (w *GraphOverlay) thresholdLine(f graph.Frame) string {
	t := w.cfg.InstanceThresholds(w.engine.ReturnContext(), f.Kind)
	unit := ""
	if f.Kind == graph.KindRMS {
		unit = `"`
	}
	good := w.style(w.bright(uint32(t.GoodColor))).Render(fmt.Sprintf("good <= %.2f%s", t.GoodMax, unit))
	ok := w.style(w.bright(uint32(t.OkColor))).Render(fmt.Sprintf("ok <= %.2f%s", t.OkMax, unit))
	bad := w.style(w.bright(uint32(t.BadColor))).Render(fmt.Sprintf("bad > %.2f%s", t.OkMax, unit))
	return good + "  " + ok + "  " + bad
}

func (w *GraphOverlay) legendLine(f graph.Frame) string {
	if !f.LegendShown() {
		return ""
	}
	var pills []string
	for _, s := range graph.LegendSeries(f.Kind) {
		label := fmt.Sprintf("[%s] %s", legendKey(s), s)
		pill := lipgloss.NewStyle().Padding(0, 1)
		if f.Visible.Shown(s) {
			color := theme.Dim(w.theme.SeriesColor(s), w.cfg.General.ColorBrightness)
			pill = pill.Background(lipgloss.Color(color)).Foreground(lipgloss.Color(w.theme.Background))
		} else {
			pill = pill.Foreground(lipgloss.Color(ColorDim)).Strikethrough(true)
		}
		pills = append(pills, pill.Render(label))
	}
	return strings.Join(pills, " ")
}

func (w *GraphOverlay) controlsLine(f graph.Frame) string {
	active := w.style(w.theme.Accent).Bold(true)
	dim := w.style(w.theme.Dim)
	pick := func(label string, on bool) string {
		if on {
			return active.Render("[" + label + "]")
		}
		return dim.Render(" " + label + " ")
	}

	var b strings.Builder
	b.WriteString("Pts:")
	for i, n := range graph.PointOptions {
		b.WriteString(pick(fmt.Sprint(n), i == f.Selection.PointsIndex))
	}
	b.WriteString("  Scale:")
	for i, o := range graph.ScaleOptions(f.Kind).Options() {
		b.WriteString(pick(o.Label, i == f.Selection.ScaleIndex))
	}
	return b.String()
}

func (w *GraphOverlay) helpLine() string {
	key := w.style(w.theme.HelpKey)
	desc := w.style(w.theme.HelpDesc)
	items := []struct{ k, d string }{
		{"1-5", "depth"},
		{"a", "auto"},
		{"s/S", "scale"},
		{"r d t h", "legend"},
		{"e", "export"},
		{"esc", "back"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = key.Render(it.k) + " " + desc.Render(it.d)
	}
	return strings.Join(parts, "  ")
}

// compile-time check that GraphOverlay implements app.Widget.
var _ app.Widget = (*GraphOverlay)(nil)
