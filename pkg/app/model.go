package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/components"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/theme"
)

// DefaultTickInterval is how often the poller runs.
const DefaultTickInterval = 250 * time.Millisecond

// Page is one dashboard page. Context is the value handed to the overlay as
// its return context; pages are numbered from 1.
type Page struct {
	Name    string
	Context graph.ReturnContext
}

// Exporter writes a frame to an image file and returns its path.
type Exporter func(graph.Frame) (string, error)

// pageTrend keeps the newest buffers delivered for a page.
type pageTrend struct {
	rms     *graph.Buffer
	hfr     *graph.Buffer
	lastErr error
	at      time.Time
}

// Model is the root bubbletea model. It shows the instance pages and hosts
// the graph overlay on top of them.
type Model struct {
	pages   []Page
	current int

	engine  *graph.Engine
	overlay Widget
	poller  *Poller

	trends   map[graph.ReturnContext]*pageTrend
	exporter Exporter
	status   string

	width, height int
	tick          time.Duration
	logger        *slog.Logger
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger used by the model.
func WithLogger(l *slog.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithExporter enables the overlay's export key.
func WithExporter(e Exporter) ModelOption {
	return func(m *Model) { m.exporter = e }
}

// WithTickInterval overrides DefaultTickInterval.
func WithTickInterval(d time.Duration) ModelOption {
	return func(m *Model) {
		if d > 0 {
			m.tick = d
		}
	}
}

// NewModel creates the root model. overlay must render engine.
func NewModel(engine *graph.Engine, overlay Widget, poller *Poller, pages []Page, opts ...ModelOption) Model {
	m := Model{
		pages:   pages,
		engine:  engine,
		overlay: overlay,
		poller:  poller,
		trends:  make(map[graph.ReturnContext]*pageTrend, len(pages)),
		tick:    DefaultTickInterval,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return TickCmd(m.tick)
}

// CurrentPage returns the page shown under the overlay.
func (m Model) CurrentPage() Page {
	if len(m.pages) == 0 {
		return Page{Name: "none", Context: 1}
	}
	return m.pages[m.current]
}

// Width returns the terminal width.
func (m Model) Width() int { return m.width }

// Height returns the terminal height.
func (m Model) Height() int { return m.height }

// Status returns the last status message.
func (m Model) Status() string { return m.status }

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickEvent:
		return m, tea.Batch(TickCmd(m.tick), m.poller.Poll(msg.Time))

	case GraphDataEvent:
		m.handleData(msg)
		return m, nil

	case GraphBackEvent:
		m.FocusPage(msg.Page)
		return m, m.poller.Poll(time.Now())

	case ExportRequestEvent:
		if m.exporter == nil {
			m.status = "export disabled"
			return m, nil
		}
		exporter, frame := m.exporter, msg.Frame
		return m, func() tea.Msg {
			path, err := exporter(frame)
			return ExportDoneEvent{Path: path, Err: err}
		}

	case ReloadEvent:
		if msg.Apply != nil {
			if err := msg.Apply(); err != nil {
				m.logger.Warn("reload rejected", "err", err)
				m.status = "reload failed: " + err.Error()
				return m, nil
			}
		}
		m.engine.RefreshThresholds()
		m.logger.Info("thresholds reloaded")
		m.status = "thresholds reloaded"
		return m, nil

	case ExportDoneEvent:
		if msg.Err != nil {
			m.logger.Error("export failed", "err", msg.Err)
			m.status = "export failed: " + msg.Err.Error()
		} else {
			m.logger.Info("exported graph", "path", msg.Path)
			m.status = "saved " + msg.Path
		}
		return m, nil
	}

	if m.engine.Visible() {
		return m, m.overlay.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.engine.Visible() {
		cmd := m.overlay.HandleKey(key)
		return m, tea.Batch(cmd, m.poller.Poll(time.Now()))
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.CyclePageForward()
	case "shift+tab":
		m.CyclePageBackward()
	case "g":
		return m, m.open(graph.KindRMS)
	case "f":
		return m, m.open(graph.KindHFR)
	}
	return m, nil
}

func (m *Model) open(k graph.Kind) tea.Cmd {
	page := m.CurrentPage()
	m.status = ""
	m.engine.Show(k, page.Context)
	m.logger.Debug("graph opened", "kind", k, "page", page.Context)
	return tea.Batch(m.overlay.Init(), m.poller.Poll(time.Now()))
}

func (m *Model) handleData(ev GraphDataEvent) {
	m.poller.Record(ev)
	if ev.Err != nil {
		m.logger.Warn("fetch failed", "source", ev.Source, "kind", ev.Kind, "err", ev.Err)
		m.trend(ev.Page).lastErr = ev.Err
		return
	}

	t := m.trend(ev.Page)
	t.lastErr = nil
	t.at = ev.Timestamp
	switch ev.Kind {
	case graph.KindRMS:
		t.rms = ev.Buffer
	case graph.KindHFR:
		t.hfr = ev.Buffer
	}

	if ev.Page != m.engine.ReturnContext() {
		m.logger.Debug("dropped data for another page", "page", ev.Page)
		return
	}
	if !m.engine.OnDataArrived(ev.Buffer) {
		m.logger.Debug("dropped stale data", "source", ev.Source, "kind", ev.Kind)
	}
}

func (m *Model) trend(page graph.ReturnContext) *pageTrend {
	t, ok := m.trends[page]
	if !ok {
		t = &pageTrend{}
		m.trends[page] = t
	}
	return t
}

// View renders the overlay when it is open, otherwise the current page.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.engine.Visible() {
		out := m.overlay.View(m.width, m.height)
		if m.status != "" {
			out = strings.TrimRight(out, "\n")
			lines := strings.Split(out, "\n")
			lines[len(lines)-1] = components.Truncate(m.status, m.width)
			out = strings.Join(lines, "\n")
		}
		return out
	}
	return m.pageView()
}

func (m Model) pageView() string {
	th := theme.Current
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Dim))
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Label))

	var tabs []string
	for i, p := range m.pages {
		if i == m.current {
			tabs = append(tabs, accent.Render("["+p.Name+"]"))
		} else {
			tabs = append(tabs, dim.Render(" "+p.Name+" "))
		}
	}

	page := m.CurrentPage()
	lines := []string{strings.Join(tabs, " "), ""}

	if st, ok := m.poller.Health(page.Context); ok && st.RunCount > 0 {
		state := "ok"
		if !st.Healthy {
			state = "failing"
		}
		lines = append(lines, dim.Render(fmt.Sprintf("fetch %s  %d runs  %d errors  last %s",
			state, st.RunCount, st.ErrorCount, st.LastLatency.Round(time.Millisecond))))
	}

	sparkW := max(10, m.width-12)
	t := m.trends[page.Context]
	switch {
	case t == nil:
		lines = append(lines, dim.Render("no graph data yet"))
	default:
		if t.rms != nil && !t.rms.Empty() {
			s := components.NewSparkline(components.SparklineStyle{Color: th.SeriesTotal})
			lines = append(lines, label.Render("RMS Tot ")+s.Render(t.rms.Values(graph.SeriesTotal), sparkW))
		}
		if t.hfr != nil && !t.hfr.Empty() {
			s := components.NewSparkline(components.SparklineStyle{Color: th.SeriesHFR})
			lines = append(lines, label.Render("HFR     ")+s.Render(t.hfr.Values(graph.SeriesHFR), sparkW))
		}
		if t.lastErr != nil {
			lines = append(lines, dim.Render("last fetch failed: "+t.lastErr.Error()))
		} else if !t.at.IsZero() {
			lines = append(lines, dim.Render("updated "+t.at.Format("15:04:05")))
		}
	}

	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}
	help := fmt.Sprintf("%s guiding  %s focus  %s page  %s quit",
		accent.Render("g"), accent.Render("f"), accent.Render("tab"), accent.Render("q"))
	if m.status != "" {
		help = m.status
	}
	lines = append(lines[:m.height-1], components.Truncate(help, m.width))
	return strings.Join(lines, "\n")
}
