package graph

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Mode is what the overlay is currently displaying.
type Mode int

const (
	ModeIdle Mode = iota
	ModeLoading
	ModeRendered
	ModeNoData
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeLoading:
		return "loading"
	case ModeRendered:
		return "rendered"
	case ModeNoData:
		return "no data"
	default:
		return "unknown"
	}
}

// Frame is everything a render driver needs for one draw.
type Frame struct {
	Mode      Mode
	Kind      Kind
	Range     Range
	Labels    AxisLabels
	Lines     Overlay
	Visible   Visibility
	Selection Selection
	Buffer    *Buffer
}

// LegendShown reports whether the legend should be drawn.
func (f Frame) LegendShown() bool {
	return f.Mode == ModeRendered
}

// Engine owns the overlay state. All methods except the fetch-flag accessors
// must be called from the UI update goroutine.
type Engine struct {
	// visMu orders visibility changes against RequestSilentRefresh so a
	// refresh cannot set pending after Hide has cleared it.
	visMu   sync.Mutex
	visible bool
	pending atomic.Bool

	mode     Mode
	sel      Selection
	buf      *Buffer
	rng      Range
	labels   AxisLabels
	lines    Overlay
	ret      ReturnContext
	provider ThresholdProvider
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an idle engine. provider may be nil, in which case no
// threshold lines are placed.
func NewEngine(provider ThresholdProvider, opts ...Option) *Engine {
	e := &Engine{
		sel:      NewSelection(KindRMS),
		provider: provider,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Show opens the overlay for kind k, remembering ret as the page to return
// to. The scale and legend reset to the kind's defaults, the history depth
// is kept, any cached data is dropped and a fetch is requested.
func (e *Engine) Show(k Kind, ret ReturnContext) {
	if !k.Valid() {
		k = KindRMS
	}
	e.sel.SetKind(k)
	e.ret = ret
	e.buf = nil
	e.rng = Range{}
	e.labels = AxisLabels{}
	e.lines.Hide()
	e.mode = ModeLoading
	e.setVisible(true)
	e.logger.Debug("graph overlay shown", "kind", k, "return", int(ret), "points", e.sel.PointsWanted())
}

// Hide closes the overlay. Selections are kept.
func (e *Engine) Hide() {
	e.mode = ModeIdle
	e.setVisible(false)
	e.logger.Debug("graph overlay hidden")
}

// setVisible flips visibility and the fetch flag together.
func (e *Engine) setVisible(v bool) {
	e.visMu.Lock()
	e.visible = v
	e.pending.Store(v)
	e.visMu.Unlock()
}

// Visible reports whether the overlay is open.
func (e *Engine) Visible() bool { return e.mode != ModeIdle }

// Mode returns the display mode.
func (e *Engine) Mode() Mode { return e.mode }

// FetchPending reports whether a fetch has been requested. Safe for
// concurrent use.
func (e *Engine) FetchPending() bool { return e.pending.Load() }

// ClearFetchPending clears the fetch flag and reports whether it was set.
// The caller that gets true owns the fetch. Safe for concurrent use.
func (e *Engine) ClearFetchPending() bool { return e.pending.Swap(false) }

// RequestSilentRefresh asks for a fetch without changing what is displayed.
// Ignored while the overlay is hidden. Safe for concurrent use.
func (e *Engine) RequestSilentRefresh() {
	e.visMu.Lock()
	defer e.visMu.Unlock()
	if e.visible {
		e.pending.Store(true)
	}
}

// Kind returns the selected kind.
func (e *Engine) Kind() Kind { return e.sel.Kind }

// PointsWanted returns the history depth the next fetch should request.
func (e *Engine) PointsWanted() int { return e.sel.PointsWanted() }

// ReturnContext returns the page the overlay was opened from.
func (e *Engine) ReturnContext() ReturnContext { return e.ret }

// Selection returns a copy of the current selection.
func (e *Engine) Selection() Selection { return e.sel }

// SelectPoints changes the history depth and requests a fetch.
func (e *Engine) SelectPoints(i int) bool {
	if !e.sel.SelectPoints(i) {
		return false
	}
	e.requestFetch()
	return true
}

// SelectScale changes the Y scale. Auto requests a fetch; a fixed scale is
// applied to the cached data straight away.
func (e *Engine) SelectScale(i int) bool {
	if !e.sel.SelectScale(i) {
		return false
	}
	if e.sel.AutoScale() {
		e.requestFetch()
		return true
	}
	if e.mode == ModeRendered && !e.buf.Empty() {
		e.recompute()
	}
	return true
}

// ToggleLegend flips one series' visibility. No fetch, no range change.
func (e *Engine) ToggleLegend(s Series) bool {
	return e.sel.ToggleLegend(s)
}

// Dispatch applies ev. For Back it closes the overlay and returns the page
// to go back to with true.
func (e *Engine) Dispatch(ev Event) (ReturnContext, bool) {
	switch ev := ev.(type) {
	case SelectPoints:
		e.SelectPoints(ev.Index)
	case SelectScale:
		e.SelectScale(ev.Index)
	case ToggleLegend:
		e.ToggleLegend(ev.Series)
	case Back:
		e.Hide()
		return e.ret, true
	}
	return 0, false
}

// OnDataArrived installs a fetched buffer. Deliveries while hidden, or for a
// kind other than the selected one, are stale and dropped; the return value
// says whether buf was accepted. A nil buffer is treated as no data.
func (e *Engine) OnDataArrived(buf *Buffer) bool {
	if e.mode == ModeIdle {
		e.logger.Debug("graph data dropped: overlay hidden")
		return false
	}
	if buf == nil {
		buf = EmptyBuffer(e.sel.Kind)
	}
	if buf.Kind != e.sel.Kind {
		e.logger.Debug("graph data dropped: kind mismatch", "got", buf.Kind, "want", e.sel.Kind)
		return false
	}
	e.pending.Store(false)
	e.buf = buf
	if buf.Empty() {
		e.mode = ModeNoData
		e.rng = Range{}
		e.labels = AxisLabels{}
		e.lines.Hide()
		return true
	}
	e.mode = ModeRendered
	e.recompute()
	return true
}

// RefreshThresholds re-reads the threshold definitions and places the lines
// again for the current range.
func (e *Engine) RefreshThresholds() {
	if e.mode != ModeRendered {
		return
	}
	e.placeLines()
}

// Frame returns a snapshot for the render driver.
func (e *Engine) Frame() Frame {
	f := Frame{
		Mode:      e.mode,
		Kind:      e.sel.Kind,
		Selection: e.sel,
		Buffer:    e.buf,
	}
	if e.mode == ModeRendered {
		f.Range = e.rng
		f.Labels = e.labels
		f.Lines = e.lines
		f.Visible = SeriesVisibility(e.sel.Kind, e.sel.Legend)
	}
	return f
}

func (e *Engine) requestFetch() {
	if e.mode == ModeIdle {
		return
	}
	e.mode = ModeLoading
	e.pending.Store(true)
}

func (e *Engine) recompute() {
	e.rng = Resolve(e.buf, e.sel)
	e.labels = Labels(e.rng, e.sel.Kind)
	e.placeLines()
	e.logger.Debug("graph range resolved", "kind", e.sel.Kind, "min", e.rng.Min, "max", e.rng.Max, "points", e.buf.Len())
}

func (e *Engine) placeLines() {
	if e.provider == nil {
		e.lines.Hide()
		return
	}
	e.lines.Place(e.rng, e.sel.Kind, e.provider.Thresholds(e.ret, e.sel.Kind))
}
