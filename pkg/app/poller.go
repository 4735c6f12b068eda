package app

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/collectors"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// GraphState is the part of graph.Engine the poller drives.
type GraphState interface {
	Visible() bool
	FetchPending() bool
	ClearFetchPending() bool
	RequestSilentRefresh()
	Kind() graph.Kind
	PointsWanted() int
	ReturnContext() graph.ReturnContext
}

// FetcherSource resolves dashboard pages to fetchers. collectors.Registry
// implements it.
type FetcherSource interface {
	ForPage(page graph.ReturnContext) (collectors.Fetcher, error)
	ResetSeeds()
	Record(name string, err error, latency time.Duration)
	Status(name string) (collectors.FetchStatus, bool)
}

// Poller turns the engine's fetch-pending flag into fetch commands and
// schedules silent refreshes while the overlay is open.
type Poller struct {
	ctx      context.Context
	state    GraphState
	source   FetcherSource
	interval time.Duration
	logger   *slog.Logger

	lastFetch  time.Time
	inFlight   int
	wasVisible bool
}

// NewPoller creates a poller that refreshes an open overlay every interval.
// A nil logger discards output.
func NewPoller(ctx context.Context, state GraphState, source FetcherSource, interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Poller{
		ctx:      ctx,
		state:    state,
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

// Poll runs one step of the refresh loop at time now. It returns the fetch
// command to run, or nil.
func (p *Poller) Poll(now time.Time) tea.Cmd {
	if !p.state.Visible() {
		if p.wasVisible {
			p.source.ResetSeeds()
			p.wasVisible = false
		}
		return nil
	}
	p.wasVisible = true

	if p.inFlight == 0 && !p.state.FetchPending() && p.interval > 0 && now.Sub(p.lastFetch) >= p.interval {
		p.state.RequestSilentRefresh()
	}
	if !p.state.ClearFetchPending() {
		return nil
	}

	page := p.state.ReturnContext()
	f, err := p.source.ForPage(page)
	if err != nil {
		p.logger.Warn("no fetcher for page", "page", page, "err", err)
		return nil
	}
	p.lastFetch = now
	p.inFlight++
	kind, points := p.state.Kind(), p.state.PointsWanted()
	p.logger.Debug("fetching", "source", f.Name(), "kind", kind, "points", points)
	return FetchCmd(p.ctx, f, page, kind, points)
}

// Record reports a finished fetch to the fetcher source. Silent refreshes
// wait until every issued fetch has been recorded.
func (p *Poller) Record(ev GraphDataEvent) {
	if p.inFlight > 0 {
		p.inFlight--
	}
	p.source.Record(ev.Source, ev.Err, ev.Latency)
}

// InFlight returns the number of issued fetches not recorded yet.
func (p *Poller) InFlight() int { return p.inFlight }

// Health returns the fetch status of the fetcher behind page.
func (p *Poller) Health(page graph.ReturnContext) (collectors.FetchStatus, bool) {
	f, err := p.source.ForPage(page)
	if err != nil {
		return collectors.FetchStatus{}, false
	}
	return p.source.Status(f.Name())
}
