// Package app provides the bubbletea skeleton of the nina-pulse dashboard:
// the event types, the root model that hosts the graph overlay, the widget
// interface the overlay implements, and the refresh poller that turns the
// engine's fetch-pending flag into fetch commands.
//
// This package is designed against bubbletea v1.3.x.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// GraphDataEvent carries a fetch result from a collector goroutine back into
// the bubbletea update loop.
type GraphDataEvent struct {
	Page      graph.ReturnContext // page the fetch was issued for
	Kind      graph.Kind
	Source    string // fetcher name
	Buffer    *graph.Buffer
	Err       error // non-nil if the fetch failed
	Latency   time.Duration
	Timestamp time.Time
}

// TickEvent is sent periodically by the render ticker to drive the refresh
// poller.
type TickEvent struct {
	Time time.Time
}

// GraphBackEvent is emitted when the overlay closes. Page is the dashboard
// page that opened it.
type GraphBackEvent struct {
	Page graph.ReturnContext
}

// ExportRequestEvent asks the host to write Frame to an image file.
type ExportRequestEvent struct {
	Frame graph.Frame
}

// ExportDoneEvent reports the outcome of an export.
type ExportDoneEvent struct {
	Path string
	Err  error
}

// ReloadEvent asks the model to install reloaded settings. Apply runs on the
// update goroutine; on success the overlay's threshold lines are placed
// again.
type ReloadEvent struct {
	Apply func() error
}
