// Package collectors defines the fetch side of the graph overlay: the Fetcher
// interface a NINA instance client implements, a registry that maps dashboard
// pages to fetchers, and mock and synthetic fetchers for tests and demos.
// Concrete network clients live in sub-packages (pkg/collectors/nina).
package collectors

import (
	"context"
	"errors"
	"time"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// ErrNoInstance is returned when a dashboard page has no fetcher behind it.
var ErrNoInstance = errors.New("collectors: no instance for page")

// Fetcher supplies sample buffers for the graph overlay.
type Fetcher interface {
	// Name returns a unique identifier for this fetcher, usually the
	// instance name.
	Name() string

	// Fetch returns up to points samples of kind, oldest first. An empty
	// buffer is a valid "no data" answer; errors are reserved for transport
	// and decoding failures.
	Fetch(ctx context.Context, kind graph.Kind, points int) (*graph.Buffer, error)
}

// Seeder is implemented by fetchers that build HFR history from a live event
// stream after seeding it once over REST. ResetSeed makes the next HFR fetch
// seed again.
type Seeder interface {
	ResetSeed()
}

// FetchStatus tracks the runtime state of a single fetcher. The app updates
// this after every fetch.
type FetchStatus struct {
	Name        string
	Healthy     bool
	LastRun     time.Time
	LastError   error
	RunCount    int64
	ErrorCount  int64
	LastLatency time.Duration
}
