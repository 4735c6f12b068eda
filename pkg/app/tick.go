package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/collectors"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// DefaultFetchTimeout bounds a single fetch issued by FetchCmd.
const DefaultFetchTimeout = 15 * time.Second

// TickCmd returns a bubbletea Cmd that sends a TickEvent after the given
// duration. This drives the refresh poller.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// FetchCmd returns a Cmd that runs f.Fetch in a goroutine and delivers the
// result as a GraphDataEvent tagged with page and kind.
func FetchCmd(ctx context.Context, f collectors.Fetcher, page graph.ReturnContext, kind graph.Kind, points int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, DefaultFetchTimeout)
		defer cancel()

		start := time.Now()
		buf, err := f.Fetch(ctx, kind, points)
		return GraphDataEvent{
			Page:      page,
			Kind:      kind,
			Source:    f.Name(),
			Buffer:    buf,
			Err:       err,
			Latency:   time.Since(start),
			Timestamp: time.Now(),
		}
	}
}
