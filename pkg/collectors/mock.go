package collectors

import (
	"context"
	"sync"
	"sync/atomic"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// MockFetcher implements Fetcher and Seeder for testing. It tracks how many
// times Fetch and ResetSeed have been called.
type MockFetcher struct {
	name string

	mu      sync.RWMutex
	buffers map[graph.Kind]*graph.Buffer
	err     error

	callCount  atomic.Int64
	resetCount atomic.Int64
	lastPoints atomic.Int64

	// FetchFunc, if set, overrides the default Fetch behavior.
	FetchFunc func(ctx context.Context, kind graph.Kind, points int) (*graph.Buffer, error)
}

// MockFetcherOption configures a MockFetcher.
type MockFetcherOption func(*MockFetcher)

// WithBuffer sets the buffer returned for buf.Kind.
func WithBuffer(buf *graph.Buffer) MockFetcherOption {
	return func(m *MockFetcher) { m.buffers[buf.Kind] = buf }
}

// WithError sets the error returned by Fetch.
func WithError(err error) MockFetcherOption {
	return func(m *MockFetcher) { m.err = err }
}

// WithFetchFunc sets a custom function for Fetch.
func WithFetchFunc(fn func(ctx context.Context, kind graph.Kind, points int) (*graph.Buffer, error)) MockFetcherOption {
	return func(m *MockFetcher) { m.FetchFunc = fn }
}

// NewMockFetcher creates a mock fetcher with the given name and options.
func NewMockFetcher(name string, opts ...MockFetcherOption) *MockFetcher {
	m := &MockFetcher{
		name:    name,
		buffers: make(map[graph.Kind]*graph.Buffer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the fetcher name.
func (m *MockFetcher) Name() string { return m.name }

// SetBuffer updates the buffer returned for buf.Kind (thread-safe).
func (m *MockFetcher) SetBuffer(buf *graph.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buffers[buf.Kind] = buf
}

// SetError updates the returned error (thread-safe).
func (m *MockFetcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Fetch returns the configured buffer for kind, an empty buffer if none is
// set, or the configured error.
func (m *MockFetcher) Fetch(ctx context.Context, kind graph.Kind, points int) (*graph.Buffer, error) {
	m.callCount.Add(1)
	m.lastPoints.Store(int64(points))

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, kind, points)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if buf, ok := m.buffers[kind]; ok {
		return buf, nil
	}
	return graph.EmptyBuffer(kind), nil
}

// ResetSeed implements Seeder.
func (m *MockFetcher) ResetSeed() { m.resetCount.Add(1) }

// CallCount returns how many times Fetch has been called.
func (m *MockFetcher) CallCount() int64 { return m.callCount.Load() }

// ResetCount returns how many times ResetSeed has been called.
func (m *MockFetcher) ResetCount() int64 { return m.resetCount.Load() }

// LastPoints returns the points argument of the latest Fetch.
func (m *MockFetcher) LastPoints() int { return int(m.lastPoints.Load()) }
