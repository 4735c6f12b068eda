package collectors

import (
	"fmt"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// Registry holds one fetcher per NINA instance in page order. Page 1 is the
// first registered fetcher. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	fetchers map[string]Fetcher
	statuses map[string]*FetchStatus
}

// NewRegistry returns an empty registry ready for fetcher registration.
func NewRegistry() *Registry {
	return &Registry{
		fetchers: make(map[string]Fetcher),
		statuses: make(map[string]*FetchStatus),
	}
}

// Register appends a fetcher as the next page. It returns an error if a
// fetcher with the same name is already registered.
func (r *Registry) Register(f Fetcher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := f.Name()
	if _, exists := r.fetchers[name]; exists {
		return fmt.Errorf("collectors: fetcher %q already registered", name)
	}

	r.order = append(r.order, name)
	r.fetchers[name] = f
	r.statuses[name] = &FetchStatus{
		Name:    name,
		Healthy: true,
	}
	return nil
}

// Get returns the fetcher with the given name, or false if not found.
func (r *Registry) Get(name string) (Fetcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fetchers[name]
	return f, ok
}

// ForPage returns the fetcher behind a dashboard page.
func (r *Registry) ForPage(page graph.ReturnContext) (Fetcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := int(page) - 1
	if i < 0 || i >= len(r.order) {
		return nil, fmt.Errorf("%w %d", ErrNoInstance, page)
	}
	return r.fetchers[r.order[i]], nil
}

// Len returns the number of registered fetchers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// List returns the registered names in page order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Record updates the status of name after a fetch.
func (r *Registry) Record(name string, err error, latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.statuses[name]
	if !ok {
		return
	}
	s.LastRun = time.Now()
	s.LastLatency = latency
	s.RunCount++
	s.LastError = err
	s.Healthy = err == nil
	if err != nil {
		s.ErrorCount++
	}
}

// Status returns a copy of the runtime status for the named fetcher, or
// false if it is not registered.
func (r *Registry) Status(name string) (FetchStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.statuses[name]
	if !ok {
		return FetchStatus{}, false
	}
	return *s, true
}

// ResetSeeds calls ResetSeed on every fetcher that seeds.
func (r *Registry) ResetSeeds() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.fetchers {
		if s, ok := f.(Seeder); ok {
			s.ResetSeed()
		}
	}
}
