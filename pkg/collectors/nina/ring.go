package nina

import (
	"sync"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// Ring keeps the most recent HFR samples. It is safe for concurrent use; the
// socket listener pushes while fetches read.
type Ring struct {
	mu    sync.Mutex
	buf   []graph.HFRSample
	start int
	n     int
}

// NewRing returns a ring holding at most capacity samples.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = graph.MaxPoints
	}
	return &Ring{buf: make([]graph.HFRSample, capacity)}
}

// Push appends s, evicting the oldest sample when full.
func (r *Ring) Push(s graph.HFRSample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.push(s)
}

func (r *Ring) push(s graph.HFRSample) {
	c := len(r.buf)
	if r.n < c {
		r.buf[(r.start+r.n)%c] = s
		r.n++
		return
	}
	r.buf[r.start] = s
	r.start = (r.start + 1) % c
}

// Replace discards the contents and loads samples, oldest first. Only the
// newest samples that fit are kept.
func (r *Ring) Replace(samples []graph.HFRSample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start, r.n = 0, 0
	if len(samples) > len(r.buf) {
		samples = samples[len(samples)-len(r.buf):]
	}
	for _, s := range samples {
		r.push(s)
	}
}

// Last returns up to n of the newest samples, oldest first.
func (r *Ring) Last(n int) []graph.HFRSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > r.n {
		n = r.n
	}
	if n <= 0 {
		return nil
	}
	out := make([]graph.HFRSample, n)
	c := len(r.buf)
	first := r.start + r.n - n
	for i := range out {
		out[i] = r.buf[(first+i)%c]
	}
	return out
}

// Len returns the number of stored samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}
