package app

import "gitlab.com/tinyland/lab/nina-pulse/pkg/graph"

// CyclePageForward moves to the next dashboard page, wrapping around to the
// first page after the last.
func (m *Model) CyclePageForward() {
	if len(m.pages) == 0 {
		return
	}
	m.current = (m.current + 1) % len(m.pages)
}

// CyclePageBackward moves to the previous dashboard page, wrapping around to
// the last page before the first.
func (m *Model) CyclePageBackward() {
	if len(m.pages) == 0 {
		return
	}
	m.current = (m.current - 1 + len(m.pages)) % len(m.pages)
}

// FocusPage makes the page with the given context current. Unknown contexts
// leave the current page unchanged.
func (m *Model) FocusPage(ctx graph.ReturnContext) {
	for i, p := range m.pages {
		if p.Context == ctx {
			m.current = i
			return
		}
	}
}
