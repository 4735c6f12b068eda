package app

import tea "github.com/charmbracelet/bubbletea"

// Widget is a full-screen component hosted by the root model. The graph
// overlay is the only implementation; the interface keeps this package free
// of rendering code.
type Widget interface {
	// ID returns a unique identifier.
	ID() string

	// Title returns the display name.
	Title() string

	// Init returns the command to run each time the widget is shown.
	Init() tea.Cmd

	// Update handles messages not consumed by the host.
	Update(msg tea.Msg) tea.Cmd

	// HandleKey processes a key event while the widget is shown.
	HandleKey(key tea.KeyMsg) tea.Cmd

	// View renders the widget into the given area.
	View(width, height int) string
}
