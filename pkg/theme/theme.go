// Package theme holds the colour palettes of the dashboard and the graph
// overlay.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme defines the complete color palette for the dashboard.
type Theme struct {
	Name string

	// Base colors
	Background string // hex color e.g. "#1a1b26"
	Foreground string // hex color
	Dim        string // dimmed text
	Accent     string // highlights, selected pills

	// Chrome
	Border string // overlay border
	Title  string // overlay title text
	Label  string // axis labels
	Grid   string // axis guide rows

	// Series colors
	SeriesRA    string
	SeriesDEC   string
	SeriesTotal string
	SeriesHFR   string

	// Help bar
	HelpKey  string // keybinding highlight color
	HelpDesc string // help description color
}

// Current holds the active theme (set via SetCurrent).
var Current Theme

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
	Current = thDefaultTheme()
}

// Get returns a named theme, falling back to Default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetCurrent sets the active theme by name.
func SetCurrent(name string) {
	Current = Get(name)
}

// Register adds a user theme, replacing any theme with the same name.
func Register(t Theme) error {
	if err := thValidateTheme(t); err != nil {
		return err
	}
	thRegister(t)
	return nil
}

// thRegister adds a theme to the registry under its lowercase name.
func thRegister(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
