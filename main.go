// nina-pulse is a terminal dashboard for N.I.N.A. imaging sessions.
//
// It pages through up to three NINA instances and opens a graph overlay with
// the guiding RMS history (RA, DEC, total) or the HFR history of recent
// frames, with selectable history depth, Y scale, series legend and
// threshold guide lines.
//
// Usage:
//
//	nina-pulse [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: ~/.config/nina-pulse/config.toml)
//	-instance int     Instance page for one-shot output (default: 1)
//	-kind string      Graph for one-shot output: rms|hfr (default: rms)
//	-points int       History depth option 1-5 for one-shot output (default: 2)
//	-png string       Write the graph to a PNG file instead of the terminal
//	-use-mocks        Use synthetic data instead of NINA instances
//	-mock-seed int    Random seed for synthetic data (0 = time based)
//	-verbose          Enable verbose logging
//	-version          Print version and exit
//	-write-config string  Write the effective configuration as TOML and exit
//
// Sending SIGHUP re-reads the configuration file and applies its threshold
// tables to the running dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/app"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/collectors"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/collectors/nina"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/components"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/config"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/export"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/theme"
	"gitlab.com/tinyland/lab/nina-pulse/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to configuration file")
		instance   = flag.Int("instance", 1, "Instance page for one-shot output (1-3)")
		kindName   = flag.String("kind", "rms", "Graph for one-shot output (rms|hfr)")
		pointsOpt  = flag.Int("points", graph.DefaultPointsIndex+1, "History depth option for one-shot output (1-5)")
		pngPath    = flag.String("png", "", "Write the graph to a PNG file instead of the terminal")
		useMocks   = flag.Bool("use-mocks", false, "Use synthetic data instead of NINA instances")
		mockSeed   = flag.Int64("mock-seed", 0, "Random seed for synthetic data (0 = time based)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		showVer    = flag.Bool("version", false, "Print version and exit")
		writeCfg   = flag.String("write-config", "", "Write the effective configuration as TOML to this path and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Printf("nina-pulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	if *writeCfg != "" {
		if err := config.Save(cfg, *writeCfg); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", *writeCfg)
		os.Exit(0)
	}

	kind, err := parseKind(*kindName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	interactive := *pngPath == "" && isatty.IsTerminal(os.Stdout.Fd())

	// While the TUI owns the terminal, logs go to the log file only.
	var logWriters []io.Writer
	if !interactive {
		logWriters = append(logWriters, os.Stderr)
	}
	if cfg.General.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
			os.Exit(1)
		}
		logFile, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		logWriters = append(logWriters, logFile)
	}
	logger := slog.New(slog.NewTextHandler(io.MultiWriter(logWriters...), &slog.HandlerOptions{
		Level: logLevel(cfg.General.LogLevel, *verbose),
	}))

	th, err := selectTheme(cfg.General.Theme)
	if err != nil {
		logger.Warn("theme not loaded, using default", "theme", cfg.General.Theme, "error", err)
	}
	th = theme.Adapt(th, colorDepth())
	theme.Current = th

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	reg, clients, err := buildRegistry(cfg, *useMocks, *mockSeed, logger)
	if err != nil {
		logger.Error("fetcher setup failed", "error", err)
		os.Exit(1)
	}
	logger.Debug("fetchers registered", "pages", reg.List())

	engine := graph.NewEngine(cfg, graph.WithLogger(logger.With("component", "graph")))

	if !interactive {
		err := runOnce(ctx, engine, reg, cfg, th, oneShot{
			page:   graph.ReturnContext(*instance),
			kind:   kind,
			points: *pointsOpt - 1,
			png:    *pngPath,
		})
		if err != nil {
			logger.Error("one-shot failed", "error", err)
			os.Exit(1)
		}
		return
	}

	for _, c := range clients {
		go func() {
			if err := c.Listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("event socket stopped", "instance", c.Name(), "error", err)
			}
		}()
	}

	pages := make([]app.Page, 0, len(cfg.Instances))
	for i, inst := range cfg.Instances {
		pages = append(pages, app.Page{Name: inst.Name, Context: graph.ReturnContext(i + 1)})
	}
	poller := app.NewPoller(ctx, engine, reg, cfg.General.GraphRefreshInterval.Duration, logger.With("component", "poller"))
	overlay := widgets.NewGraphOverlay(engine, cfg, th)
	model := app.NewModel(engine, overlay, poller, pages,
		app.WithLogger(logger),
		app.WithExporter(func(f graph.Frame) (string, error) {
			dir, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return export.WriteFile(dir, f, export.Options{
				Theme:      th,
				Brightness: cfg.General.ColorBrightness,
			}, time.Now())
		}),
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, syscall.SIGHUP)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hupChan:
				next, err := loadConfig(*configPath)
				if err == nil {
					err = next.Validate()
				}
				if err != nil {
					logger.Warn("config reload failed", "error", err)
					continue
				}
				p.Send(app.ReloadEvent{Apply: func() error { return cfg.ApplyThresholds(next) }})
			}
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("TUI error", "error", err)
		os.Exit(1)
	}
}

// listener is a fetcher with a live event stream.
type listener interface {
	Name() string
	Listen(ctx context.Context) error
}

// buildRegistry registers one fetcher per configured instance, in page order.
func buildRegistry(cfg *config.Config, useMocks bool, seed int64, logger *slog.Logger) (*collectors.Registry, []listener, error) {
	reg := collectors.NewRegistry()
	var clients []listener

	if useMocks && seed == 0 {
		seed = time.Now().UnixNano()
	}
	for i, inst := range cfg.Instances {
		var f collectors.Fetcher
		if useMocks {
			logger.Info("using synthetic data", "instance", inst.Name, "seed", seed+int64(i))
			f = collectors.NewSynthetic(inst.Name, seed+int64(i))
		} else {
			c, err := nina.New(inst.Name, inst.URL, nina.WithLogger(logger.With("instance", inst.Name)))
			if err != nil {
				return nil, nil, err
			}
			clients = append(clients, c)
			f = c
		}
		if err := reg.Register(f); err != nil {
			return nil, nil, err
		}
	}
	return reg, clients, nil
}

type oneShot struct {
	page   graph.ReturnContext
	kind   graph.Kind
	points int
	png    string
}

// runOnce fetches one buffer and prints the overlay as text, or writes it as
// a PNG.
func runOnce(ctx context.Context, engine *graph.Engine, reg *collectors.Registry, cfg *config.Config, th theme.Theme, o oneShot) error {
	f, err := reg.ForPage(o.page)
	if err != nil {
		return err
	}
	engine.Show(o.kind, o.page)
	if !engine.SelectPoints(o.points) {
		return fmt.Errorf("points option %d out of range 1-%d", o.points+1, len(graph.PointOptions))
	}
	engine.ClearFetchPending()

	fetchCtx, cancel := context.WithTimeout(ctx, app.DefaultFetchTimeout)
	defer cancel()
	buf, err := f.Fetch(fetchCtx, engine.Kind(), engine.PointsWanted())
	if err != nil {
		return fmt.Errorf("fetch %s: %w", f.Name(), err)
	}
	engine.OnDataArrived(buf)

	if o.png != "" {
		out, err := os.Create(o.png)
		if err != nil {
			return err
		}
		if err := export.WritePNG(out, engine.Frame(), export.Options{Theme: th, Brightness: cfg.General.ColorBrightness}); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	}

	overlay := widgets.NewGraphOverlay(engine, cfg, th)
	fmt.Println(components.Strip(overlay.View(100, 24)))
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

func parseKind(s string) (graph.Kind, error) {
	switch strings.ToLower(s) {
	case "rms", "guiding":
		return graph.KindRMS, nil
	case "hfr":
		return graph.KindHFR, nil
	}
	return 0, fmt.Errorf("unknown kind %q (supported: rms, hfr)", s)
}

func logLevel(name string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// selectTheme resolves a theme name, or loads a theme file when the name
// ends in .toml.
func selectTheme(name string) (theme.Theme, error) {
	if strings.HasSuffix(name, ".toml") {
		th, err := theme.LoadFile(name)
		if err != nil {
			return theme.Get("default"), err
		}
		return th, nil
	}
	return theme.Get(name), nil
}

func colorDepth() int {
	switch termenv.EnvColorProfile() {
	case termenv.TrueColor:
		return 24
	case termenv.ANSI256:
		return 8
	default:
		return 4
	}
}
