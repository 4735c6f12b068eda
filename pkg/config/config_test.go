package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

const sampleTOML = `
[general]
log_level = "debug"
graph_refresh_interval = "5s"
color_brightness = 60
theme = "red night"

[[instances]]
name = "north"
url = "http://north.lan:1888/v2/api/"

[instances.rms_thresholds]
good_max = 0.4
ok_max = 0.9

[[instances]]
name = "south"
url = "http://south.lan:1888/v2/api/"
preset = "relaxed"

[instances.hfr_thresholds]
good_max = 2.2
ok_max = 3.0
good_color = "#00ff00"
ok_color = "#ffff00"
bad_color = "#ff0000"
`

func TestLoadTOML(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.General.GraphRefreshInterval.Duration != 5*time.Second {
		t.Errorf("refresh = %v, want 5s", cfg.General.GraphRefreshInterval)
	}
	if cfg.General.ColorBrightness != 60 || cfg.General.Theme != "red night" {
		t.Errorf("general = %+v", cfg.General)
	}
	if len(cfg.Instances) != 2 {
		t.Fatalf("instances = %d, want 2", len(cfg.Instances))
	}

	rms := cfg.InstanceThresholds(1, graph.KindRMS)
	if rms.GoodMax != 0.4 || rms.OkMax != 0.9 {
		t.Errorf("north rms = %+v", rms)
	}
	if rms.GoodColor != DefaultGoodColor || rms.BadColor != DefaultBadColor {
		t.Errorf("unset colours should default, got %v/%v", rms.GoodColor, rms.BadColor)
	}

	hfr := cfg.Thresholds(2, graph.KindHFR)
	if hfr.GoodMax != 2.2 || hfr.GoodColor != 0x00ff00 {
		t.Errorf("south hfr = %+v", hfr)
	}
	if got := cfg.InstanceThresholds(2, graph.KindRMS); got.GoodMax != 0.8 {
		t.Errorf("south rms should come from the relaxed preset, got %+v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	src := `
general:
  graph_refresh_interval: 20s
  color_brightness: 80
instances:
  - name: scope
    url: http://scope.lan:1888/v2/api/
    hfr_thresholds:
      good_max: 1.5
      ok_max: 2.5
      good_color: "#112233"
`
	cfg, err := LoadFromReader(strings.NewReader(src), FormatYAML)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.General.GraphRefreshInterval.Duration != 20*time.Second {
		t.Errorf("refresh = %v, want 20s", cfg.General.GraphRefreshInterval)
	}
	if cfg.General.Theme != "default" {
		t.Errorf("theme = %q, want default", cfg.General.Theme)
	}
	hfr := cfg.InstanceThresholds(1, graph.KindHFR)
	if hfr.GoodMax != 1.5 || hfr.GoodColor != 0x112233 || hfr.OkColor != DefaultOkColor {
		t.Errorf("hfr = %+v", hfr)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.General.GraphRefreshInterval.Duration != 10*time.Second {
		t.Errorf("missing file should give defaults, got %+v", cfg.General)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	rms := DefaultRMSThresholds()
	rms.GoodMax = 0.3
	cfg.Instances[0].RMSThresholds = &rms
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `good_color = "#15803d"`) {
		t.Errorf("saved config missing hex colour:\n%s", data)
	}
	got, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if got.InstanceThresholds(1, graph.KindRMS).GoodMax != 0.3 {
		t.Errorf("round trip lost rms good_max")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NINA_PULSE_THEME", "midnight")
	t.Setenv("NINA_PULSE_URL", "http://env.lan:1888/v2/api/")
	t.Setenv("NINA_PULSE_BRIGHTNESS", "40")

	cfg, err := LoadFromReader(strings.NewReader(""), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.Theme != "midnight" || cfg.General.ColorBrightness != 40 {
		t.Errorf("general = %+v", cfg.General)
	}
	if cfg.Instances[0].URL != "http://env.lan:1888/v2/api/" {
		t.Errorf("url = %q", cfg.Instances[0].URL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"brightness high", func(c *Config) { c.General.ColorBrightness = 101 }},
		{"brightness negative", func(c *Config) { c.General.ColorBrightness = -1 }},
		{"zero refresh", func(c *Config) { c.General.GraphRefreshInterval = Duration{} }},
		{"too many instances", func(c *Config) {
			for len(c.Instances) <= MaxInstances {
				c.Instances = append(c.Instances, InstanceConfig{URL: "http://x"})
			}
		}},
		{"empty url", func(c *Config) { c.Instances[0].URL = "" }},
		{"unknown preset", func(c *Config) { c.Instances[0].Preset = "lenient" }},
		{"ok below good", func(c *Config) {
			c.Instances[0].HFRThresholds = &Thresholds{GoodMax: 3, OkMax: 2}
		}},
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestGrade(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		kind graph.Kind
		v    float64
		want HexColor
	}{
		{graph.KindRMS, 0.5, DefaultGoodColor},
		{graph.KindRMS, -0.7, DefaultOkColor},
		{graph.KindRMS, 1.01, DefaultBadColor},
		{graph.KindHFR, 2.0, DefaultGoodColor},
		{graph.KindHFR, 3.5, DefaultOkColor},
		{graph.KindHFR, 4.0, DefaultBadColor},
	}
	for _, tt := range tests {
		if got := cfg.Grade(1, tt.kind, tt.v); got != uint32(tt.want) {
			t.Errorf("Grade(%v, %v) = %06x, want %v", tt.kind, tt.v, got, tt.want)
		}
	}
}

func TestThresholdsPageMapping(t *testing.T) {
	cfg := DefaultConfig()
	strict, _ := ThresholdPreset("strict")
	cfg.Instances = append(cfg.Instances, InstanceConfig{URL: "http://b", Preset: "strict"})

	if got := cfg.Thresholds(2, graph.KindRMS); got.GoodMax != strict.GoodMax {
		t.Errorf("page 2 good = %v, want %v", got.GoodMax, strict.GoodMax)
	}
	for _, page := range []graph.ReturnContext{0, 1, 7} {
		if got := cfg.Thresholds(page, graph.KindRMS); got.GoodMax != 0.5 {
			t.Errorf("page %d good = %v, want first instance's 0.5", page, got.GoodMax)
		}
	}
}

func TestHexColorText(t *testing.T) {
	for _, in := range []string{"#CA8A04", "ca8a04", "0xca8a04"} {
		var c HexColor
		if err := c.UnmarshalText([]byte(in)); err != nil {
			t.Errorf("UnmarshalText(%q): %v", in, err)
			continue
		}
		if c != 0xca8a04 {
			t.Errorf("UnmarshalText(%q) = %v", in, c)
		}
	}
	var c HexColor
	for _, bad := range []string{"#fff", "zzzzzz", ""} {
		if err := c.UnmarshalText([]byte(bad)); err == nil {
			t.Errorf("UnmarshalText(%q) should fail", bad)
		}
	}
	if got := HexColor(0x15803d).String(); got != "#15803d" {
		t.Errorf("String() = %q", got)
	}
}

func TestApplyThresholds(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	next, err := LoadFromReader(strings.NewReader(strings.Replace(sampleTOML, "good_max = 0.4", "good_max = 0.6", 1)), FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	next.General.ColorBrightness = 10

	if err := cfg.ApplyThresholds(next); err != nil {
		t.Fatalf("ApplyThresholds: %v", err)
	}
	if got := cfg.Thresholds(1, graph.KindRMS).GoodMax; got != 0.6 {
		t.Errorf("RMS good_max = %v, want 0.6", got)
	}
	if cfg.General.ColorBrightness != 60 {
		t.Errorf("brightness = %d, reload should only touch thresholds", cfg.General.ColorBrightness)
	}

	if err := cfg.ApplyThresholds(DefaultConfig()); err == nil {
		t.Error("ApplyThresholds accepted a different instance count")
	}
}
