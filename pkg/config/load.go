package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder used for a config file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatForPath picks YAML for .yaml/.yml files and TOML otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/nina-pulse/config.toml
//  2. ~/.config/nina-pulse/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := LoadFromReader(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader reads configuration in the given format from an io.Reader.
func LoadFromReader(r io.Reader, format Format) (*Config, error) {
	cfg := DefaultConfig()
	// Instances listed in the file replace the defaults instead of merging
	// with them by position.
	cfg.Instances = nil

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	}
	if len(cfg.Instances) == 0 {
		cfg.Instances = DefaultConfig().Instances
	}
	for i := range cfg.Instances {
		fillThresholdColors(cfg.Instances[i].RMSThresholds)
		fillThresholdColors(cfg.Instances[i].HFRThresholds)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Save writes cfg as TOML.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:             "info",
			GraphRefreshInterval: Duration{10 * time.Second},
			ColorBrightness:      100,
			Theme:                "default",
		},
		Instances: []InstanceConfig{
			{Name: "NINA", URL: "http://localhost:1888/v2/api/"},
		},
	}
}

// fillThresholdColors gives unset band colours their defaults.
func fillThresholdColors(t *Thresholds) {
	if t == nil {
		return
	}
	if t.GoodColor == 0 {
		t.GoodColor = DefaultGoodColor
	}
	if t.OkColor == 0 {
		t.OkColor = DefaultOkColor
	}
	if t.BadColor == 0 {
		t.BadColor = DefaultBadColor
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NINA_PULSE_THEME"); v != "" {
		cfg.General.Theme = v
	}
	if v := os.Getenv("NINA_PULSE_URL"); v != "" {
		if len(cfg.Instances) == 0 {
			cfg.Instances = append(cfg.Instances, InstanceConfig{Name: "NINA"})
		}
		cfg.Instances[0].URL = v
	}
	if v := os.Getenv("NINA_PULSE_BRIGHTNESS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.General.ColorBrightness = n
		}
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "nina-pulse", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "nina-pulse", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
