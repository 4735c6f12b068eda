// Package config provides TOML-based configuration for nina-pulse.
package config

import (
	"errors"
	"fmt"
	"math"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

// MaxInstances is the number of NINA instances the dashboard can page through.
const MaxInstances = 3

// Config is the root configuration.
type Config struct {
	General   GeneralConfig    `toml:"general" yaml:"general"`
	Instances []InstanceConfig `toml:"instances" yaml:"instances"`
}

// GeneralConfig holds process-wide settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`

	// GraphRefreshInterval is how often an open graph overlay re-fetches.
	GraphRefreshInterval Duration `toml:"graph_refresh_interval" yaml:"graph_refresh_interval"`

	// ColorBrightness scales every threshold and series colour, 0-100.
	ColorBrightness int    `toml:"color_brightness" yaml:"color_brightness"`
	Theme           string `toml:"theme" yaml:"theme"`
}

// InstanceConfig describes one NINA instance.
type InstanceConfig struct {
	Name string `toml:"name" yaml:"name"`
	URL  string `toml:"url" yaml:"url"`

	// Preset seeds both threshold tables before the explicit tables below
	// are applied. See ThresholdPreset.
	Preset string `toml:"preset" yaml:"preset"`

	RMSThresholds *Thresholds `toml:"rms_thresholds" yaml:"rms_thresholds"`
	HFRThresholds *Thresholds `toml:"hfr_thresholds" yaml:"hfr_thresholds"`
}

// Thresholds grade a metric into good, ok and bad bands. Values at or below
// GoodMax are good, at or below OkMax ok, anything above bad.
type Thresholds struct {
	GoodMax   float64  `toml:"good_max" yaml:"good_max"`
	OkMax     float64  `toml:"ok_max" yaml:"ok_max"`
	GoodColor HexColor `toml:"good_color" yaml:"good_color"`
	OkColor   HexColor `toml:"ok_color" yaml:"ok_color"`
	BadColor  HexColor `toml:"bad_color" yaml:"bad_color"`
}

// Def converts t for the graph engine.
func (t Thresholds) Def() graph.ThresholdDef {
	return graph.ThresholdDef{
		GoodMax:   t.GoodMax,
		OkMax:     t.OkMax,
		GoodColor: uint32(t.GoodColor),
		OkColor:   uint32(t.OkColor),
		BadColor:  uint32(t.BadColor),
	}
}

// Grade returns the colour of the band v falls in.
func (t Thresholds) Grade(v float64) uint32 {
	v = math.Abs(v)
	switch {
	case v <= t.GoodMax:
		return uint32(t.GoodColor)
	case v <= t.OkMax:
		return uint32(t.OkColor)
	default:
		return uint32(t.BadColor)
	}
}

// Default band colours.
const (
	DefaultGoodColor HexColor = 0x15803d
	DefaultOkColor   HexColor = 0xca8a04
	DefaultBadColor  HexColor = 0xb91c1c
)

// DefaultRMSThresholds returns the guiding RMS bands in arc-seconds.
func DefaultRMSThresholds() Thresholds {
	return Thresholds{GoodMax: 0.5, OkMax: 1.0, GoodColor: DefaultGoodColor, OkColor: DefaultOkColor, BadColor: DefaultBadColor}
}

// DefaultHFRThresholds returns the HFR bands in pixels.
func DefaultHFRThresholds() Thresholds {
	return Thresholds{GoodMax: 2.0, OkMax: 3.5, GoodColor: DefaultGoodColor, OkColor: DefaultOkColor, BadColor: DefaultBadColor}
}

// instance returns the instance behind a dashboard page. Page 1 is the
// first instance; pages that do not map to an instance fall back to it.
func (c *Config) instance(ctx graph.ReturnContext) (InstanceConfig, bool) {
	if len(c.Instances) == 0 {
		return InstanceConfig{}, false
	}
	i := int(ctx) - 1
	if i < 0 || i >= len(c.Instances) {
		i = 0
	}
	return c.Instances[i], true
}

// InstanceName returns the name of the instance behind ctx.
func (c *Config) InstanceName(ctx graph.ReturnContext) string {
	inst, ok := c.instance(ctx)
	if !ok || inst.Name == "" {
		return fmt.Sprintf("instance %d", ctx)
	}
	return inst.Name
}

// InstanceThresholds returns the resolved tables for the instance behind ctx.
func (c *Config) InstanceThresholds(ctx graph.ReturnContext, kind graph.Kind) Thresholds {
	inst, ok := c.instance(ctx)
	if !ok {
		if kind == graph.KindHFR {
			return DefaultHFRThresholds()
		}
		return DefaultRMSThresholds()
	}
	rms, hfr := ThresholdPreset(inst.Preset)
	if kind == graph.KindHFR {
		if inst.HFRThresholds != nil {
			return *inst.HFRThresholds
		}
		return hfr
	}
	if inst.RMSThresholds != nil {
		return *inst.RMSThresholds
	}
	return rms
}

// Thresholds implements graph.ThresholdProvider.
func (c *Config) Thresholds(ctx graph.ReturnContext, kind graph.Kind) graph.ThresholdDef {
	return c.InstanceThresholds(ctx, kind).Def()
}

// Grade returns the band colour for v on the instance behind ctx.
func (c *Config) Grade(ctx graph.ReturnContext, kind graph.Kind, v float64) uint32 {
	return c.InstanceThresholds(ctx, kind).Grade(v)
}

// ApplyThresholds copies the threshold settings of next into c, instance by
// instance. Everything else in c is kept. next must have been validated and
// must list the same number of instances.
func (c *Config) ApplyThresholds(next *Config) error {
	if len(next.Instances) != len(c.Instances) {
		return fmt.Errorf("config: reload has %d instances, running with %d", len(next.Instances), len(c.Instances))
	}
	for i, inst := range next.Instances {
		c.Instances[i].Preset = inst.Preset
		c.Instances[i].RMSThresholds = inst.RMSThresholds
		c.Instances[i].HFRThresholds = inst.HFRThresholds
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if b := c.General.ColorBrightness; b < 0 || b > 100 {
		return fmt.Errorf("config: color_brightness %d outside 0-100", b)
	}
	if c.General.GraphRefreshInterval.Duration <= 0 {
		return errors.New("config: graph_refresh_interval must be positive")
	}
	if n := len(c.Instances); n > MaxInstances {
		return fmt.Errorf("config: %d instances configured, at most %d supported", n, MaxInstances)
	}
	for i, inst := range c.Instances {
		if inst.URL == "" {
			return fmt.Errorf("config: instance %d (%q) has no url", i+1, inst.Name)
		}
		if !knownPreset(inst.Preset) {
			return fmt.Errorf("config: instance %d: unknown threshold preset %q", i+1, inst.Preset)
		}
		for name, t := range map[string]*Thresholds{"rms_thresholds": inst.RMSThresholds, "hfr_thresholds": inst.HFRThresholds} {
			if t == nil {
				continue
			}
			if t.GoodMax < 0 || t.OkMax < t.GoodMax {
				return fmt.Errorf("config: instance %d: %s needs 0 <= good_max <= ok_max", i+1, name)
			}
		}
	}
	return nil
}
