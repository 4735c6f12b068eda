package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration with TOML-friendly string parsing.
// Supports standard Go duration strings: "1s", "30s", "5m", "1h", etc.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML and YAML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// HexColor is a 0xRRGGBB colour written as "#rrggbb" in config files.
type HexColor uint32

// UnmarshalText accepts "#rrggbb", "rrggbb" and "0xrrggbb".
func (c *HexColor) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 6 {
		return fmt.Errorf("invalid colour %q: want #rrggbb", string(text))
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid colour %q: %w", string(text), err)
	}
	*c = HexColor(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c HexColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// String returns the colour as "#rrggbb".
func (c HexColor) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}
