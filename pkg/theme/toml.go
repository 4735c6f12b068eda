package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name   string       `toml:"name"`
	Base   thTOMLBase   `toml:"base"`
	Chrome thTOMLChrome `toml:"chrome"`
	Series thTOMLSeries `toml:"series"`
	Help   thTOMLHelp   `toml:"help"`
}

type thTOMLBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type thTOMLChrome struct {
	Border string `toml:"border"`
	Title  string `toml:"title"`
	Label  string `toml:"label"`
	Grid   string `toml:"grid"`
}

type thTOMLSeries struct {
	RA    string `toml:"ra"`
	DEC   string `toml:"dec"`
	Total string `toml:"total"`
	HFR   string `toml:"hfr"`
}

type thTOMLHelp struct {
	Key  string `toml:"key"`
	Desc string `toml:"desc"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition from raw bytes.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		Background: tt.Base.Background,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,

		Border: tt.Chrome.Border,
		Title:  tt.Chrome.Title,
		Label:  tt.Chrome.Label,
		Grid:   tt.Chrome.Grid,

		SeriesRA:    tt.Series.RA,
		SeriesDEC:   tt.Series.DEC,
		SeriesTotal: tt.Series.Total,
		SeriesHFR:   tt.Series.HFR,

		HelpKey:  tt.Help.Key,
		HelpDesc: tt.Help.Desc,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}

	return t, nil
}

// LoadFile reads a theme file and registers it.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	thRegister(t)
	return t, nil
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := thTOMLTheme{
		Name: t.Name,
		Base: thTOMLBase{
			Background: t.Background,
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Accent:     t.Accent,
		},
		Chrome: thTOMLChrome{
			Border: t.Border,
			Title:  t.Title,
			Label:  t.Label,
			Grid:   t.Grid,
		},
		Series: thTOMLSeries{
			RA:    t.SeriesRA,
			DEC:   t.SeriesDEC,
			Total: t.SeriesTotal,
			HFR:   t.SeriesHFR,
		},
		Help: thTOMLHelp{
			Key:  t.HelpKey,
			Desc: t.HelpDesc,
		},
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thColorFields maps TOML field names to the colour values of t.
func thColorFields(t Theme) map[string]string {
	return map[string]string{
		"background":   t.Background,
		"foreground":   t.Foreground,
		"dim":          t.Dim,
		"accent":       t.Accent,
		"border":       t.Border,
		"title":        t.Title,
		"label":        t.Label,
		"grid":         t.Grid,
		"series_ra":    t.SeriesRA,
		"series_dec":   t.SeriesDEC,
		"series_total": t.SeriesTotal,
		"series_hfr":   t.SeriesHFR,
		"help_key":     t.HelpKey,
		"help_desc":    t.HelpDesc,
	}
}

// thValidateTheme checks that all required color fields are present and valid hex.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	for field, value := range thColorFields(t) {
		if value == "" {
			return fmt.Errorf("theme: missing required field %q", field)
		}
		if !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", value, field)
		}
	}
	return nil
}
