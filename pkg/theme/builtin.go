package theme

// thRegisterBuiltins registers all built-in themes in the registry.
func thRegisterBuiltins() {
	for _, t := range []Theme{
		thDefaultTheme(),
		thRedNightTheme(),
		thMidnightTheme(),
	} {
		thRegister(t)
	}
}

// thDefaultTheme returns the dark neutral theme with material series colours.
func thDefaultTheme() Theme {
	return Theme{
		Name:       "default",
		Background: "#1e1e1e",
		Foreground: "#d4d4d4",
		Dim:        "#6b6b6b",
		Accent:     "#42a5f5",

		Border: "#3e3e3e",
		Title:  "#d4d4d4",
		Label:  "#9e9e9e",
		Grid:   "#333333",

		SeriesRA:    "#42a5f5",
		SeriesDEC:   "#ef5350",
		SeriesTotal: "#66bb6a",
		SeriesHFR:   "#ffa726",

		HelpKey:  "#42a5f5",
		HelpDesc: "#6b6b6b",
	}
}

// thRedNightTheme keeps every colour in the red channel so the display does
// not spoil dark adaptation at the telescope.
func thRedNightTheme() Theme {
	return Theme{
		Name:       "red night",
		Background: "#000000",
		Foreground: "#cc0000",
		Dim:        "#550000",
		Accent:     "#e04040",

		Border: "#330000",
		Title:  "#cc0000",
		Label:  "#880000",
		Grid:   "#220000",

		SeriesRA:    "#e04040",
		SeriesDEC:   "#8b1a1a",
		SeriesTotal: "#aa2222",
		SeriesHFR:   "#cc0000",

		HelpKey:  "#e04040",
		HelpDesc: "#550000",
	}
}

// thMidnightTheme returns a low-contrast blue theme.
func thMidnightTheme() Theme {
	return Theme{
		Name:       "midnight",
		Background: "#0b1020",
		Foreground: "#a9b1d6",
		Dim:        "#565f89",
		Accent:     "#7aa2f7",

		Border: "#1f2335",
		Title:  "#c0caf5",
		Label:  "#737aa2",
		Grid:   "#1a1e30",

		SeriesRA:    "#7aa2f7",
		SeriesDEC:   "#f7768e",
		SeriesTotal: "#9ece6a",
		SeriesHFR:   "#e0af68",

		HelpKey:  "#7aa2f7",
		HelpDesc: "#565f89",
	}
}
