package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme colors the TUI. Wave and Marker also restyle the field, so GIF
// captures follow the theme.
type Theme struct {
	Name   string
	Wave   lipgloss.Color
	Marker lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Alert  lipgloss.Color
}

var (
	ThemeEmber = Theme{
		Name:   "ember",
		Wave:   lipgloss.Color("#ff4d00"),
		Marker: lipgloss.Color("#ffb380"),
		Accent: lipgloss.Color("#ff8a3d"),
		Text:   lipgloss.Color("#f5e6dc"),
		Muted:  lipgloss.Color("#6b5a50"),
		Alert:  lipgloss.Color("#ff2a2a"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Wave:   lipgloss.Color("#00ff66"),
		Marker: lipgloss.Color("#b3ffcc"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#ccffdd"),
		Muted:  lipgloss.Color("#005522"),
		Alert:  lipgloss.Color("#ffff00"),
	}

	ThemeIce = Theme{
		Name:   "ice",
		Wave:   lipgloss.Color("#00a8cc"),
		Marker: lipgloss.Color("#e0f7ff"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Alert:  lipgloss.Color("#ff4444"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Wave:   lipgloss.Color("#ffffff"),
		Marker: lipgloss.Color("#aaaaaa"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Alert:  lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeEmber,
		ThemePhosphor,
		ThemeIce,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to ember.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

// Next returns the theme after t in Themes.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// RGBA converts a "#rrggbb" lipgloss color; anything else is white.
func RGBA(c lipgloss.Color) color.NRGBA {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	r, g, b := col.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}
