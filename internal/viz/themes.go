package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Border   lipgloss.Color
	Axis     lipgloss.Color
	Momentum lipgloss.Color
	Energy   lipgloss.Color
	Marker   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Primary:  lipgloss.Color("#00ffff"),
		Accent:   lipgloss.Color("#ff00ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Border:   lipgloss.Color("#444466"),
		Axis:     lipgloss.Color("#555566"),
		Momentum: lipgloss.Color("#ff3355"),
		Energy:   lipgloss.Color("#3388ff"),
		Marker:   lipgloss.Color("#ffff00"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"), // Green phosphor
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Border:   lipgloss.Color("#007700"),
		Axis:     lipgloss.Color("#004400"),
		Momentum: lipgloss.Color("#ffff00"),
		Energy:   lipgloss.Color("#00cc00"),
		Marker:   lipgloss.Color("#ffffff"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Primary:  lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Border:   lipgloss.Color("#444444"),
		Axis:     lipgloss.Color("#444444"),
		Momentum: lipgloss.Color("#ff0000"),
		Energy:   lipgloss.Color("#0000ff"),
		Marker:   lipgloss.Color("#ffffff"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Primary:  lipgloss.Color("#ff6b6b"), // Coral
		Accent:   lipgloss.Color("#feca57"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Border:   lipgloss.Color("#5d3b5e"),
		Axis:     lipgloss.Color("#5d3b5e"),
		Momentum: lipgloss.Color("#ff9ff3"),
		Energy:   lipgloss.Color("#48dbfb"),
		Marker:   lipgloss.Color("#feca57"),
	}

	// Default theme
	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
