package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a panel colour scheme plus the two end colours of the
// concentration map. Low is drawn for U = 0 and High for U >= 1.
type Theme struct {
	Name    string
	Low     lipgloss.Color
	High    lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	// ThemeLab matches the grayscale of the classroom lab: black to white.
	ThemeLab = Theme{
		Name:    "lab",
		Low:     lipgloss.Color("#000000"),
		High:    lipgloss.Color("#ffffff"),
		Primary: lipgloss.Color("#00cccc"),
		Accent:  lipgloss.Color("#ff88ff"),
		Muted:   lipgloss.Color("#666688"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Low:     lipgloss.Color("#001a33"),
		High:    lipgloss.Color("#e0f0ff"),
		Primary: lipgloss.Color("#0077be"),
		Accent:  lipgloss.Color("#ffd700"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeEmber = Theme{
		Name:    "ember",
		Low:     lipgloss.Color("#2d1b2e"),
		High:    lipgloss.Color("#feca57"),
		Primary: lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Low:     lipgloss.Color("#001100"),
		High:    lipgloss.Color("#00ff00"),
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemeLab

	Themes = []Theme{
		ThemeLab,
		ThemeOcean,
		ThemeEmber,
		ThemeRetro,
	}
)

// GetTheme returns a theme by name, falling back to the lab theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLab
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the name after current in Themes, wrapping around.
func NextTheme(current string) string {
	names := ThemeNames()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// Color maps a gray level onto the theme's concentration map.
func (t Theme) Color(level uint8) lipgloss.Color {
	return blend(t.Low, t.High, float64(level)/255)
}
