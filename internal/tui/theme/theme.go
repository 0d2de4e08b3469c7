// Package theme defines color themes for the talkulator TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // main app background
	Surface      lipgloss.Color // card/panel backgrounds
	Border       lipgloss.Color // subtle borders
	BorderAccent lipgloss.Color // accent-colored borders (display card)
	TextDim      lipgloss.Color // lowest contrast text (hints)
	TextMuted    lipgloss.Color // secondary text (labels)
	TextPrimary  lipgloss.Color // primary content text
	Accent       lipgloss.Color // primary accent
	AccentBright lipgloss.Color // brighter accent for emphasis
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
	Yellow       lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
	Yellow:       lipgloss.Color("#D0A215"),
}

// CatppuccinMocha is a warm pastel theme with soft, soothing colors.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Green:        lipgloss.Color("#A6E3A1"),
	Orange:       lipgloss.Color("#FAB387"),
	Red:          lipgloss.Color("#F38BA8"),
	Yellow:       lipgloss.Color("#F9E2AF"),
}

// TokyoNight is a cool blue/purple theme inspired by Tokyo city lights.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	Border:       lipgloss.Color("#414868"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FB"),
	Green:        lipgloss.Color("#9ECE6A"),
	Orange:       lipgloss.Color("#FF9E64"),
	Red:          lipgloss.Color("#F7768E"),
	Yellow:       lipgloss.Color("#E0AF68"),
}

// All lists every available theme, default first.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight}

// SetActive switches the active theme by name; unknown names keep the
// current theme.
func SetActive(name string) {
	for _, t := range All {
		if t.Name == name {
			Active = t
			return
		}
	}
}
