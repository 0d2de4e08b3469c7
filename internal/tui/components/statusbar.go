package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hollowaydev/talkulator/internal/tui/theme"
)

// RenderTokenMeter renders the limiter state as filled and empty pips.
func RenderTokenMeter(tokens, max int) string {
	t := theme.Active

	full := lipgloss.NewStyle().Foreground(t.Accent)
	empty := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for i := 0; i < max; i++ {
		if i < tokens {
			b.WriteString(full.Render("●"))
		} else {
			b.WriteString(empty.Render("○"))
		}
		if i < max-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, mode string, audioOn bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [c]lear  [q]uit"
	right := mode
	if !audioOn {
		right += "  muted"
	}
	right += " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return style.Render(left + strings.Repeat(" ", gap) + right)
}
