// Package components holds the reusable render helpers for the
// talkulator TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hollowaydev/talkulator/internal/tui/theme"
)

// RenderDisplay renders the calculator display card: one right-aligned
// display line plus a muted caption underneath (mode or activity hint).
func RenderDisplay(width int, line, caption string) string {
	t := theme.Active

	inner := width - 6
	if inner < 10 {
		inner = 10
	}

	lineStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true).
		Width(inner).
		Align(lipgloss.Right)

	captionStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(inner).
		Align(lipgloss.Left)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(0, 1)

	shown := line
	if lipgloss.Width(shown) > inner {
		// Keep the tail visible; the user cares about what they just typed.
		runes := []rune(shown)
		shown = "…" + string(runes[len(runes)-(inner-1):])
	}

	return card.Render(lineStyle.Render(shown) + "\n" + captionStyle.Render(caption))
}
