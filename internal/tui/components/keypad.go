package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hollowaydev/talkulator/internal/tui/theme"
)

// keypadRows mirrors the keyboard keys the app accepts.
var keypadRows = [][]string{
	{"7", "8", "9", "/"},
	{"4", "5", "6", "*"},
	{"1", "2", "3", "-"},
	{"0", ".", "⏎", "+"},
}

// RenderKeypad renders the static key hint grid. lastKey, if non-empty,
// is highlighted so keystrokes get visual feedback.
func RenderKeypad(lastKey string) string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	hitStyle := keyStyle.
		Foreground(t.AccentBright).
		BorderForeground(t.BorderAccent).
		Bold(true)

	var rows []string
	for _, row := range keypadRows {
		var cells []string
		for _, k := range row {
			st := keyStyle
			if k == lastKey {
				st = hitStyle
			}
			cells = append(cells, st.Render(k))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}
