package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hollowaydev/talkulator/internal/session"
	"github.com/hollowaydev/talkulator/internal/tui/components"
	"github.com/hollowaydev/talkulator/internal/tui/theme"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  talkulator needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"0-9 .", "Type digits"},
		{"+ - * /", "Type operators"},
		{"Enter =", "Ask the spirits"},
		{"Backspace", "Delete last character"},
		{"Esc c", "Clear everything"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press ? to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active

	cw := a.width - 4
	if cw > 48 {
		cw = 48
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	header := titleStyle.Render("◈ talkulator") +
		subtitleStyle.Render(" · a calculator with opinions")

	display := components.RenderDisplay(cw, a.sess.Display(), a.caption())
	keypad := components.RenderKeypad(a.lastKey)
	meter := components.RenderTokenMeter(a.bucket.Tokens(), a.bucket.Max())

	body := lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		display,
		"",
		keypad,
		"",
		meter,
	)

	bar := components.RenderStatusBar(a.width, a.sess.Mode().String(), a.audioOn)

	content := lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, body,
		lipgloss.WithWhitespaceBackground(t.Background))

	return content + "\n" + bar
}

// caption is the secondary display line under the main one.
func (a App) caption() string {
	switch a.sess.Mode() {
	case session.ModePending:
		return a.spinner.View() + " thinking very hard"
	case session.ModeResolved:
		return "ta-da!"
	case session.ModeFailed:
		return "try again?"
	default:
		if !a.preloaded {
			return "warming up sounds..."
		}
		return "type an expression"
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Count(s, "\n") + 1
	if lines >= h {
		return s
	}
	return s + strings.Repeat("\n", h-lines)
}
