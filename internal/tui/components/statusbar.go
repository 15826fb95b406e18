package components

import (
	"fmt"

	"github.com/LucasAust/forecaster/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with the active forecast
// method on the right.
func RenderStatusBar(width int, method string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [tab]switch  [r]erun  [q]uit"
	right := ""
	if method != "" {
		right = fmt.Sprintf("method: %s ", method)
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
