// ABOUTME: Toast rendering for the TUI
// ABOUTME: Draws active notifications stacked below the current page
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/rolodex/toast"
)

var (
	toastBase = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Padding(0, 2).
			MarginTop(1)

	toastStyles = map[toast.Type]lipgloss.Style{
		toast.Success: toastBase.Background(lipgloss.Color("28")),
		toast.Danger:  toastBase.Background(lipgloss.Color("160")),
		toast.Info:    toastBase.Background(lipgloss.Color("62")),
	}
)

func renderToasts(toasts []toast.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style, ok := toastStyles[t.Type]
		if !ok {
			style = toastStyles[toast.Info]
		}
		lines = append(lines, style.Render(t.Text))
	}
	block := strings.Join(lines, "\n")
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return block
}
