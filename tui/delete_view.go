// ABOUTME: Delete confirmation dialog for the home page
// ABOUTME: Renders the modal shown while a contact delete awaits confirmation
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/rolodex/models"
)

const dangerColor = lipgloss.Color("160")

var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(dangerColor).
			Padding(1, 3).
			Width(56).
			Align(lipgloss.Center)

	modalTitleStyle = lipgloss.NewStyle().Foreground(dangerColor).Bold(true)

	buttonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Padding(0, 2)
	dangerButton = buttonStyle.Background(dangerColor).MarginLeft(2)
	ghostButton  = buttonStyle.Background(lipgloss.Color("240"))
)

func renderConfirmDelete(contact models.Contact, deleting bool) string {
	title := modalTitleStyle.Render(fmt.Sprintf("Are you sure you want to delete the contact %q?", contact.Name))
	body := mutedStyle.Render("This action cannot be undone.")

	confirm := "Delete (y)"
	if deleting {
		confirm = "Deleting..."
	}
	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		ghostButton.Render("Cancel (n/esc)"),
		dangerButton.Render(confirm),
	)

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", buttons))
}
