package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the browser.
type Styles struct {
	Title    lipgloss.Style
	Status   lipgloss.Style
	Selected lipgloss.Style
	Popup    lipgloss.Style
	Checked  lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Status:   lipgloss.NewStyle().Faint(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Popup:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Checked:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
}
