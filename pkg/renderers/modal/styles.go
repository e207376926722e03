package modal

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by View.
type Styles struct {
	Panel    lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles mirrors the landing page palette.
func DefaultStyles() Styles {
	primary := lipgloss.Color("#6c5ce7")
	return Styles{
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(1, 2),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Label:    lipgloss.NewStyle(),
		Focused:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#27ae60")),
		Button:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(primary).Padding(0, 2),
		Disabled: lipgloss.NewStyle().Faint(true).Padding(0, 2),
		Help:     lipgloss.NewStyle().Faint(true),
	}
}
