package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha.
var (
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Label = lipgloss.NewStyle().Foreground(Lavender)

	OK      = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Warn    = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Blocked = lipgloss.NewStyle().Foreground(Red).Bold(true)
)

// Outcome picks the badge style for a guard outcome name.
func Outcome(name string) lipgloss.Style {
	switch name {
	case "blocked":
		return Blocked
	case "wind_down":
		return Warn
	default:
		return OK
	}
}
