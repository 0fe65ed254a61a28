package report

import "github.com/charmbracelet/lipgloss"

// Theme holds one style per record kind.
type Theme struct {
	Unchanged lipgloss.Style
	Added     lipgloss.Style
	Removed   lipgloss.Style
	Modified  lipgloss.Style
	Renamed   lipgloss.Style
}

// DefaultTheme is the colored terminal theme.
func DefaultTheme() Theme {
	return Theme{
		Unchanged: lipgloss.NewStyle().Foreground(lipgloss.Color("#777")),
		Added:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00af5f")),
		Removed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d70000")),
		Modified:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8700")),
		Renamed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#7d56f4")),
	}
}

// PlainTheme renders without any styling, for piped output and tests.
func PlainTheme() Theme {
	return Theme{}
}
