package ui

import "github.com/charmbracelet/lipgloss"

var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true)
	StyleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777"))
	StyleCursor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00afff"))
	StyleAdded = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00af5f"))
	StyleRemoved = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d70000"))
	StyleModified = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8700"))
	StyleRenamed = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7d56f4"))
	BorderDetail = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#777"))
)
