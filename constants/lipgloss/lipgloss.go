package lipgloss

import (
	"github.com/charmbracelet/lipgloss"
)

// Shared terminal styles used across commands.
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	Red = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444"))

	Green = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22C55E"))

	Yellow = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EAB308"))

	BlueSky = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#38BDF8"))

	Gray = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF"))

	Info = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60A5FA")).
		Bold(true)
)
