package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorWhite = lipgloss.Color("15")
	ColorGray  = lipgloss.Color("245")
	ColorBlue  = lipgloss.Color("39")
	ColorGreen = lipgloss.Color("42")
	ColorRed   = lipgloss.Color("196")
	ColorAmber = lipgloss.Color("214")

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	activeSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBlue).
				Padding(0, 1)

	chartTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	metricValueStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	warningStyle = lipgloss.NewStyle().
			Foreground(ColorAmber).
			Bold(true)

	filterStyle = lipgloss.NewStyle().
			Foreground(ColorAmber)
)
