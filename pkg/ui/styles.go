package ui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors for light and dark terminals.
var (
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorAxis    = lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Card colors by detail level
	ColorCardFull      = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorCardCompact   = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorCardTitleOnly = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorCardOverflow  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

var (
	axisStyle     = lipgloss.NewStyle().Foreground(ColorAxis)
	anchorStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	axisLabel     = lipgloss.NewStyle().Foreground(ColorSubtext)
	fallbackStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	cardFullStyle      = lipgloss.NewStyle().Foreground(ColorCardFull)
	cardCompactStyle   = lipgloss.NewStyle().Foreground(ColorCardCompact)
	cardTitleOnlyStyle = lipgloss.NewStyle().Foreground(ColorCardTitleOnly)
	cardOverflowStyle  = lipgloss.NewStyle().Foreground(ColorCardOverflow).Bold(true)

	titleBarStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Padding(0, 1)

	telemetryPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorMuted).
				Padding(0, 1)

	telemetryLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	telemetryValueStyle = lipgloss.NewStyle().Foreground(ColorText)
)
