package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent    = lipgloss.Color("111")
	colorHighlight = lipgloss.Color("221")
	colorMuted     = lipgloss.Color("245")
	colorError     = lipgloss.Color("203")
	colorBorder    = lipgloss.Color("238")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	labelStyle = lipgloss.NewStyle().Foreground(colorMuted)

	// regionStyle frames every tour target. Highlighting only recolors the
	// border so the layout does not shift.
	regionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	highlightStyle = regionStyle.BorderForeground(colorHighlight)

	currentCipherStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	activeUnitStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(colorHighlight)
	unitStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	tooltipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorHighlight).
			Padding(0, 1).
			Width(tooltipWidth)
	tooltipTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHighlight)
)

// tooltipWidth is the tooltip content width in cells.
const tooltipWidth = 38
