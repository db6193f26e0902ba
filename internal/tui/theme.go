package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorPeach    lipgloss.Color = "#fab387"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	buttonWidth = 7
	gridColumns = 4
	// displayWidth spans the whole keypad, borders included.
	displayWidth = gridColumns * (buttonWidth + 2)
)

var (
	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Width(displayWidth-2).
			Align(lipgloss.Right).
			Padding(0, 1)

	previousStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	currentStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface0).
			Foreground(colorText).
			Align(lipgloss.Center)

	operationButtonStyle = buttonStyle.Foreground(colorPeach)

	selectedButtonStyle = buttonStyle.
				BorderForeground(colorLavender).
				Background(colorPink).
				Foreground(colorBase).
				Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
)
