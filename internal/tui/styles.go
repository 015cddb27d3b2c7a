package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorLavender lipgloss.Color = "#b4befe"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen).Padding(1, 2)
	stoppedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Padding(1, 2)
	lapLineStyle = lipgloss.NewStyle().Foreground(colorLavender).PaddingLeft(2)
	hintStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
	rowStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	latestStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	statusStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// progressColor is green while running and blue while stopped.
func progressColor(running bool) lipgloss.Color {
	if running {
		return colorGreen
	}
	return colorBlue
}
