package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette

const (
	colorLavender lipgloss.Color = "#b4befe"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorRed      lipgloss.Color = "#f38ba8"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorLavender).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	footerStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	statsStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorLavender).Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorOverlay0)
)
