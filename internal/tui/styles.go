package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorMantle   lipgloss.Color = "#181825"
	colorSurface0 lipgloss.Color = "#313244"
	colorButton   lipgloss.Color = "#87CEEB"
	colorWhite    lipgloss.Color = "#FFFFFF"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	titleStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	selectedTileStyle = tileStyle.BorderForeground(colorAccent)

	tileTitleStyle   = lipgloss.NewStyle().Bold(true)
	posterStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	mutedStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	bannerErrStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	bannerOKStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	buttonStyle      = lipgloss.NewStyle().Background(colorButton).Foreground(colorWhite).Bold(true).Padding(0, 2)
	buttonFocusStyle = buttonStyle.Underline(true)
)
