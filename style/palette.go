package style

import "github.com/charmbracelet/lipgloss"

// Catppuccin mocha, reduced to what the interface draws with.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Surface  = lipgloss.Color("#313244")
	Overlay  = lipgloss.Color("#6c7086")
	Subtext  = lipgloss.Color("#a6adc8")
	Text     = lipgloss.Color("#cdd6f4")
	Mauve    = lipgloss.Color("#cba6f7")
	Lavender = lipgloss.Color("#b4befe")
	Red      = lipgloss.Color("#f38ba8")
	Yellow   = lipgloss.Color("#f9e2af")
	Green    = lipgloss.Color("#a6e3a1")
)

// Health colors follow status.State: good, neutral, bad.
var (
	SuccessColor = Green
	WarningColor = Yellow
	ErrorColor   = Red
)

var (
	AccentColor = Mauve
	FaintColor  = Overlay
	HiRed       = Red
)
