package tui

import (
	"strings"

	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/charmbracelet/lipgloss"
)

// Color palette matching existing fatih/color usage
var (
	// ColorGreen for read books and success indicators
	ColorGreen = lipgloss.AdaptiveColor{Light: "#00AF00", Dark: "#00D700"}

	// ColorBlue for books being read
	ColorBlue = lipgloss.AdaptiveColor{Light: "#005FD7", Dark: "#5FAFFF"}

	ColorCyan = lipgloss.AdaptiveColor{Light: "#00AFAF", Dark: "#00D7D7"}

	// ColorWhite for primary text
	ColorWhite = lipgloss.AdaptiveColor{Light: "#262626", Dark: "#FFFFFF"}

	// ColorGray for secondary text, help and unread books
	ColorGray = lipgloss.AdaptiveColor{Light: "#767676", Dark: "#808080"}

	// ColorYellow for warnings and highlights
	ColorYellow = lipgloss.AdaptiveColor{Light: "#D7AF00", Dark: "#FFD700"}

	ColorRed    = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	ColorOrange = lipgloss.Color("#fb6820")
	ColorTeal   = lipgloss.Color("#1b8487")
)

// Reusable styles
var (
	// StyleNormal is the base style for regular text
	StyleNormal = lipgloss.NewStyle().Foreground(ColorWhite)

	// StyleHighlight is for selected items
	StyleHighlight = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	StyleMeta = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleHelp is for help text and hints
	StyleHelp = lipgloss.NewStyle().Foreground(ColorGray)

	StyleError = lipgloss.NewStyle().Foreground(ColorRed)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleHeader is for section headers
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	// StyleBorder is for borders and separators
	StyleBorder = lipgloss.NewStyle().
			Foreground(ColorGray).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)

	StyleInput = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	StyleInputFocused = StyleInput.BorderForeground(ColorOrange)
)

// StatusStyle colours a reading status: green for read, blue for reading,
// grey otherwise.
func StatusStyle(status string) lipgloss.Style {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case library.StatusRead:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case library.StatusReading:
		return lipgloss.NewStyle().Foreground(ColorBlue)
	default:
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
}
