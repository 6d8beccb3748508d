package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	primary = lipgloss.Color("#7D56F4")
	green   = lipgloss.Color("#04B575")
	red     = lipgloss.Color("#FF4D4D")
	yellow  = lipgloss.Color("#E5C07B")
	cyan    = lipgloss.Color("#56B6C2")
	grey    = lipgloss.Color("#888888")
)

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	// Error styling
	ErrorStyle = lipgloss.NewStyle().
			Foreground(red)

	// Warning and prompt styling
	WarnStyle = lipgloss.NewStyle().
			Foreground(yellow)

	// Success styling
	SuccessStyle = lipgloss.NewStyle().
			Foreground(green)

	// Commands, URLs and names the user may copy
	AccentStyle = lipgloss.NewStyle().
			Foreground(cyan)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(grey)
)

// NewHuhTheme returns the huh theme used by every prompt.
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeBase()

	theme.Focused.Title = theme.Focused.Title.Foreground(yellow)
	theme.Focused.TextInput.Cursor = theme.Focused.TextInput.Cursor.Foreground(primary)
	theme.Focused.TextInput.Prompt = theme.Focused.TextInput.Prompt.Foreground(cyan)
	theme.Blurred = theme.Focused

	return theme
}
