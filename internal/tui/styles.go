// Package tui provides the terminal dashboard for Chronos.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI dashboard.
var (
	ColorPrimary   = lipgloss.Color("#D4AF37") // Gold
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorActive    = lipgloss.Color("#3B82F6") // Blue
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for subtitles and secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleLabel is used for attribute names.
	StyleLabel = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleValue is used for numeric readouts.
	StyleValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleDone is used for tasks checked in today.
	StyleDone = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleCursor marks the selected task.
	StyleCursor = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleMuted is used for muted text.
	StyleMuted = StyleSubtitle
)

// Box styles for different sections.
var (
	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)

	// StyleToastBox frames the latest notification.
	StyleToastBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)
)

// ProgressBar creates a progress bar string.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}
	if width < 1 {
		width = 1
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}
