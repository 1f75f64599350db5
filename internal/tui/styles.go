// Package tui implements the Bubble Tea dashboard for runhub.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runhub/runhub/internal/styles"
)

// Styles used for rendering the TUI.
var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue).
			Bold(true).
			PaddingLeft(1)

	// Tab bar styles.
	tabActiveStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue).
			Bold(true).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(styles.ColorGray).
				Padding(0, 1)

	// Table header row.
	headerStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			Bold(true)

	// Subtle text: paths, hints, timestamps.
	subtleStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)

	// Primary text.
	textStyle = lipgloss.NewStyle().
			Foreground(styles.ColorWhite)

	// Highlights.
	accentStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue)

	goodStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(styles.ColorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.ColorRed)

	// Spinner style.
	spinnerStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue)

	// Chat bubbles.
	chatUserStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGreen).
			Bold(true)

	chatAssistantStyle = lipgloss.NewStyle().
				Foreground(styles.ColorBlue).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			PaddingLeft(1)
)

// Banner ASCII art for the header.
const banner = styles.Banner

// Weekly chart bar rune.
const barRune = "█"

// Heatmap density ramp. Index scales with how many route points land in a
// cell.
var heatRamp = []rune{' ', '░', '▒', '▓', '█'}
