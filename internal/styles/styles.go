// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorRed    = lipgloss.Color("#f7768e")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// Banner ASCII art for the header.
const Banner = `
 ╦═╗╦ ╦╔╗╔╦ ╦╦ ╦╔╗
 ╠╦╝║ ║║║║╠═╣║ ║╠╩╗
 ╩╚═╚═╝╝╚╝╩ ╩╚═╝╚═╝`

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// FormTheme returns the huh theme used for interactive prompts.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorBlue).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorGray)
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorBlue)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(ColorBlue)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorBlue)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorRed)

	t.Blurred.Title = t.Blurred.Title.Foreground(ColorGray)

	return t
}
