package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// NewHuhTheme returns the huh theme used by interactive prompts: the base
// theme recoloured with the purple/green palette from styles.go.
func NewHuhTheme() *huh.Theme {
	theme := huh.ThemeBase()

	purple := lipgloss.Color("#7D56F4")
	green := lipgloss.Color("#04B575")
	subtle := lipgloss.Color("#888888")

	theme.Focused.Title = theme.Focused.Title.Foreground(purple).Bold(true)
	theme.Focused.Description = theme.Focused.Description.Foreground(subtle)
	theme.Focused.TextInput.Prompt = theme.Focused.TextInput.Prompt.Foreground(purple)
	theme.Focused.TextInput.Cursor = theme.Focused.TextInput.Cursor.Foreground(green)
	theme.Focused.FocusedButton = theme.Focused.FocusedButton.Background(purple).Foreground(lipgloss.Color("#FFFFFF"))
	theme.Focused.BlurredButton = theme.Focused.BlurredButton.Foreground(subtle)
	theme.Focused.ErrorMessage = ErrorStyle
	theme.Focused.ErrorIndicator = ErrorStyle

	theme.Blurred = theme.Focused
	theme.Blurred.Title = theme.Blurred.Title.Foreground(subtle)

	return theme
}
