package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ValidThemes is the list of supported theme names.
var ValidThemes = []string{
	"cutrelease",
	"base",
	"catppuccin",
	"charm",
	"dracula",
}

// currentTheme is nil until SetTheme picks one; prompts then use releaseTheme.
var currentTheme *huh.Theme

// IsValidTheme returns true if the given theme name is valid.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// SetTheme selects the prompt theme by name. Unknown or empty names fall
// back to the default theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

// GetTheme returns the huh.Theme for the given theme name, or nil.
func GetTheme(name string) *huh.Theme {
	switch name {
	case "cutrelease":
		return releaseTheme()
	case "base":
		return huh.ThemeBase()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	default:
		return nil
	}
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return releaseTheme()
	}
	return currentTheme
}

func releaseTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	muted := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	cream := lipgloss.AdaptiveColor{Light: "#FFFDF5", Dark: "#FFFDF5"}

	t.Focused.Base = t.Focused.Base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent)
	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(cream).Background(accent).Bold(true).Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(muted).Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	t.Help.ShortKey = t.Help.ShortKey.Foreground(accent)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(muted)
	return t
}
