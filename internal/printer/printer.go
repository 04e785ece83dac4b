// Package printer renders the console output of cutrelease.
package printer

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	badgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Padding(0, 1)
)

// SetNoColor disables ANSI styling when disabled is true, or when the
// NO_COLOR environment variable is set.
func SetNoColor(disabled bool) {
	if disabled || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

func Faint(text string) string   { return faintStyle.Render(text) }
func Bold(text string) string    { return boldStyle.Render(text) }
func Success(text string) string { return successStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }

// Badge renders text as a filled label, e.g. the released tag.
func Badge(text string) string { return badgeStyle.Render(text) }

func PrintFaint(text string)   { fmt.Println(Faint(text)) }
func PrintBold(text string)    { fmt.Println(Bold(text)) }
func PrintSuccess(text string) { fmt.Println(Success(text)) }
func PrintWarning(text string) { fmt.Println(Warning(text)) }
func PrintInfo(text string)    { fmt.Println(Info(text)) }

// PrintError prints to stderr.
func PrintError(text string) { fmt.Fprintln(os.Stderr, Error(text)) }

// PrintStep prints a finished workflow step as "✓ message".
func PrintStep(format string, a ...any) {
	fmt.Printf("%s %s\n", Success("✓"), fmt.Sprintf(format, a...))
}

// PrintSkip prints a step that was skipped as "- message", faint.
func PrintSkip(format string, a ...any) {
	fmt.Println(Faint("- " + fmt.Sprintf(format, a...)))
}

// PrintCommand echoes an external command line, for verbose output.
func PrintCommand(line string) {
	fmt.Println(Faint("$ " + line))
}

// PrintKeyValue prints an aligned "key: value" pair.
func PrintKeyValue(key, value string) {
	fmt.Printf("  %-12s %s\n", Faint(key+":"), value)
}
