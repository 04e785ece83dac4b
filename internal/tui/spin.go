package tui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Spin runs fn behind a spinner titled title when the session is
// interactive, and runs it plainly otherwise.
func Spin(ctx context.Context, title string, fn func() error) error {
	if !IsInteractive() {
		return fn()
	}

	var actionErr error
	err := spinner.New().
		Context(ctx).
		Type(spinner.MiniDot).
		Title(" " + title).
		TitleStyle(lipgloss.NewStyle().Faint(true)).
		Action(func() { actionErr = fn() }).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}
