package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, title, description string) (bool, error)
}

// Prompter implements Confirmer with huh forms.
type Prompter struct{}

// NewPrompter creates a Prompter.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Confirm shows a yes/no prompt. Aborting with esc or ctrl+c answers no.
func (p *Prompter) Confirm(ctx context.Context, title, description string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(currentThemeOrDefault()).
		WithKeyMap(keyMap()).
		WithShowHelp(true)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "abort"),
	)
	return km
}

// AutoConfirmer answers every question with a fixed value. It stands in for
// Prompter when no terminal is attached.
type AutoConfirmer bool

// Confirm returns the fixed answer.
func (a AutoConfirmer) Confirm(context.Context, string, string) (bool, error) {
	return bool(a), nil
}

// Option is one entry of a multi-select prompt.
type Option struct {
	Label    string
	Value    string
	Selected bool
}

// MultiSelect lets the user pick any number of options and returns the
// chosen values. Aborting returns no selection and no error.
func (p *Prompter) MultiSelect(ctx context.Context, title, description string, options []Option) ([]string, error) {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o.Label, o.Value).Selected(o.Selected)
	}

	var selected []string
	field := huh.NewMultiSelect[string]().
		Title(title).
		Description(description).
		Options(opts...).
		Value(&selected)

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(currentThemeOrDefault()).
		WithKeyMap(keyMap()).
		WithShowHelp(true)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}
	return selected, nil
}
