package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func clearCI(t *testing.T) {
	t.Helper()
	for _, env := range ciEnvs {
		t.Setenv(env, "")
	}
}

func TestInCI(t *testing.T) {
	clearCI(t)
	if InCI() {
		t.Fatal("InCI() = true with no CI variables set")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if !InCI() {
		t.Error("InCI() = false with GITHUB_ACTIONS set")
	}
	if IsInteractive() {
		t.Error("IsInteractive() must be false in CI")
	}
}

func TestSpin_NonInteractiveRunsPlainly(t *testing.T) {
	t.Setenv("CI", "1")

	called := false
	err := Spin(context.Background(), "working", func() error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Fatalf("Spin() err=%v called=%v", err, called)
	}

	want := errors.New("boom")
	if got := Spin(context.Background(), "failing", func() error { return want }); !errors.Is(got, want) {
		t.Errorf("Spin() = %v, want %v", got, want)
	}
}

func TestAutoConfirmer(t *testing.T) {
	var c Confirmer = AutoConfirmer(true)
	ok, err := c.Confirm(context.Background(), "Push?", "")
	if err != nil || !ok {
		t.Errorf("AutoConfirmer(true) = %v, %v", ok, err)
	}

	ok, _ = AutoConfirmer(false).Confirm(context.Background(), "Push?", "")
	if ok {
		t.Error("AutoConfirmer(false) answered yes")
	}
}

func TestThemes(t *testing.T) {
	for _, name := range ValidThemes {
		if !IsValidTheme(name) {
			t.Errorf("IsValidTheme(%q) = false", name)
		}
		if GetTheme(name) == nil {
			t.Errorf("GetTheme(%q) = nil", name)
		}
	}
	if IsValidTheme("solarized") || GetTheme("solarized") != nil {
		t.Error("unknown theme accepted")
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { currentTheme = nil })

	SetTheme("dracula")
	if currentTheme == nil {
		t.Fatal("SetTheme(dracula) left theme unset")
	}
	SetTheme("nope")
	if currentTheme != nil {
		t.Error("unknown theme should reset to default")
	}
	if currentThemeOrDefault() == nil {
		t.Error("default theme is nil")
	}
}

func TestReleaseTheme(t *testing.T) {
	theme := releaseTheme()
	if !theme.Focused.Title.GetBold() {
		t.Error("Focused.Title should be bold")
	}
	if theme.Focused.Base.GetBorderStyle() != lipgloss.RoundedBorder() {
		t.Error("Focused.Base should have rounded border")
	}
	_, right, _, left := theme.Focused.FocusedButton.GetPadding()
	if left != 1 || right != 1 {
		t.Errorf("FocusedButton padding = %d/%d, want 1/1", left, right)
	}
}

func TestKeyMap(t *testing.T) {
	km := keyMap()
	keys := km.Quit.Keys()
	if len(keys) != 2 || keys[1] != "esc" {
		t.Errorf("Quit keys = %v", keys)
	}
}
