package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestCommandError(t *testing.T) {
	base := errors.New("exit status 1")

	t.Run("stderr wins", func(t *testing.T) {
		err := &CommandError{Name: "git", Args: []string{"push"}, Stderr: "rejected", Err: base}
		if err.Error() != "rejected" {
			t.Errorf("Error() = %q, want %q", err.Error(), "rejected")
		}
		if !errors.Is(err, ErrCommandFailed) {
			t.Error("expected errors.Is(err, ErrCommandFailed)")
		}
		if !errors.Is(err, base) {
			t.Error("expected underlying error to unwrap")
		}
	})

	t.Run("no stderr falls back to command line", func(t *testing.T) {
		err := &CommandError{Name: "cargo", Args: []string{"fmt"}, Err: base}
		want := "`cargo fmt` failed: exit status 1"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("wrapped still matches", func(t *testing.T) {
		err := fmt.Errorf("build: %w", &CommandError{Name: "cargo"})
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) {
			t.Fatal("expected errors.As to find CommandError")
		}
		if cmdErr.CommandLine() != "cargo" {
			t.Errorf("CommandLine() = %q", cmdErr.CommandLine())
		}
	})
}

func TestOutputError(t *testing.T) {
	err := &OutputError{Name: "git", Args: []string{"status", "--porcelain=v2"}, Stdout: "? foo"}
	if !errors.Is(err, ErrUnexpectedOutput) {
		t.Error("expected errors.Is(err, ErrUnexpectedOutput)")
	}
	if errors.Is(err, ErrCommandFailed) {
		t.Error("OutputError must not match ErrCommandFailed")
	}
	want := "`git status --porcelain=v2` stdout should be empty: ? foo"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
