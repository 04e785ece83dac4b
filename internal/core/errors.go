package core

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy of a release run. Every error is fatal: callers wrap these
// with context and the run stops at the first one.
var (
	ErrFormat                 = errors.New("invalid format")
	ErrInvalidConstraint      = errors.New("invalid base constraint")
	ErrNoMatchingVersion      = errors.New("no matching version")
	ErrVersionFieldNotFound   = errors.New("version field not found")
	ErrVersionAlreadyReleased = errors.New("version already released")
	ErrDirtyRepository        = errors.New("repository not clean")
	ErrBehindUpstream         = errors.New("repository behind upstream")
	ErrCheckoutFailed         = errors.New("checkout failed")
	ErrCommandFailed          = errors.New("command failed")
	ErrUnexpectedOutput       = errors.New("unexpected command output")
)

// CommandError reports an external command that exited non-zero.
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

// CommandLine renders the command as typed in a shell.
func (e *CommandError) CommandLine() string {
	return commandLine(e.Name, e.Args)
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Err != nil {
		return fmt.Sprintf("`%s` failed: %v", e.CommandLine(), e.Err)
	}
	return fmt.Sprintf("`%s` failed", e.CommandLine())
}

func (e *CommandError) Unwrap() error { return e.Err }

// Is makes every CommandError match ErrCommandFailed.
func (e *CommandError) Is(target error) bool { return target == ErrCommandFailed }

// OutputError reports a command that succeeded but printed something when
// silence was the precondition (status, rev-list).
type OutputError struct {
	Name   string
	Args   []string
	Stdout string
}

func (e *OutputError) CommandLine() string {
	return commandLine(e.Name, e.Args)
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("`%s` stdout should be empty: %s", e.CommandLine(), e.Stdout)
}

func (e *OutputError) Is(target error) bool { return target == ErrUnexpectedOutput }

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
