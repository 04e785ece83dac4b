// Package precheck guards a release against a dirty or stale working tree.
package precheck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/indaco/cutrelease/internal/core"
)

// Checker runs the repository preconditions of a release.
type Checker struct {
	gitOps core.GitSyncOperations
}

// NewChecker creates a Checker on top of gitOps.
func NewChecker(gitOps core.GitSyncOperations) *Checker {
	return &Checker{gitOps: gitOps}
}

// Checkout switches to ref. Any failure is reported as ErrCheckoutFailed
// carrying git's stderr.
func (c *Checker) Checkout(ctx context.Context, ref string) error {
	if err := c.gitOps.Checkout(ctx, ref); err != nil {
		return fmt.Errorf("%w: %s: %s", core.ErrCheckoutFailed, ref, err.Error())
	}
	return nil
}

// EnsureClean fails with ErrDirtyRepository when the working tree has any
// staged, unstaged or untracked change.
func (c *Checker) EnsureClean(ctx context.Context) error {
	err := c.gitOps.Status(ctx)
	if err == nil {
		return nil
	}

	var outErr *core.OutputError
	if errors.As(err, &outErr) {
		return &DirtyError{Entries: statusEntries(outErr.Stdout)}
	}
	return err
}

// EnsureUpToDate fetches from the remote then fails with ErrBehindUpstream
// when the upstream branch has commits HEAD lacks.
func (c *Checker) EnsureUpToDate(ctx context.Context) error {
	if err := c.gitOps.Fetch(ctx); err != nil {
		return err
	}

	err := c.gitOps.EnsureNotBehind(ctx)
	if err == nil {
		return nil
	}

	var outErr *core.OutputError
	if errors.As(err, &outErr) {
		return &BehindError{Commits: nonEmptyLines(outErr.Stdout)}
	}
	return err
}

// DirtyError lists the paths that keep the working tree from being clean.
type DirtyError struct {
	Entries []string
}

func (e *DirtyError) Error() string {
	return fmt.Sprintf("%s: %d uncommitted change(s):\n  %s",
		core.ErrDirtyRepository, len(e.Entries), strings.Join(e.Entries, "\n  "))
}

func (e *DirtyError) Is(target error) bool { return target == core.ErrDirtyRepository }

// BehindError lists the upstream commits missing from HEAD.
type BehindError struct {
	Commits []string
}

func (e *BehindError) Error() string {
	return fmt.Sprintf("%s: %d commit(s) to pull", core.ErrBehindUpstream, len(e.Commits))
}

func (e *BehindError) Is(target error) bool { return target == core.ErrBehindUpstream }

// statusEntries reduces `git status --porcelain=v2` lines to their paths.
// Ordinary and unmerged entries carry the path in the last field; untracked
// and ignored entries use a "? path" or "! path" form. Renames keep the
// "new<TAB>old" pair.
func statusEntries(out string) []string {
	lines := nonEmptyLines(out)
	entries := make([]string, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, statusPath(line))
	}
	return entries
}

func statusPath(line string) string {
	if len(line) < 2 {
		return line
	}
	var skip int
	switch line[0] {
	case '?', '!':
		return line[2:]
	case '1':
		skip = 8
	case '2':
		skip = 9
	case 'u':
		skip = 10
	default:
		return line
	}
	fields := strings.SplitN(line, " ", skip+1)
	if len(fields) <= skip {
		return line
	}
	return fields[skip]
}

func nonEmptyLines(s string) []string {
	var out []string
	for line := range strings.SplitSeq(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
