// Package git drives the git command line through the pipeline executor.
package git

import (
	"context"
	"strings"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/pipeline"
)

// Repo runs git subcommands against one working tree.
type Repo struct {
	runner pipeline.Runner
}

// NewRepo creates a Repo backed by runner.
func NewRepo(runner pipeline.Runner) *Repo {
	return &Repo{runner: runner}
}

var (
	_ core.GitTagOperations    = (*Repo)(nil)
	_ core.GitCommitOperations = (*Repo)(nil)
	_ core.GitSyncOperations   = (*Repo)(nil)
)

// Status fails with a *core.OutputError listing the porcelain lines when the
// working tree has any change, staged or not, including untracked files.
func (r *Repo) Status(ctx context.Context) error {
	return pipeline.RunExpectEmptyOutput(ctx, r.runner, "git", "status", "--porcelain=v2")
}

func (r *Repo) Fetch(ctx context.Context) error {
	_, err := pipeline.RunOrFail(ctx, r.runner, "git", "fetch")
	return err
}

// EnsureNotBehind fails with a *core.OutputError when upstream has commits
// that are not in HEAD.
func (r *Repo) EnsureNotBehind(ctx context.Context) error {
	return pipeline.RunExpectEmptyOutput(ctx, r.runner, "git", "rev-list", "HEAD..HEAD@{upstream}")
}

func (r *Repo) Checkout(ctx context.Context, ref string) error {
	_, err := pipeline.RunOrFail(ctx, r.runner, "git", "checkout", ref)
	return err
}

// ListTags returns every tag name, one per line of `git tag --list`.
func (r *Repo) ListTags(ctx context.Context) ([]string, error) {
	res, err := pipeline.RunOrFail(ctx, r.runner, "git", "tag", "--list")
	if err != nil {
		return nil, err
	}
	out := strings.TrimSpace(res.Stdout)
	if out == "" {
		return []string{}, nil
	}
	lines := strings.Split(out, "\n")
	tags := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// CommitAll commits every tracked modification (`git commit -am`).
func (r *Repo) CommitAll(ctx context.Context, message string) error {
	_, err := pipeline.RunOrFail(ctx, r.runner, "git", "commit", "-am", message)
	return err
}

func (r *Repo) CreateLightweightTag(ctx context.Context, name string) error {
	_, err := pipeline.RunOrFail(ctx, r.runner, "git", "tag", name)
	return err
}

func (r *Repo) CreateAnnotatedTag(ctx context.Context, name, message string) error {
	_, err := pipeline.RunOrFail(ctx, r.runner, "git", "tag", "-a", name, "-m", message)
	return err
}

// Push pushes the current branch to its upstream.
func (r *Repo) Push(ctx context.Context) error {
	_, err := pipeline.RunOrFail(ctx, r.runner, "git", "push")
	return err
}

// PushTag pushes a single tag to origin by name.
func (r *Repo) PushTag(ctx context.Context, name string) error {
	_, err := pipeline.RunOrFail(ctx, r.runner, "git", "push", "origin", name)
	return err
}

// CurrentBranch returns the short name of HEAD, "HEAD" when detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	res, err := pipeline.RunOrFail(ctx, r.runner, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}
