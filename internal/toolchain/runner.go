package toolchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/indaco/cutrelease/internal/pipeline"
)

// SpinFunc wraps a blocking step, typically with a progress spinner.
type SpinFunc func(ctx context.Context, title string, fn func() error) error

// Runner executes the steps of a Profile through a pipeline.Runner.
type Runner struct {
	runner  pipeline.Runner
	profile Profile
	spin    SpinFunc
}

// NewRunner creates a Runner. A nil spin runs steps without decoration.
func NewRunner(runner pipeline.Runner, profile Profile, spin SpinFunc) *Runner {
	if spin == nil {
		spin = func(_ context.Context, _ string, fn func() error) error { return fn() }
	}
	return &Runner{runner: runner, profile: profile, spin: spin}
}

// Profile returns the profile this runner executes.
func (r *Runner) Profile() Profile {
	return r.profile
}

// Build runs resync, lint and format, stopping at the first failure.
func (r *Runner) Build(ctx context.Context) error {
	if err := r.Resync(ctx); err != nil {
		return err
	}
	if err := r.step(ctx, "Linting", r.profile.Lint); err != nil {
		return err
	}
	return r.step(ctx, "Formatting", r.profile.Format)
}

// Resync refreshes the lockfile after a manifest change.
func (r *Runner) Resync(ctx context.Context) error {
	return r.step(ctx, "Resyncing dependencies", r.profile.Resync)
}

// Install installs the project locally.
func (r *Runner) Install(ctx context.Context) error {
	return r.step(ctx, "Installing", r.profile.Install)
}

// BuildCommands lists the command lines Build would run.
func (r *Runner) BuildCommands() []string {
	var lines []string
	for _, cmds := range [][][]string{r.profile.Resync, r.profile.Lint, r.profile.Format} {
		for _, argv := range cmds {
			lines = append(lines, strings.Join(argv, " "))
		}
	}
	return lines
}

func (r *Runner) step(ctx context.Context, title string, cmds [][]string) error {
	if len(cmds) == 0 {
		return nil
	}
	return r.spin(ctx, fmt.Sprintf("%s (%s)...", title, r.profile.Name), func() error {
		for _, argv := range cmds {
			if _, err := pipeline.RunOrFail(ctx, r.runner, argv[0], argv[1:]...); err != nil {
				return err
			}
		}
		return nil
	})
}
