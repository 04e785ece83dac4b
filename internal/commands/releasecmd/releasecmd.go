// Package releasecmd implements the "release" and "plan" commands.
package releasecmd

import (
	"context"
	"fmt"

	"github.com/indaco/cutrelease/internal/cli/flags"
	"github.com/indaco/cutrelease/internal/config"
	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/pipeline"
	"github.com/indaco/cutrelease/internal/printer"
	"github.com/indaco/cutrelease/internal/release"
	"github.com/indaco/cutrelease/internal/tui"
	"github.com/urfave/cli/v3"
)

// NewRunnerFn builds the command runner for a repository directory. Tests
// replace it with a scripted runner.
var NewRunnerFn = func(dir string, verbose bool) pipeline.Runner {
	r := pipeline.NewExecRunner(dir)
	if verbose {
		r.Echo = printer.PrintCommand
	}
	return r
}

// NewFileSystemFn returns the filesystem releases read and write.
var NewFileSystemFn = func() core.FileSystem {
	return core.NewOSFileSystem()
}

// Run returns the "release" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "release",
		Usage:     "Cut a release: bump, build, commit, tag and push",
		UsageText: "cutrelease release [--major|--minor|--patch] [--for X[.Y]] [--flags]",
		Action:    Action(cfg, false),
	}
}

// Plan returns the "plan" command, a dry run of "release".
func Plan(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Show what a release would do without changing anything",
		UsageText: "cutrelease plan [--major|--minor|--patch] [--for X[.Y]]",
		Action:    Action(cfg, true),
	}
}

// Action runs a release with the flags of cmd. dryRun forces a dry run.
func Action(cfg *config.Config, dryRun bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		return runRelease(ctx, cmd, cfg, dryRun)
	}
}

func runRelease(ctx context.Context, cmd *cli.Command, cfg *config.Config, dryRun bool) error {
	opts, err := flags.BuildOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.DryRun = opts.DryRun || dryRun

	deps := release.Deps{
		Runner:   NewRunnerFn(opts.RepoPath, cmd.Bool("verbose")),
		FS:       NewFileSystemFn(),
		Spin:     tui.Spin,
		Reporter: release.ConsoleReporter{},
	}
	if opts.Confirm && !opts.DryRun && !opts.NoPush {
		if tui.IsInteractive() {
			deps.Confirmer = tui.NewPrompter()
		} else {
			printer.PrintWarning("--confirm needs an interactive terminal, the release will not be pushed")
			deps.Confirmer = tui.AutoConfirmer(false)
		}
	}

	releaser := release.New(opts, deps)
	if opts.DryRun {
		plan, err := releaser.Plan(ctx)
		if err != nil {
			return err
		}
		printPlan(plan, opts)
		return nil
	}

	printer.PrintBold(fmt.Sprintf("Releasing with %s (%s)", opts.Toolchain.Name, opts.Policy))
	res, err := releaser.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	if res.Pushed {
		printer.PrintSuccess(fmt.Sprintf("Released %s", printer.Badge(res.Tag())))
	} else {
		printer.PrintSuccess(fmt.Sprintf("Tagged %s locally", printer.Badge(res.Tag())))
	}
	return nil
}

func printPlan(plan *release.Plan, opts release.Options) {
	fmt.Println()
	printer.PrintBold("Release plan")
	printer.PrintKeyValue("constraint", plan.Constraint.String())
	printer.PrintKeyValue("policy", plan.Policy.String())
	printer.PrintKeyValue("previous", plan.Previous.String())
	printer.PrintKeyValue("release", plan.Target.String()+" ("+plan.Tag()+")")
	if plan.Escalate {
		printer.PrintKeyValue("next dev", plan.NextDev.String())
	} else {
		printer.PrintKeyValue("next dev", "skipped, next minor already released")
	}
	printer.PrintKeyValue("manifest", plan.Manifest)
	if opts.NoPush {
		printer.PrintKeyValue("push", "disabled")
	}

	fmt.Println()
	printer.PrintBold("Steps")
	for _, line := range plan.Commands {
		printer.PrintCommand(line)
	}
}
