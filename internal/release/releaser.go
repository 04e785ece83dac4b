// Package release drives the release workflow: preconditions, version
// resolution, manifest update, build, commit and tag, post-release bump and
// publication. Every stage runs in order and the first failure stops the run
// with a *StageError. Nothing is rolled back.
package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/git"
	"github.com/indaco/cutrelease/internal/manifest"
	"github.com/indaco/cutrelease/internal/pipeline"
	"github.com/indaco/cutrelease/internal/precheck"
	"github.com/indaco/cutrelease/internal/semver"
	"github.com/indaco/cutrelease/internal/syncfiles"
	"github.com/indaco/cutrelease/internal/tagmanager"
	"github.com/indaco/cutrelease/internal/toolchain"
)

// Confirmer asks a yes/no question before publishing.
type Confirmer interface {
	Confirm(ctx context.Context, title, description string) (bool, error)
}

// Deps are the collaborators of a Releaser.
type Deps struct {
	Runner pipeline.Runner
	FS     core.FileSystem

	// Confirmer is consulted when Options.Confirm is set. A nil Confirmer
	// declines.
	Confirmer Confirmer

	// Spin decorates toolchain steps; nil runs them plainly.
	Spin toolchain.SpinFunc

	// Reporter defaults to silence.
	Reporter Reporter
}

// Releaser runs one release.
type Releaser struct {
	opts      Options
	fs        core.FileSystem
	repo      *git.Repo
	checker   *precheck.Checker
	tags      *tagmanager.Manager
	patcher   *manifest.Patcher
	sync      *syncfiles.Writer
	build     *toolchain.Runner
	confirmer Confirmer
	report    Reporter
}

// New wires a Releaser from opts and deps.
func New(opts Options, deps Deps) *Releaser {
	repo := git.NewRepo(deps.Runner)
	tagCfg := tagmanager.DefaultConfig()
	tagCfg.Annotate = opts.Annotate
	if opts.TagMessage != "" {
		tagCfg.MessageTemplate = opts.TagMessage
	}

	report := deps.Reporter
	if report == nil {
		report = nopReporter{}
	}

	return &Releaser{
		opts:      opts,
		fs:        deps.FS,
		repo:      repo,
		checker:   precheck.NewChecker(repo),
		tags:      tagmanager.NewManager(tagCfg, repo),
		patcher:   manifest.NewPatcher(deps.FS, opts.ManifestFile()),
		sync:      syncfiles.NewWriter(deps.FS),
		build:     toolchain.NewRunner(deps.Runner, opts.Toolchain, deps.Spin),
		confirmer: deps.Confirmer,
		report:    report,
	}
}

// Plan runs the read-only stages and returns what Run would do. The start
// ref is not checked out.
func (r *Releaser) Plan(ctx context.Context) (*Plan, error) {
	return r.prepare(ctx, true)
}

// Run performs the release. With Options.DryRun it behaves like Plan.
func (r *Releaser) Run(ctx context.Context) (*Result, error) {
	plan, err := r.prepare(ctx, r.opts.DryRun)
	if err != nil {
		return nil, err
	}
	res := &Result{Plan: *plan, DryRun: r.opts.DryRun}
	if r.opts.DryRun {
		return res, nil
	}

	if err := r.apply(ctx, plan.Target); err != nil {
		return res, stageErr(StageApply, err)
	}

	if err := r.commitAndTag(ctx, plan.Target); err != nil {
		return res, stageErr(StageCommit, err)
	}

	if r.opts.Install {
		if err := r.build.Install(ctx); err != nil {
			return res, stageErr(StageInstall, err)
		}
		res.Installed = true
		r.report.Step("Installed %s", plan.Target)
	}

	if plan.Escalate {
		if err := r.escalate(ctx, plan.NextDev); err != nil {
			return res, stageErr(StageEscalate, err)
		}
		res.Escalated = true
		r.report.Step("Bumped development version to %s", plan.NextDev)
	} else {
		r.report.Skip("%s already exists, no post-release bump", tagmanager.FormatTagName(semver.IncrementMinor(plan.Target)))
	}

	if r.opts.NoPush {
		r.report.Skip("Push disabled, %s stays local", plan.Tag())
		return res, nil
	}
	if err := r.publish(ctx, plan.Target); err != nil {
		return res, stageErr(StagePublish, err)
	}
	res.Pushed = true
	r.report.Step("Pushed branch and %s", plan.Tag())
	return res, nil
}

func (r *Releaser) prepare(ctx context.Context, dryRun bool) (*Plan, error) {
	if err := ValidateOptions(r.opts); err != nil {
		return nil, stageErr(StageSetup, err)
	}
	if err := r.setup(ctx, dryRun); err != nil {
		return nil, stageErr(StageSetup, err)
	}

	if err := r.checker.EnsureClean(ctx); err != nil {
		return nil, stageErr(StageValidate, err)
	}
	if r.opts.NoPush {
		r.report.Step("Repository is clean")
	} else {
		if err := r.checker.EnsureUpToDate(ctx); err != nil {
			return nil, stageErr(StageValidate, err)
		}
		r.report.Step("Repository is clean and up to date")
	}

	constraint, err := tagmanager.ParseConstraint(r.opts.Base, r.opts.Policy == Patch)
	if err != nil {
		return nil, stageErr(StageResolve, err)
	}
	releases, err := r.tags.Releases(ctx)
	if err != nil {
		return nil, stageErr(StageResolve, err)
	}
	latest, err := releases.Latest(constraint)
	if err != nil {
		return nil, stageErr(StageResolve, err)
	}
	r.report.Step("Latest release matching %s is %s", constraint, tagmanager.FormatTagName(latest))

	plan, err := r.compute(ctx, constraint, latest, releases)
	if err != nil {
		return nil, stageErr(StageCompute, err)
	}
	return plan, nil
}

func (r *Releaser) setup(ctx context.Context, dryRun bool) error {
	if r.opts.RepoPath != "" {
		info, err := r.fs.Stat(ctx, r.opts.RepoPath)
		if err != nil {
			return fmt.Errorf("repository path %q: %w", r.opts.RepoPath, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("repository path %q is not a directory", r.opts.RepoPath)
		}
	}
	if r.opts.StartRef == "" || dryRun {
		return nil
	}
	if err := r.checker.Checkout(ctx, r.opts.StartRef); err != nil {
		return err
	}
	r.report.Step("Checked out %s", r.opts.StartRef)
	return nil
}

func (r *Releaser) compute(ctx context.Context, c tagmanager.Constraint, latest semver.SemVersion, releases tagmanager.ReleaseSet) (*Plan, error) {
	target, err := r.opts.Policy.Next(latest)
	if err != nil {
		return nil, err
	}
	if releases.Contains(target) {
		return nil, fmt.Errorf("%w: %s", core.ErrVersionAlreadyReleased, tagmanager.FormatTagName(target))
	}

	nextMinor := semver.IncrementMinor(target)
	plan := &Plan{
		Constraint: c,
		Policy:     r.opts.Policy,
		Previous:   latest,
		Target:     target,
		NextDev:    semver.WithPreRelease(nextMinor, "dev"),
		Escalate:   !releases.Contains(nextMinor),
		Manifest:   r.patcher.Path(),
	}

	if err := r.patcher.Check(ctx); err != nil {
		return nil, err
	}
	if err := r.sync.CheckAll(ctx, r.opts.SyncFilePaths(), target.String()); err != nil {
		return nil, err
	}
	plan.Commands = r.plannedCommands(*plan)
	return plan, nil
}

func (r *Releaser) apply(ctx context.Context, target semver.SemVersion) error {
	if err := r.writeVersion(ctx, target); err != nil {
		return err
	}
	if err := r.patcher.Verify(ctx, target); err != nil {
		if !errors.Is(err, manifest.ErrVerifyMismatch) {
			return err
		}
		r.report.Warn("%v", err)
	}
	r.report.Step("Set version %s in %s", target, r.patcher.Path())

	if err := r.build.Build(ctx); err != nil {
		return err
	}
	r.report.Step("Resynced, linted and formatted with %s", r.build.Profile().Name)
	return nil
}

func (r *Releaser) commitAndTag(ctx context.Context, target semver.SemVersion) error {
	if err := r.repo.CommitAll(ctx, releaseMessage(target)); err != nil {
		return err
	}
	if err := r.tags.CreateTag(ctx, target); err != nil {
		return err
	}
	r.report.Step("Committed and tagged %s", tagmanager.FormatTagName(target))
	return nil
}

// escalate moves the manifest to the next development version. It only runs
// when the next minor release is not tagged yet, so re-running a release on
// an older line never bumps past an existing release.
func (r *Releaser) escalate(ctx context.Context, nextDev semver.SemVersion) error {
	if err := r.writeVersion(ctx, nextDev); err != nil {
		return err
	}
	if err := r.build.Resync(ctx); err != nil {
		return err
	}
	return r.repo.CommitAll(ctx, postReleaseMessage)
}

func (r *Releaser) publish(ctx context.Context, target semver.SemVersion) error {
	if r.opts.Confirm {
		ok := false
		if r.confirmer != nil {
			var err error
			title := fmt.Sprintf("Push %s to origin?", tagmanager.FormatTagName(target))
			ok, err = r.confirmer.Confirm(ctx, title, "The release commit and tag are ready locally.")
			if err != nil {
				return err
			}
		}
		if !ok {
			return ErrPublishDeclined
		}
	}

	if err := r.repo.Push(ctx); err != nil {
		return err
	}
	return r.tags.PushTag(ctx, target)
}

func (r *Releaser) writeVersion(ctx context.Context, v semver.SemVersion) error {
	if err := r.patcher.Apply(ctx, v); err != nil {
		return err
	}
	return r.sync.WriteAll(ctx, r.opts.SyncFilePaths(), v.String())
}
