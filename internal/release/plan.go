package release

import (
	"fmt"
	"strings"

	"github.com/indaco/cutrelease/internal/semver"
	"github.com/indaco/cutrelease/internal/tagmanager"
)

// Plan is what a release will do, computed before any mutation.
type Plan struct {
	Constraint tagmanager.Constraint
	Policy     Policy

	// Previous is the latest release matching Constraint.
	Previous semver.SemVersion
	Target   semver.SemVersion

	// NextDev is the next minor version with the "dev" pre-release label.
	NextDev semver.SemVersion

	// Escalate is false when a tag for the next minor version already exists.
	Escalate bool

	Manifest string
	Commands []string
}

// Tag is the release tag name of Target.
func (p Plan) Tag() string {
	return tagmanager.FormatTagName(p.Target)
}

// Result is the outcome of a release run.
type Result struct {
	Plan

	DryRun    bool
	Installed bool
	Escalated bool
	Pushed    bool
}

func releaseMessage(v semver.SemVersion) string {
	return fmt.Sprintf("Release version %s.", v)
}

const postReleaseMessage = "Post-release."

func (r *Releaser) plannedCommands(p Plan) []string {
	var cmds []string
	add := func(format string, a ...any) { cmds = append(cmds, fmt.Sprintf(format, a...)) }

	if r.opts.StartRef != "" {
		add("git checkout %s", r.opts.StartRef)
	}
	add("write %s version %s", p.Manifest, p.Target)
	for _, f := range r.opts.SyncFilePaths() {
		add("write %s version %s", f.Path, p.Target)
	}
	cmds = append(cmds, r.build.BuildCommands()...)
	add("git commit -am %q", releaseMessage(p.Target))
	if r.opts.Annotate {
		add("git tag -a %s -m %q", p.Tag(), r.tags.FormatTagMessage(p.Target))
	} else {
		add("git tag %s", p.Tag())
	}
	if r.opts.Install {
		cmds = append(cmds, joinAll(r.build.Profile().Install)...)
	}
	if p.Escalate {
		add("write %s version %s", p.Manifest, p.NextDev)
		for _, f := range r.opts.SyncFilePaths() {
			add("write %s version %s", f.Path, p.NextDev)
		}
		cmds = append(cmds, joinAll(r.build.Profile().Resync)...)
		add("git commit -am %q", postReleaseMessage)
	}
	if !r.opts.NoPush {
		add("git push")
		add("git push origin %s", p.Tag())
	}
	return cmds
}

func joinAll(cmds [][]string) []string {
	out := make([]string, len(cmds))
	for i, argv := range cmds {
		out[i] = strings.Join(argv, " ")
	}
	return out
}
