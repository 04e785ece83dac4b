package release

import (
	"fmt"
	"path/filepath"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/syncfiles"
	"github.com/indaco/cutrelease/internal/tagmanager"
	"github.com/indaco/cutrelease/internal/toolchain"
)

// Options configures one release run.
type Options struct {
	Policy Policy

	// Base pins the resolved release: "" (any), "X" or "X.Y" (patch only).
	Base string

	// RepoPath is the working directory of the release; "" is the current one.
	RepoPath string

	// StartRef is checked out before anything else when set.
	StartRef string

	Install bool
	NoPush  bool

	// DryRun stops after computing the plan. Nothing is checked out, written,
	// committed, tagged or pushed.
	DryRun bool

	// Confirm asks before publishing.
	Confirm bool

	Annotate   bool
	TagMessage string

	// ManifestPath defaults to the toolchain profile's manifest. Relative
	// paths are resolved against RepoPath.
	ManifestPath string

	Toolchain toolchain.Profile
	SyncFiles []syncfiles.File
}

// ValidateOptions checks the options that can be rejected before any side
// effect: the policy, the base constraint and the toolchain commands.
func ValidateOptions(opts Options) error {
	if !opts.Policy.valid() {
		return fmt.Errorf("%w: unknown release policy %s", core.ErrFormat, opts.Policy)
	}
	if _, err := tagmanager.ParseConstraint(opts.Base, opts.Policy == Patch); err != nil {
		return err
	}
	if err := opts.Toolchain.Validate(); err != nil {
		return err
	}
	if opts.ManifestFile() == "" {
		return fmt.Errorf("no manifest configured for toolchain %q", opts.Toolchain.Name)
	}
	for _, f := range opts.SyncFiles {
		if f.Path == "" {
			return fmt.Errorf("sync file with empty path")
		}
		if r := f.Resolved(); !r.Format.IsValid() {
			return fmt.Errorf("%w: unknown sync format %q for %q", core.ErrFormat, r.Format, f.Path)
		}
	}
	return nil
}

// ManifestFile is the manifest path, defaulted from the toolchain and joined
// with RepoPath.
func (o Options) ManifestFile() string {
	path := o.ManifestPath
	if path == "" {
		path = o.Toolchain.Manifest
	}
	if path == "" {
		return ""
	}
	return o.inRepo(path)
}

func (o Options) inRepo(path string) string {
	if filepath.IsAbs(path) || o.RepoPath == "" {
		return path
	}
	return filepath.Join(o.RepoPath, path)
}

// SyncFilePaths returns the sync files with their paths joined with RepoPath.
func (o Options) SyncFilePaths() []syncfiles.File {
	files := make([]syncfiles.File, len(o.SyncFiles))
	for i, f := range o.SyncFiles {
		f.Path = o.inRepo(f.Path)
		files[i] = f
	}
	return files
}
