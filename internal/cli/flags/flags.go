// Package flags defines the command-line flags shared by the release
// commands and turns them, together with the loaded configuration, into
// release options.
package flags

import (
	"fmt"

	"github.com/indaco/cutrelease/internal/config"
	"github.com/indaco/cutrelease/internal/release"
	"github.com/urfave/cli/v3"
)

// GlobalFlags are understood by every command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Repository to release (default: current directory)",
			Sources: cli.EnvVars(config.EnvRepo),
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to the configuration file (default: <repo>/" + config.FileName + ")",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Echo every external command",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	}
}

// ReleaseFlags configure how a release is computed and published.
func ReleaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "major",
			Aliases: []string{"M"},
			Usage:   "Release the next major version",
		},
		&cli.BoolFlag{
			Name:    "minor",
			Aliases: []string{"m"},
			Usage:   "Release the next minor version (default)",
		},
		&cli.BoolFlag{
			Name:    "patch",
			Aliases: []string{"p"},
			Usage:   "Release the next patch version",
		},
		&cli.StringFlag{
			Name:    "for",
			Aliases: []string{"f"},
			Usage:   "Base the release on the latest `X` or `X.Y` version (X.Y needs --patch)",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Check out this ref before releasing",
		},
		&cli.BoolFlag{
			Name:    "install",
			Aliases: []string{"i"},
			Usage:   "Install the released version locally",
		},
		&cli.BoolFlag{
			Name:    "no-push",
			Aliases: []string{"n"},
			Usage:   "Keep the release commit and tag local",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the release plan without changing anything",
		},
		&cli.BoolFlag{
			Name:  "confirm",
			Usage: "Ask before pushing",
		},
		&cli.BoolFlag{
			Name:  "annotate",
			Usage: "Create an annotated tag",
		},
		&cli.StringFlag{
			Name:  "manifest",
			Usage: "Manifest holding the version field (default: from the toolchain)",
		},
		&cli.StringFlag{
			Name:    "toolchain",
			Aliases: []string{"t"},
			Usage:   "Build toolchain profile (cargo, uv)",
			Sources: cli.EnvVars(config.EnvToolchain),
		},
	}
}

// Merge returns a copy of cfg with every flag the user set applied on top.
func Merge(cmd *cli.Command, cfg *config.Config) (*config.Config, error) {
	merged := *cfg

	var policies []string
	for _, name := range []string{"major", "minor", "patch"} {
		if cmd.Bool(name) {
			policies = append(policies, name)
		}
	}
	if len(policies) > 1 {
		return nil, fmt.Errorf("%w: --%s and --%s are mutually exclusive", config.ErrInvalidConfig, policies[0], policies[1])
	}
	if len(policies) == 1 {
		merged.Policy = policies[0]
	}

	stringFlags := map[string]*string{
		"repo":      &merged.Repo,
		"for":       &merged.Base,
		"branch":    &merged.Branch,
		"manifest":  &merged.Manifest,
		"toolchain": &merged.Toolchain,
	}
	for name, dst := range stringFlags {
		if cmd.IsSet(name) {
			*dst = cmd.String(name)
		}
	}

	boolFlags := map[string]*bool{
		"install":  &merged.Install,
		"no-push":  &merged.NoPush,
		"confirm":  &merged.Confirm,
		"annotate": &merged.Tag.Annotate,
	}
	for name, dst := range boolFlags {
		if cmd.IsSet(name) {
			*dst = cmd.Bool(name)
		}
	}
	return &merged, nil
}

// BuildOptions merges flags into cfg, validates the result and converts it
// to release options. Every error wraps config.ErrInvalidConfig.
func BuildOptions(cmd *cli.Command, cfg *config.Config) (release.Options, error) {
	merged, err := Merge(cmd, cfg)
	if err != nil {
		return release.Options{}, err
	}
	if err := config.Validate(merged); err != nil {
		return release.Options{}, err
	}

	policy, err := release.ParsePolicy(merged.Policy)
	if err != nil {
		return release.Options{}, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	profile, err := merged.Profile()
	if err != nil {
		return release.Options{}, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	return release.Options{
		Policy:       policy,
		Base:         merged.Base,
		RepoPath:     merged.Repo,
		StartRef:     merged.Branch,
		Install:      merged.Install,
		NoPush:       merged.NoPush,
		DryRun:       cmd.Bool("dry-run"),
		Confirm:      merged.Confirm,
		Annotate:     merged.Tag.Annotate,
		TagMessage:   merged.Tag.Message,
		ManifestPath: merged.Manifest,
		Toolchain:    profile,
		SyncFiles:    merged.SyncFiles,
	}, nil
}
