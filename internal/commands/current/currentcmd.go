// Package current implements the "current" command.
package current

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/cutrelease/internal/cli/flags"
	"github.com/indaco/cutrelease/internal/commands/releasecmd"
	"github.com/indaco/cutrelease/internal/config"
	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/git"
	"github.com/indaco/cutrelease/internal/manifest"
	"github.com/indaco/cutrelease/internal/printer"
	"github.com/indaco/cutrelease/internal/release"
	"github.com/indaco/cutrelease/internal/syncfiles"
	"github.com/indaco/cutrelease/internal/tagmanager"
	"github.com/urfave/cli/v3"
)

// Run returns the "current" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "current",
		Usage:     "Show the latest release tag and the version in the manifest",
		UsageText: "cutrelease current [--for X[.Y]] [--patch]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCurrent(ctx, cmd, cfg)
		},
	}
}

func runCurrent(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	opts, err := flags.BuildOptions(cmd, cfg)
	if err != nil {
		return err
	}
	fs := releasecmd.NewFileSystemFn()
	repo := git.NewRepo(releasecmd.NewRunnerFn(opts.RepoPath, cmd.Bool("verbose")))

	c, err := tagmanager.ParseConstraint(opts.Base, opts.Policy == release.Patch)
	if err != nil {
		return err
	}
	latest, err := tagmanager.NewManager(nil, repo).Latest(ctx, c)
	switch {
	case errors.Is(err, core.ErrNoMatchingVersion):
		printer.PrintKeyValue("release", printer.Faint("none"))
	case err != nil:
		return err
	default:
		printer.PrintKeyValue("release", tagmanager.FormatTagName(latest))
	}

	manifestPath := opts.ManifestFile()
	v, err := manifest.NewPatcher(fs, manifestPath).Current(ctx)
	if err != nil {
		return err
	}
	printer.PrintKeyValue("manifest", fmt.Sprintf("%s (%s)", v, manifestPath))

	reader := syncfiles.NewReader(fs)
	for _, f := range opts.SyncFilePaths() {
		got, err := reader.Read(ctx, f)
		switch {
		case err != nil:
			printer.PrintKeyValue("sync", printer.Error(err.Error()))
		case got != v:
			printer.PrintKeyValue("sync", printer.Warning(fmt.Sprintf("%s (%s, differs)", got, f.Path)))
		default:
			printer.PrintKeyValue("sync", fmt.Sprintf("%s (%s)", got, f.Path))
		}
	}
	return nil
}
