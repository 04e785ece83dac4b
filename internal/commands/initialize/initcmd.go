// Package initialize implements the "init" command, which writes a
// .cutrelease.yaml for the files discovered in the repository.
package initialize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/indaco/cutrelease/internal/commands/releasecmd"
	"github.com/indaco/cutrelease/internal/config"
	"github.com/indaco/cutrelease/internal/discovery"
	"github.com/indaco/cutrelease/internal/printer"
	"github.com/indaco/cutrelease/internal/syncfiles"
	"github.com/indaco/cutrelease/internal/tui"
	"github.com/urfave/cli/v3"
)

// ErrConfigExists is returned when the configuration file already exists
// and --force was not given.
var ErrConfigExists = errors.New("configuration file already exists")

// SelectFn picks the sync files to keep among the discovered candidates.
// It defaults to a prompt on interactive terminals and keeps every
// candidate otherwise.
var SelectFn = selectCandidates

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create " + config.FileName + " from the manifests found in the repository",
		UsageText: "cutrelease init [--force] [--yes]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Keep every discovered file without prompting",
			},
		},
		Action: runInit,
	}
}

func runInit(ctx context.Context, cmd *cli.Command) error {
	repo := cmd.String("repo")
	path := cmd.String("config")
	if path == "" {
		path = config.PathIn(repo)
	}
	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	root := repo
	if root == "" {
		root = "."
	}
	result, err := discovery.NewService(releasecmd.NewFileSystemFn()).Discover(ctx, root)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	cfg := config.Default()
	if result.Manifest == nil {
		printer.PrintWarning(fmt.Sprintf("No Cargo.toml or pyproject.toml found, defaulting to the %s toolchain", cfg.Toolchain))
	} else {
		cfg.Toolchain = result.Toolchain()
		printer.PrintStep("Found %s at version %s", result.Manifest.Description, result.Manifest.Version)
	}

	candidates := result.SyncCandidates
	if len(candidates) > 0 && !cmd.Bool("yes") {
		if candidates, err = SelectFn(ctx, result); err != nil {
			return err
		}
	}
	for _, c := range candidates {
		cfg.SyncFiles = append(cfg.SyncFiles, c.File())
		printer.PrintStep("Syncing %s (%s)", c.Path, c.Version)
	}
	for _, m := range result.Mismatches() {
		if slices.ContainsFunc(cfg.SyncFiles, func(f syncfiles.File) bool { return f.Path == m.Source }) {
			printer.PrintWarning(fmt.Sprintf("%s has %s, the next release will set it to the manifest version", m.Source, m.Actual))
		}
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}
	printer.PrintSuccess(fmt.Sprintf("Created %s", path))
	return nil
}

func selectCandidates(ctx context.Context, result *discovery.Result) ([]discovery.Source, error) {
	if !tui.IsInteractive() {
		return result.SyncCandidates, nil
	}

	options := make([]tui.Option, len(result.SyncCandidates))
	for i, c := range result.SyncCandidates {
		options[i] = tui.Option{
			Label:    fmt.Sprintf("%s (%s)", c.Description, c.Version),
			Value:    c.Path,
			Selected: true,
		}
	}
	chosen, err := tui.NewPrompter().MultiSelect(ctx, "Files to keep in sync", "The release writes its version into each selected file", options)
	if err != nil {
		return nil, err
	}

	var kept []discovery.Source
	for _, c := range result.SyncCandidates {
		if slices.Contains(chosen, c.Path) {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
