package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/cutrelease/internal/cli/flags"
	"github.com/indaco/cutrelease/internal/commands/current"
	"github.com/indaco/cutrelease/internal/commands/doctor"
	"github.com/indaco/cutrelease/internal/commands/initialize"
	"github.com/indaco/cutrelease/internal/commands/releasecmd"
	"github.com/indaco/cutrelease/internal/config"
	"github.com/indaco/cutrelease/internal/printer"
	"github.com/indaco/cutrelease/internal/tui"
	"github.com/indaco/cutrelease/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command. The Before hook loads the
// configuration file into cfg, so every subcommand sees the same values.
// Running the root command without a subcommand cuts a release.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "cutrelease",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Cut, tag and publish releases of cargo and uv projects",
		UsageText:             "cutrelease [--major|--minor|--patch] [--for X[.Y]] [--flags] [command]",
		EnableShellCompletion: true,
		Flags:                 append(flags.GlobalFlags(), flags.ReleaseFlags()...),
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool("no-color"))
			return ctx, loadConfig(cmd, cfg)
		},
		Action: releasecmd.Action(cfg, false),
		Commands: []*urfavecli.Command{
			releasecmd.Run(cfg),
			releasecmd.Plan(cfg),
			current.Run(cfg),
			doctor.Run(cfg),
			initialize.Run(),
		},
	}
}

// loadConfig reads the configuration for the selected repository and applies
// the environment on top. An explicit --config must exist.
func loadConfig(cmd *urfavecli.Command, cfg *config.Config) error {
	path, required := cmd.String("config"), true
	if path == "" {
		path, required = config.PathIn(cmd.String("repo")), false
	}

	loaded, err := config.LoadFn(path, required)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(loaded, os.Getenv); err != nil {
		return err
	}
	*cfg = *loaded

	if cfg.Theme != "" {
		tui.SetTheme(cfg.Theme)
	}
	return nil
}
