// Package doctor implements the "doctor" command, which checks that a
// repository is ready to be released without changing anything.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/indaco/cutrelease/internal/cli/flags"
	"github.com/indaco/cutrelease/internal/commands/releasecmd"
	"github.com/indaco/cutrelease/internal/config"
	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/git"
	"github.com/indaco/cutrelease/internal/manifest"
	"github.com/indaco/cutrelease/internal/precheck"
	"github.com/indaco/cutrelease/internal/printer"
	"github.com/indaco/cutrelease/internal/release"
	"github.com/indaco/cutrelease/internal/syncfiles"
	"github.com/indaco/cutrelease/internal/toolchain"
	"github.com/urfave/cli/v3"
)

// ErrChecksFailed is returned when at least one check fails.
var ErrChecksFailed = errors.New("doctor checks failed")

// LookPathFn finds executables on PATH.
var LookPathFn = exec.LookPath

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Check the configuration, tools and repository before releasing",
		UsageText: "cutrelease doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctor(ctx, cmd, cfg)
		},
	}
}

func runDoctor(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	merged, err := flags.Merge(cmd, cfg)
	if err != nil {
		return err
	}

	results := config.Check(merged)
	if !config.HasErrors(results) {
		opts, err := flags.BuildOptions(cmd, cfg)
		if err != nil {
			return err
		}
		fs := releasecmd.NewFileSystemFn()
		repo := git.NewRepo(releasecmd.NewRunnerFn(opts.RepoPath, cmd.Bool("verbose")))

		results = append(results, checkTools(opts.Toolchain)...)
		results = append(results, checkFiles(ctx, fs, opts)...)
		results = append(results, checkRepository(ctx, repo))
	}

	printResults(results)
	if n := config.ErrorCount(results); n > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrChecksFailed, n)
	}
	return nil
}

func checkTools(profile toolchain.Profile) []config.ValidationResult {
	seen := map[string]bool{}
	tools := []string{"git"}
	for _, step := range [][][]string{profile.Resync, profile.Lint, profile.Format, profile.Install} {
		for _, argv := range step {
			if len(argv) > 0 && !seen[argv[0]] {
				seen[argv[0]] = true
				tools = append(tools, argv[0])
			}
		}
	}

	var results []config.ValidationResult
	for _, tool := range tools {
		path, err := LookPathFn(tool)
		if err != nil {
			results = append(results, config.ValidationResult{Category: "Tools", Message: fmt.Sprintf("%s not found on PATH", tool)})
			continue
		}
		results = append(results, config.ValidationResult{Category: "Tools", Passed: true, Message: fmt.Sprintf("%s (%s)", tool, path)})
	}
	return results
}

func checkFiles(ctx context.Context, fs core.FileSystem, opts release.Options) []config.ValidationResult {
	manifestPath := opts.ManifestFile()

	version, err := manifest.NewPatcher(fs, manifestPath).Current(ctx)
	if err != nil {
		return []config.ValidationResult{{Category: "Manifest", Message: err.Error()}}
	}
	results := []config.ValidationResult{{Category: "Manifest", Passed: true, Message: fmt.Sprintf("%s declares %s", manifestPath, version)}}

	reader := syncfiles.NewReader(fs)
	for _, f := range opts.SyncFilePaths() {
		got, err := reader.Read(ctx, f)
		switch {
		case err != nil:
			results = append(results, config.ValidationResult{Category: "Sync files", Message: err.Error()})
		case got != version:
			results = append(results, config.ValidationResult{
				Category: "Sync files",
				Message:  fmt.Sprintf("%s has %s, manifest has %s", f.Path, got, version),
				Warning:  true,
			})
		default:
			results = append(results, config.ValidationResult{Category: "Sync files", Passed: true, Message: fmt.Sprintf("%s in sync", f.Path)})
		}
	}
	return results
}

func checkRepository(ctx context.Context, repo *git.Repo) config.ValidationResult {
	err := precheck.NewChecker(repo).EnsureClean(ctx)
	var dirty *precheck.DirtyError
	switch {
	case err == nil:
		return config.ValidationResult{Category: "Repository", Passed: true, Message: "working tree clean"}
	case errors.As(err, &dirty):
		return config.ValidationResult{
			Category: "Repository",
			Message:  fmt.Sprintf("%d uncommitted change(s), commit or stash them before releasing", len(dirty.Entries)),
			Warning:  true,
		}
	default:
		return config.ValidationResult{Category: "Repository", Message: err.Error()}
	}
}

func printResults(results []config.ValidationResult) {
	category := ""
	for _, r := range results {
		if r.Category != category {
			category = r.Category
			fmt.Println()
			printer.PrintBold(category)
		}
		switch {
		case r.Passed:
			fmt.Printf("  %s %s\n", printer.Success("✓"), r.Message)
		case r.Warning:
			fmt.Printf("  %s %s\n", printer.Warning("!"), r.Message)
		default:
			fmt.Printf("  %s %s\n", printer.Error("✗"), r.Message)
		}
	}

	fmt.Println()
	errs, warns := config.ErrorCount(results), config.WarningCount(results)
	summary := fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
	switch {
	case errs > 0:
		printer.PrintError(summary)
	case warns > 0:
		printer.PrintWarning(summary)
	default:
		printer.PrintSuccess("Ready to release")
	}
}
