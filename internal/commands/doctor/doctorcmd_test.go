package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/indaco/cutrelease/internal/cli/flags"
	"github.com/indaco/cutrelease/internal/commands/releasecmd"
	"github.com/indaco/cutrelease/internal/config"
	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/pipeline"
	"github.com/indaco/cutrelease/internal/printer"
	"github.com/indaco/cutrelease/internal/syncfiles"
	"github.com/indaco/cutrelease/internal/testutils"
	"github.com/indaco/cutrelease/internal/toolchain"
	"github.com/urfave/cli/v3"
)

type env struct {
	runner *pipeline.MockRunner
	fs     *core.MockFileSystem
	found  map[string]bool
}

func setup(t *testing.T) *env {
	t.Helper()
	printer.SetNoColor(true)

	e := &env{
		runner: pipeline.NewMockRunner(),
		fs:     core.NewMockFileSystem(),
		found:  map[string]bool{"git": true, "cargo": true},
	}
	e.fs.SetFile("Cargo.toml", []byte("[package]\nversion = \"1.1.0-dev\"\n"))

	origRunner, origFS, origLook := releasecmd.NewRunnerFn, releasecmd.NewFileSystemFn, LookPathFn
	releasecmd.NewRunnerFn = func(string, bool) pipeline.Runner { return e.runner }
	releasecmd.NewFileSystemFn = func() core.FileSystem { return e.fs }
	LookPathFn = func(name string) (string, error) {
		if e.found[name] {
			return "/usr/bin/" + name, nil
		}
		return "", fmt.Errorf("%s: not found", name)
	}
	t.Cleanup(func() {
		releasecmd.NewRunnerFn, releasecmd.NewFileSystemFn, LookPathFn = origRunner, origFS, origLook
	})
	return e
}

func runDoctorCmd(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	app := &cli.Command{
		Name:     "cutrelease",
		Flags:    append(flags.GlobalFlags(), flags.ReleaseFlags()...),
		Commands: []*cli.Command{Run(cfg)},
	}
	var err error
	out := testutils.CaptureStdout(func() {
		err = app.Run(context.Background(), append([]string{"cutrelease", "doctor"}, args...))
	})
	return out, err
}

func TestDoctor_AllGood(t *testing.T) {
	e := setup(t)

	out, err := runDoctorCmd(t, config.Default())
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	for _, want := range []string{"Ready to release", "git (/usr/bin/git)", "Cargo.toml declares 1.1.0-dev", "working tree clean"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !e.runner.Called("git status --porcelain=v2") {
		t.Error("expected a status check")
	}
}

func TestDoctor_Failures(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(e *env, cfg *config.Config)
		want    string
	}{
		{
			name:    "missing tool",
			prepare: func(e *env, _ *config.Config) { delete(e.found, "cargo") },
			want:    "cargo not found on PATH",
		},
		{
			name:    "missing manifest",
			prepare: func(e *env, cfg *config.Config) { cfg.Manifest = "crates/app/Cargo.toml" },
			want:    "crates/app/Cargo.toml",
		},
		{
			name:    "no version field",
			prepare: func(e *env, _ *config.Config) { e.fs.SetFile("Cargo.toml", []byte("[package]\nname = \"x\"\n")) },
			want:    "version field not found",
		},
		{
			name:    "unreadable sync file",
			prepare: func(_ *env, cfg *config.Config) { cfg.SyncFiles = []syncfiles.File{{Path: "package.json"}} },
			want:    "package.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := setup(t)
			cfg := config.Default()
			tt.prepare(e, cfg)

			out, err := runDoctorCmd(t, cfg)
			if !errors.Is(err, ErrChecksFailed) {
				t.Fatalf("expected ErrChecksFailed, got %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestDoctor_InvalidConfigSkipsRepositoryChecks(t *testing.T) {
	e := setup(t)
	cfg := config.Default()
	cfg.Policy = "huge"

	out, err := runDoctorCmd(t, cfg)
	if !errors.Is(err, ErrChecksFailed) {
		t.Fatalf("expected ErrChecksFailed, got %v", err)
	}
	if len(e.runner.Calls()) != 0 {
		t.Errorf("no git command should run, got %q", e.runner.Calls())
	}
	if !strings.Contains(out, "Policy") {
		t.Errorf("expected the policy error in output:\n%s", out)
	}
}

func TestDoctor_Warnings(t *testing.T) {
	e := setup(t)
	e.runner.On("git status --porcelain=v2", pipeline.Result{Success: true, Stdout: "1 .M N... 100644 100644 100644 abc abc src/lib.rs\n"})
	e.fs.SetFile("VERSION", []byte("1.0.0\n"))
	cfg := config.Default()
	cfg.SyncFiles = []syncfiles.File{{Path: "VERSION"}}

	out, err := runDoctorCmd(t, cfg)
	if err != nil {
		t.Fatalf("warnings must not fail doctor: %v", err)
	}
	for _, want := range []string{"VERSION has 1.0.0, manifest has 1.1.0-dev", "1 uncommitted change(s)", "0 error(s), 2 warning(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckTools_DeduplicatesBinaries(t *testing.T) {
	setup(t)
	profile, _ := toolchain.Builtin("uv")

	results := checkTools(profile)
	if len(results) != 2 {
		t.Fatalf("expected git and uv, got %+v", results)
	}
	if results[1].Passed || !strings.Contains(results[1].Message, "uv") {
		t.Errorf("uv should be reported missing: %+v", results[1])
	}
}
