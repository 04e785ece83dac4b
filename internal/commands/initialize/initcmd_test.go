package initialize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/cutrelease/internal/cli/flags"
	"github.com/indaco/cutrelease/internal/config"
	"github.com/indaco/cutrelease/internal/discovery"
	"github.com/indaco/cutrelease/internal/printer"
	"github.com/indaco/cutrelease/internal/syncfiles"
	"github.com/indaco/cutrelease/internal/testutils"
	"github.com/urfave/cli/v3"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runInitCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CI", "1")
	printer.SetNoColor(true)
	app := &cli.Command{
		Name:     "cutrelease",
		Flags:    flags.GlobalFlags(),
		Commands: []*cli.Command{Run()},
	}
	var err error
	out := testutils.CaptureStdout(func() {
		err = app.Run(context.Background(), append([]string{"cutrelease"}, args...))
	})
	return out, err
}

func loadConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	cfg, err := config.Load(config.PathIn(dir), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestInit_WritesDiscoveredFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"pyproject.toml": "[project]\nname = \"demo\"\nversion = \"0.3.0\"\n",
		"package.json":   `{"name":"demo","version":"0.3.0"}`,
		"VERSION":        "0.2.0\n",
	})

	out, err := runInitCmd(t, "--repo", dir, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg := loadConfig(t, dir)
	if cfg.Toolchain != "uv" {
		t.Errorf("toolchain = %q, want uv", cfg.Toolchain)
	}
	want := []syncfiles.File{
		{Path: "package.json", Format: syncfiles.FormatJSON, Field: "version"},
		{Path: "VERSION", Format: syncfiles.FormatRaw},
	}
	if len(cfg.SyncFiles) != len(want) {
		t.Fatalf("sync files = %+v, want %+v", cfg.SyncFiles, want)
	}
	for i := range want {
		if cfg.SyncFiles[i] != want[i] {
			t.Errorf("sync file %d = %+v, want %+v", i, cfg.SyncFiles[i], want[i])
		}
	}
	if !strings.Contains(out, "VERSION has 0.2.0") {
		t.Errorf("expected a mismatch warning:\n%s", out)
	}
	if err := config.Validate(cfg); err != nil {
		t.Errorf("generated config does not validate: %v", err)
	}
}

func TestInit_ExistingConfig(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Cargo.toml":    "[package]\nversion = \"1.0.0\"\n",
		config.FileName: "policy: patch\n",
	})

	_, err := runInitCmd(t, "--repo", dir, "init")
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}

	if _, err := runInitCmd(t, "--repo", dir, "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	cfg := loadConfig(t, dir)
	if cfg.Policy != "minor" || cfg.Toolchain != "cargo" {
		t.Errorf("config not overwritten: %+v", cfg)
	}
}

func TestInit_NoManifest(t *testing.T) {
	dir := writeFiles(t, map[string]string{"README.md": "hi\n"})

	out, err := runInitCmd(t, "--repo", dir, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "defaulting to the cargo toolchain") {
		t.Errorf("expected a warning:\n%s", out)
	}
	if cfg := loadConfig(t, dir); cfg.Toolchain != "cargo" || len(cfg.SyncFiles) != 0 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestInit_SelectionAndYes(t *testing.T) {
	files := map[string]string{
		"Cargo.toml":   "[package]\nversion = \"1.0.0\"\n",
		"package.json": `{"version":"1.0.0"}`,
		"Chart.yaml":   "name: demo\nversion: 1.0.0\n",
	}

	orig := SelectFn
	t.Cleanup(func() { SelectFn = orig })
	calls := 0
	SelectFn = func(_ context.Context, r *discovery.Result) ([]discovery.Source, error) {
		calls++
		return r.SyncCandidates[:1], nil
	}

	dir := writeFiles(t, files)
	if _, err := runInitCmd(t, "--repo", dir, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if got := loadConfig(t, dir).SyncFiles; len(got) != 1 || got[0].Path != "package.json" {
		t.Errorf("sync files = %+v, want package.json only", got)
	}

	dir = writeFiles(t, files)
	if _, err := runInitCmd(t, "--repo", dir, "init", "--yes"); err != nil {
		t.Fatalf("init --yes: %v", err)
	}
	if got := loadConfig(t, dir).SyncFiles; len(got) != 2 {
		t.Errorf("--yes should keep every candidate, got %+v", got)
	}
	if calls != 1 {
		t.Errorf("SelectFn called %d times, want 1", calls)
	}
}

func TestSelectCandidates_NonInteractiveKeepsAll(t *testing.T) {
	t.Setenv("CI", "1")
	r := &discovery.Result{SyncCandidates: []discovery.Source{{Path: "a"}, {Path: "b"}}}

	got, err := selectCandidates(context.Background(), r)
	if err != nil || len(got) != 2 {
		t.Errorf("selectCandidates = %+v, %v", got, err)
	}
}
