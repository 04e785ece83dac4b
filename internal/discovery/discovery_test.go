package discovery

import (
	"context"
	"reflect"
	"testing"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/syncfiles"
)

func TestDiscover(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/repo/Cargo.toml", []byte("[package]\nname = \"x\"\nversion = \"1.2.0-dev\"\n"))
	fs.SetFile("/repo/pyproject.toml", []byte("[project]\nversion = \"1.2.0-dev\"\n"))
	fs.SetFile("/repo/package.json", []byte(`{"version": "1.1.0"}`))
	fs.SetFile("/repo/Chart.yaml", []byte("version: not-a-version\n"))
	fs.SetFile("/repo/VERSION", []byte("1.2.0-dev\n"))

	res, err := NewService(fs).Discover(context.Background(), "/repo")
	if err != nil {
		t.Fatal(err)
	}

	if res.Manifest == nil || res.Manifest.Path != "Cargo.toml" || res.Toolchain() != "cargo" {
		t.Fatalf("Manifest = %+v", res.Manifest)
	}
	if res.Manifest.Version != "1.2.0-dev" {
		t.Errorf("manifest version = %q", res.Manifest.Version)
	}

	var paths []string
	for _, c := range res.SyncCandidates {
		paths = append(paths, c.Path)
	}
	// pyproject.toml is a second manifest, offered as a sync file.
	want := []string{"pyproject.toml", "package.json", "VERSION"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("candidates = %q, want %q", paths, want)
	}

	mismatches := res.Mismatches()
	if len(mismatches) != 1 || mismatches[0].Source != "package.json" || mismatches[0].Actual != "1.1.0" {
		t.Errorf("Mismatches() = %+v", mismatches)
	}
}

func TestDiscover_Empty(t *testing.T) {
	res, err := NewService(core.NewMockFileSystem()).Discover(context.Background(), "/repo")
	if err != nil {
		t.Fatal(err)
	}
	if res.Manifest != nil || len(res.SyncCandidates) != 0 || res.Toolchain() != "" {
		t.Errorf("Discover() = %+v", res)
	}
	if res.Mismatches() != nil {
		t.Error("no manifest, no mismatches")
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewService(core.NewMockFileSystem()).Discover(ctx, "."); err == nil {
		t.Error("expected context error")
	}
}

func TestSource_File(t *testing.T) {
	src := Source{Path: "Chart.yaml", Format: syncfiles.FormatYAML, Field: "version", Version: "1.0.0"}
	want := syncfiles.File{Path: "Chart.yaml", Format: syncfiles.FormatYAML, Field: "version"}
	if got := src.File(); got != want {
		t.Errorf("File() = %+v", got)
	}
}
