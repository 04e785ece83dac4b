package manifest

import (
	"context"
	"errors"
	"testing"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/semver"
)

func TestPatcher_Verify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		path    string
		content string
		version string
		wantErr error
	}{
		{
			name:    "cargo package matches",
			path:    "Cargo.toml",
			content: cargoToml,
			version: "1.0.0",
		},
		{
			name:    "pyproject project matches",
			path:    "pyproject.toml",
			content: "[project]\nname = \"demo\"\nversion = \"2.1.0\"\n",
			version: "2.1.0",
		},
		{
			name:    "first match outside package table",
			path:    "Cargo.toml",
			content: "[workspace.package]\nversion = \"3.0.0\"\n\n[package]\nname = \"demo\"\nversion = \"1.0.0\"\n",
			version: "3.0.0",
			wantErr: ErrVerifyMismatch,
		},
		{
			name:    "no known table",
			path:    "Cargo.toml",
			content: "[workspace]\nmembers = []\n",
			version: "1.0.0",
		},
		{
			name:    "non toml manifest is skipped",
			path:    "VERSION.txt",
			content: "not toml at all [",
			version: "1.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile(tt.path, []byte(tt.content))
			err := NewPatcher(fs, tt.path).Verify(ctx, semver.MustParse(tt.version))
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPatcher_Verify_InvalidTOML(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("Cargo.toml", []byte("[package\nversion = \"1.0.0\"\n"))
	err := NewPatcher(fs, "Cargo.toml").Verify(context.Background(), semver.MustParse("1.0.0"))
	if err == nil || errors.Is(err, ErrVerifyMismatch) {
		t.Errorf("expected a parse error, got %v", err)
	}
}
