package discovery

import "github.com/indaco/cutrelease/internal/syncfiles"

// Known describes a file type discovery looks for.
type Known struct {
	Filename    string
	Format      syncfiles.Format
	Field       string
	Description string

	// Toolchain is set for manifests a toolchain profile can release.
	Toolchain string
}

// DefaultKnown returns the files discovery looks for, in priority order.
func DefaultKnown() []Known {
	return []Known{
		{Filename: "Cargo.toml", Format: syncfiles.FormatTOML, Field: "package.version", Description: "Rust (Cargo.toml)", Toolchain: "cargo"},
		{Filename: "pyproject.toml", Format: syncfiles.FormatTOML, Field: "project.version", Description: "Python (pyproject.toml)", Toolchain: "uv"},
		{Filename: "package.json", Format: syncfiles.FormatJSON, Field: "version", Description: "Node.js (package.json)"},
		{Filename: "Chart.yaml", Format: syncfiles.FormatYAML, Field: "version", Description: "Helm (Chart.yaml)"},
		{Filename: "pubspec.yaml", Format: syncfiles.FormatYAML, Field: "version", Description: "Dart/Flutter (pubspec.yaml)"},
		{Filename: "composer.json", Format: syncfiles.FormatJSON, Field: "version", Description: "PHP (composer.json)"},
		{Filename: "version.txt", Format: syncfiles.FormatRaw, Description: "Plain text (version.txt)"},
		{Filename: "VERSION", Format: syncfiles.FormatRaw, Description: "Plain text (VERSION)"},
	}
}

// Source is a discovered file and the version it declares.
type Source struct {
	// Path is relative to the discovery root.
	Path        string
	Format      syncfiles.Format
	Field       string
	Version     string
	Description string
	Toolchain   string
}

// File converts the source to a sync file entry.
func (s Source) File() syncfiles.File {
	return syncfiles.File{Path: s.Path, Format: s.Format, Field: s.Field}
}

// Result is what Discover found.
type Result struct {
	// Manifest is the first toolchain manifest found, nil if none.
	Manifest *Source

	// SyncCandidates are the other versioned files.
	SyncCandidates []Source
}

// Toolchain returns the profile name of the manifest, or "".
func (r *Result) Toolchain() string {
	if r.Manifest == nil {
		return ""
	}
	return r.Manifest.Toolchain
}

// Mismatch is a file whose version differs from the manifest's.
type Mismatch struct {
	Source   string
	Expected string
	Actual   string
}
