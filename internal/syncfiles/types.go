package syncfiles

import (
	"path/filepath"
	"strings"
)

// Format is the encoding of a synced version file.
type Format string

const (
	// FormatJSON is for JSON files (package.json, etc.).
	FormatJSON Format = "json"

	// FormatYAML is for YAML files (Chart.yaml, etc.).
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML files other than the manifest.
	FormatTOML Format = "toml"

	// FormatRaw is for plain text files whose entire content is the version.
	FormatRaw Format = "raw"

	// FormatRegex is for files where a regex with one capturing group locates the version.
	FormatRegex Format = "regex"
)

// IsValid returns true if the format is known.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	default:
		return false
	}
}

// File describes one extra file that carries the project version.
type File struct {
	// Path is relative to the repository root.
	Path string `yaml:"path"`

	// Format defaults to the one implied by the file extension.
	Format Format `yaml:"format,omitempty"`

	// Field is the dot-separated key path for JSON, YAML and TOML, "version" by default.
	Field string `yaml:"field,omitempty"`

	// Pattern is required for FormatRegex.
	Pattern string `yaml:"pattern,omitempty"`
}

// Resolved fills in the format and field defaults.
func (f File) Resolved() File {
	if f.Format == "" {
		f.Format = FormatForFile(f.Path)
	}
	if f.Field == "" && (f.Format == FormatJSON || f.Format == FormatYAML || f.Format == FormatTOML) {
		f.Field = "version"
	}
	return f
}

// FormatForFile guesses the format from the file extension.
func FormatForFile(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatRaw
	}
}
