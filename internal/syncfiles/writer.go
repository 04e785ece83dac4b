// Package syncfiles keeps extra version-bearing files (package.json,
// Chart.yaml, VERSION, ...) in step with the manifest during a release.
package syncfiles

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/cutrelease/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Writer writes a version into files of the supported formats.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a Writer with the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// WriteAll writes version into every file, stopping at the first failure.
func (w *Writer) WriteAll(ctx context.Context, files []File, version string) error {
	for _, f := range files {
		if err := w.Write(ctx, f, version); err != nil {
			return err
		}
	}
	return nil
}

// CheckAll renders version into every file without writing anything, so a
// missing file, a malformed document or a pattern that does not match is
// reported before the release touches the tree.
func (w *Writer) CheckAll(ctx context.Context, files []File, version string) error {
	for _, f := range files {
		if _, err := w.render(ctx, f.Resolved(), version); err != nil {
			return err
		}
	}
	return nil
}

// Write writes version into a single file.
func (w *Writer) Write(ctx context.Context, f File, version string) error {
	f = f.Resolved()
	updated, err := w.render(ctx, f, version)
	if err != nil {
		return err
	}
	return w.write(ctx, f.Path, updated)
}

// render returns the new content of f. Raw files are replaced whole and are
// never read.
func (w *Writer) render(ctx context.Context, f File, version string) ([]byte, error) {
	if f.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if !f.Format.IsValid() {
		return nil, fmt.Errorf("%w: unknown sync format %q for %q", core.ErrFormat, f.Format, f.Path)
	}

	if f.Format == FormatRaw {
		return []byte(strings.TrimRight(version, "\n") + "\n"), nil
	}

	data, err := w.fs.ReadFile(ctx, f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", f.Path, err)
	}

	var updated []byte
	switch f.Format {
	case FormatJSON:
		updated, err = setJSON(data, f.Field, version)
	case FormatYAML:
		updated, err = setYAML(data, f.Field, version)
	case FormatTOML:
		updated, err = setTOML(data, f.Field, version)
	case FormatRegex:
		updated, err = setRegex(data, f.Pattern, version)
	}
	if err != nil {
		return nil, fmt.Errorf("in file %q: %w", f.Path, err)
	}
	return updated, nil
}

func (w *Writer) write(ctx context.Context, path string, data []byte) error {
	if err := w.fs.WriteFile(ctx, path, data, core.PermManifest); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return nil
}

// setJSON uses sjson so key order and formatting survive.
func setJSON(data []byte, field, version string) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", core.ErrFormat)
	}
	updated, err := sjson.SetBytes(data, field, version)
	if err != nil {
		return nil, fmt.Errorf("failed to set %q: %w", field, err)
	}
	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return updated, nil
}

func setYAML(data []byte, field, version string) ([]byte, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if obj == nil {
		obj = map[string]any{}
	}
	if err := setNestedValue(obj, field, version); err != nil {
		return nil, err
	}
	return yaml.MarshalWithOptions(obj, yaml.Indent(2), yaml.IndentSequence(true))
}

func setTOML(data []byte, field, version string) ([]byte, error) {
	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if obj == nil {
		obj = map[string]any{}
	}
	if err := setNestedValue(obj, field, version); err != nil {
		return nil, err
	}
	return toml.Marshal(obj)
}

// setRegex replaces the first capturing group of the first match only.
func setRegex(data []byte, pattern, version string) ([]byte, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is required for regex format")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("regex pattern %q must have a capturing group", pattern)
	}
	loc := re.FindSubmatchIndex(data)
	if loc == nil || loc[2] < 0 {
		return nil, fmt.Errorf("pattern %q does not match", pattern)
	}

	var buf bytes.Buffer
	buf.Grow(len(data) + len(version))
	buf.Write(data[:loc[2]])
	buf.WriteString(version)
	buf.Write(data[loc[3]:])
	return buf.Bytes(), nil
}

// setNestedValue sets obj[a][b][c] = value for field "a.b.c", creating
// intermediate maps as needed.
func setNestedValue(obj map[string]any, field string, value any) error {
	if field == "" {
		return fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := obj
	for i, part := range parts[:len(parts)-1] {
		next, exists := current[part]
		if !exists {
			m := make(map[string]any)
			current[part] = m
			current = m
			continue
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object", strings.Join(parts[:i+1], "."))
		}
		current = nextMap
	}
	current[parts[len(parts)-1]] = value
	return nil
}
