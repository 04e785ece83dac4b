package syncfiles

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/cutrelease/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// Reader reads the version currently stored in a synced file.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read returns the version stored in f.
func (r *Reader) Read(ctx context.Context, f File) (string, error) {
	f = f.Resolved()
	if f.Path == "" {
		return "", fmt.Errorf("file path is required")
	}
	if !f.Format.IsValid() {
		return "", fmt.Errorf("%w: unknown sync format %q for %q", core.ErrFormat, f.Format, f.Path)
	}

	data, err := r.fs.ReadFile(ctx, f.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", f.Path, err)
	}

	var version string
	switch f.Format {
	case FormatJSON:
		version, err = getJSON(data, f.Field)
	case FormatYAML:
		version, err = getStructured(data, f.Field, yaml.Unmarshal)
	case FormatTOML:
		version, err = getStructured(data, f.Field, toml.Unmarshal)
	case FormatRaw:
		version = strings.TrimSpace(string(data))
	case FormatRegex:
		version, err = getRegex(data, f.Pattern)
	}
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", f.Path, err)
	}
	return version, nil
}

func getJSON(data []byte, field string) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("invalid JSON")
	}
	res := gjson.GetBytes(data, field)
	if !res.Exists() {
		return "", fmt.Errorf("field %q not found", field)
	}
	if res.Type != gjson.String {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	return res.String(), nil
}

func getStructured(data []byte, field string, unmarshal func([]byte, any) error) (string, error) {
	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse: %w", err)
	}

	current := any(obj)
	for _, part := range strings.Split(field, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return "", fmt.Errorf("field %q not found", field)
		}
		if current, ok = m[part]; !ok {
			return "", fmt.Errorf("field %q not found", field)
		}
	}

	version, ok := current.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	return version, nil
}

func getRegex(data []byte, pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("pattern is required for regex format")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	m := re.FindSubmatch(data)
	if len(m) < 2 {
		return "", fmt.Errorf("pattern %q does not match", pattern)
	}
	return string(m[1]), nil
}
