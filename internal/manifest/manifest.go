// Package manifest rewrites the version field of a project manifest.
//
// The manifest is never parsed structurally: the first line that looks like
// `version = "..."` is the version field. When a manifest has several such
// lines (a dependency table declared before [package], say) only the first
// one changes.
package manifest

import (
	"context"
	"fmt"
	"regexp"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/semver"
)

// versionFieldRegex captures everything up to the opening quote and from the
// closing quote to the end of the line, so only the value is replaced.
var versionFieldRegex = regexp.MustCompile(`(?m)^(version\s*=\s*")([^"]*)("\s*)$`)

// Patch returns text with the value of the first version field replaced by
// version. Every other byte is left as is.
func Patch(text []byte, version semver.SemVersion) ([]byte, error) {
	loc := versionFieldRegex.FindSubmatchIndex(text)
	if loc == nil {
		return nil, fmt.Errorf("%w: no line matching `version = \"...\"`", core.ErrVersionFieldNotFound)
	}

	// loc[4]:loc[5] is the quoted value.
	start, end := loc[4], loc[5]
	value := version.String()

	out := make([]byte, 0, len(text)-(end-start)+len(value))
	out = append(out, text[:start]...)
	out = append(out, value...)
	out = append(out, text[end:]...)
	return out, nil
}

// ReadVersion returns the raw value of the first version field.
func ReadVersion(text []byte) (string, error) {
	m := versionFieldRegex.FindSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("%w: no line matching `version = \"...\"`", core.ErrVersionFieldNotFound)
	}
	return string(m[2]), nil
}

// Patcher applies Patch to a manifest file.
type Patcher struct {
	fs   core.FileSystem
	path string
}

// NewPatcher creates a Patcher for the manifest at path.
func NewPatcher(fs core.FileSystem, path string) *Patcher {
	return &Patcher{fs: fs, path: path}
}

// Path returns the manifest path.
func (p *Patcher) Path() string {
	return p.path
}

// Apply reads the manifest, patches its version field and writes it back.
// Nothing is written when the field is missing.
func (p *Patcher) Apply(ctx context.Context, version semver.SemVersion) error {
	data, err := p.fs.ReadFile(ctx, p.path)
	if err != nil {
		return fmt.Errorf("failed to read manifest %q: %w", p.path, err)
	}

	updated, err := Patch(data, version)
	if err != nil {
		return fmt.Errorf("in manifest %q: %w", p.path, err)
	}

	if err := p.fs.WriteFile(ctx, p.path, updated, core.PermManifest); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", p.path, err)
	}
	return nil
}

// Current returns the version currently declared by the manifest.
func (p *Patcher) Current(ctx context.Context) (string, error) {
	data, err := p.fs.ReadFile(ctx, p.path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %q: %w", p.path, err)
	}
	v, err := ReadVersion(data)
	if err != nil {
		return "", fmt.Errorf("in manifest %q: %w", p.path, err)
	}
	return v, nil
}

// Check fails with core.ErrVersionFieldNotFound when the manifest has no
// version field. It never writes.
func (p *Patcher) Check(ctx context.Context) error {
	_, err := p.Current(ctx)
	return err
}
