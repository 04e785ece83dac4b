package manifest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/indaco/cutrelease/internal/semver"
	"github.com/pelletier/go-toml/v2"
)

// ErrVerifyMismatch reports that the structured version of a manifest does
// not match what was written, typically because the first `version = ` line
// does not belong to the package table.
var ErrVerifyMismatch = errors.New("manifest version mismatch")

// tomlVersionTables are the tables whose version field is the project's, in
// lookup order (Cargo.toml, pyproject.toml, Poetry).
var tomlVersionTables = [][]string{
	{"package"},
	{"project"},
	{"tool", "poetry"},
}

// Verify decodes a TOML manifest and checks that the package version equals
// version. Non-TOML manifests and manifests without a known version table are
// accepted as is.
func (p *Patcher) Verify(ctx context.Context, version semver.SemVersion) error {
	if !strings.EqualFold(filepath.Ext(p.path), ".toml") {
		return nil
	}

	data, err := p.fs.ReadFile(ctx, p.path)
	if err != nil {
		return fmt.Errorf("failed to read manifest %q: %w", p.path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse TOML in %q: %w", p.path, err)
	}

	got, table, ok := lookupVersion(doc)
	if !ok {
		return nil
	}
	if got != version.String() {
		return fmt.Errorf("%w: [%s] version in %q is %q, expected %q", ErrVerifyMismatch, table, p.path, got, version.String())
	}
	return nil
}

func lookupVersion(doc map[string]any) (string, string, bool) {
	for _, path := range tomlVersionTables {
		current := doc
		found := true
		for _, key := range path {
			next, ok := current[key].(map[string]any)
			if !ok {
				found = false
				break
			}
			current = next
		}
		if !found {
			continue
		}
		if v, ok := current["version"].(string); ok {
			return v, strings.Join(path, "."), true
		}
	}
	return "", "", false
}
