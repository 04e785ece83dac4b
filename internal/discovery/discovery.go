package discovery

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/manifest"
	"github.com/indaco/cutrelease/internal/semver"
	"github.com/indaco/cutrelease/internal/syncfiles"
)

// Service discovers versioned files in a directory.
type Service struct {
	fs     core.FileSystem
	reader *syncfiles.Reader
	known  []Known
}

// NewService creates a Service using the DefaultKnown file list.
func NewService(fs core.FileSystem) *Service {
	return &Service{fs: fs, reader: syncfiles.NewReader(fs), known: DefaultKnown()}
}

// Discover looks for known files directly in root. Files that are missing,
// unreadable or do not hold a valid version are skipped.
func (s *Service) Discover(ctx context.Context, root string) (*Result, error) {
	result := &Result{}
	for _, k := range s.known {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(root, k.Filename)
		if _, err := s.fs.Stat(ctx, path); err != nil {
			continue
		}

		version, ok := s.readVersion(ctx, path, k)
		if !ok {
			continue
		}

		src := Source{
			Path:        k.Filename,
			Format:      k.Format,
			Field:       k.Field,
			Version:     version,
			Description: k.Description,
			Toolchain:   k.Toolchain,
		}
		if k.Toolchain != "" && result.Manifest == nil {
			result.Manifest = &src
			continue
		}
		result.SyncCandidates = append(result.SyncCandidates, src)
	}
	return result, nil
}

// readVersion reads toolchain manifests with the same first-match rule the
// release uses, and other files through their structured format.
func (s *Service) readVersion(ctx context.Context, path string, k Known) (string, bool) {
	var version string
	if k.Toolchain != "" {
		data, err := s.fs.ReadFile(ctx, path)
		if err != nil {
			return "", false
		}
		if version, err = manifest.ReadVersion(data); err != nil {
			return "", false
		}
	} else {
		var err error
		version, err = s.reader.Read(ctx, syncfiles.File{Path: path, Format: k.Format, Field: k.Field})
		if err != nil {
			return "", false
		}
	}
	if _, err := semver.ParseVersion(version); err != nil {
		return "", false
	}
	return version, true
}

// Mismatches lists sync candidates whose version differs from the manifest.
func (r *Result) Mismatches() []Mismatch {
	if r.Manifest == nil {
		return nil
	}
	var out []Mismatch
	for _, c := range r.SyncCandidates {
		if c.Version != r.Manifest.Version {
			out = append(out, Mismatch{Source: c.Path, Expected: r.Manifest.Version, Actual: c.Version})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}
