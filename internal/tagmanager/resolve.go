package tagmanager

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/semver"
	modsemver "golang.org/x/mod/semver"
)

// ReleasePrefix is the fixed prefix of release tags.
const ReleasePrefix = "v"

var releaseTagRegex = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)

// IsReleaseTag reports whether name is a release tag: "v" followed by a
// version without pre-release. The regex pins the three-component shape that
// x/mod would also accept in short forms ("v1", "v1.2"); x/mod rejects leading
// zeros. Other tags are simply not releases.
func IsReleaseTag(name string) bool {
	return releaseTagRegex.MatchString(name) && modsemver.IsValid(name)
}

// ReleaseSet is the ordered set of release versions found in the tag namespace.
type ReleaseSet struct {
	versions []semver.SemVersion
}

// NewReleaseSet keeps the release tags among names, ignoring the rest.
func NewReleaseSet(names []string) ReleaseSet {
	versions := make([]semver.SemVersion, 0, len(names))
	for _, name := range names {
		if !IsReleaseTag(name) {
			continue
		}
		v, err := semver.ParseVersion(name[len(ReleasePrefix):])
		if err != nil {
			// A component too large for int.
			continue
		}
		versions = append(versions, v)
	}
	slices.SortFunc(versions, semver.SemVersion.Compare)
	return ReleaseSet{versions: versions}
}

// Versions returns the releases in ascending order.
func (s ReleaseSet) Versions() []semver.SemVersion {
	return slices.Clone(s.versions)
}

// Len returns the number of releases.
func (s ReleaseSet) Len() int {
	return len(s.versions)
}

// Contains reports whether v was released.
func (s ReleaseSet) Contains(v semver.SemVersion) bool {
	_, found := slices.BinarySearchFunc(s.versions, v, semver.SemVersion.Compare)
	return found
}

// Latest returns the greatest release satisfying c, or core.ErrNoMatchingVersion.
func (s ReleaseSet) Latest(c Constraint) (semver.SemVersion, error) {
	for i := len(s.versions) - 1; i >= 0; i-- {
		if c.Matches(s.versions[i]) {
			return s.versions[i], nil
		}
	}
	return semver.SemVersion{}, fmt.Errorf("%w: no semver tag found for constraint %s", core.ErrNoMatchingVersion, c)
}

// Resolve selects the latest release tag among names that satisfies c.
func Resolve(names []string, c Constraint) (semver.SemVersion, error) {
	return NewReleaseSet(names).Latest(c)
}
