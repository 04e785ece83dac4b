package release

import (
	"fmt"
	"strings"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/semver"
)

// Policy selects which component of the latest release is incremented.
type Policy int

const (
	// Minor is the zero value and the default.
	Minor Policy = iota
	Major
	Patch
)

// ParsePolicy accepts "major", "minor" or "patch" in any case. The empty
// string is Minor.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "minor":
		return Minor, nil
	case "major":
		return Major, nil
	case "patch":
		return Patch, nil
	default:
		return 0, fmt.Errorf("%w: unknown release policy %q (want major, minor or patch)", core.ErrFormat, s)
	}
}

func (p Policy) String() string {
	switch p {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func (p Policy) valid() bool {
	return p == Major || p == Minor || p == Patch
}

// Next returns the version that follows latest under p.
func (p Policy) Next(latest semver.SemVersion) (semver.SemVersion, error) {
	return semver.BumpByPolicyFunc(latest, p.String())
}
