package tagmanager

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/semver"
)

// ConstraintKind says which components of a release a Constraint pins.
type ConstraintKind int

const (
	// ConstraintAny matches every release.
	ConstraintAny ConstraintKind = iota
	// ConstraintMajor matches releases with the same major component.
	ConstraintMajor
	// ConstraintMajorMinor matches releases with the same major and minor components.
	ConstraintMajorMinor
)

// Constraint restricts which release tags are considered when resolving the
// latest version.
type Constraint struct {
	Kind  ConstraintKind
	Major int
	Minor int
}

var baseRegex = regexp.MustCompile(`^(0|[1-9][0-9]*)(?:\.(0|[1-9][0-9]*))?$`)

// ParseConstraint turns a base argument ("", "X" or "X.Y") into a Constraint.
// A major.minor base is only legal when patchPolicy is true.
func ParseConstraint(base string, patchPolicy bool) (Constraint, error) {
	if base == "" {
		return Constraint{Kind: ConstraintAny}, nil
	}

	m := baseRegex.FindStringSubmatch(base)
	if m == nil {
		return Constraint{}, fmt.Errorf("%w: base %q should be `X` or `X.Y`", core.ErrFormat, base)
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Constraint{}, fmt.Errorf("%w: base %q: %s", core.ErrFormat, base, err.Error())
	}
	if m[2] == "" {
		return Constraint{Kind: ConstraintMajor, Major: major}, nil
	}

	if !patchPolicy {
		return Constraint{}, fmt.Errorf("%w: when specifying a minor version (X.Y), the patch policy is mandatory", core.ErrInvalidConstraint)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Constraint{}, fmt.Errorf("%w: base %q: %s", core.ErrFormat, base, err.Error())
	}
	return Constraint{Kind: ConstraintMajorMinor, Major: major, Minor: minor}, nil
}

// Matches reports whether v satisfies the constraint.
func (c Constraint) Matches(v semver.SemVersion) bool {
	switch c.Kind {
	case ConstraintMajor:
		return v.Major == c.Major
	case ConstraintMajorMinor:
		return v.Major == c.Major && v.Minor == c.Minor
	default:
		return true
	}
}

func (c Constraint) String() string {
	switch c.Kind {
	case ConstraintMajor:
		return fmt.Sprintf("%d.x", c.Major)
	case ConstraintMajorMinor:
		return fmt.Sprintf("%d.%d.x", c.Major, c.Minor)
	default:
		return "*"
	}
}
