package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/indaco/cutrelease/internal/core"
)

// SemVersion represents a semantic version (major.minor.patch-preRelease).
type SemVersion struct {
	Major int
	Minor int
	Patch int
	// PreRelease holds the dot-separated identifiers, empty for a release.
	PreRelease string
}

var (
	// versionRegex matches exactly MAJOR.MINOR.PATCH with an optional
	// dot-separated pre-release suffix. Numeric components have no leading
	// zeros so that parsing and formatting round-trip.
	versionRegex = regexp.MustCompile(
		`^(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)` +
			`(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`,
	)

	// BumpByPolicyFunc can be overridden in tests to simulate errors.
	BumpByPolicyFunc = BumpByPolicy
)

// maxVersionLength bounds the input handed to the regex.
const maxVersionLength = 128

// String returns the textual form MAJOR.MINOR.PATCH[-PRERELEASE].
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(16)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	return sb.String()
}

// ParseVersion parses a semantic version string.
//
// Accepted:
//   - "1.2.3"
//   - "1.2.3-dev"
//   - "1.2.3-rc.1"
//
// Rejected with core.ErrFormat (wrapped): a "v" prefix, build metadata,
// leading zeros, empty identifiers, surrounding whitespace, or input longer
// than maxVersionLength.
func ParseVersion(s string) (SemVersion, error) {
	if len(s) > maxVersionLength {
		return SemVersion{}, fmt.Errorf("%w: version string exceeds maximum length of %d", core.ErrFormat, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return SemVersion{}, fmt.Errorf("%w: %q is not MAJOR.MINOR.PATCH[-PRERELEASE]", core.ErrFormat, s)
	}

	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return SemVersion{}, fmt.Errorf("%w: component %q: %s", core.ErrFormat, matches[i+1], err.Error())
		}
		nums[i] = n
	}

	return SemVersion{Major: nums[0], Minor: nums[1], Patch: nums[2], PreRelease: matches[4]}, nil
}

// MustParse is ParseVersion for literals known to be valid. It panics otherwise.
func MustParse(s string) SemVersion {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1 if v < other, 0 if equal and +1 if v > other.
// A pre-release sorts below the same version without one.
func (v SemVersion) Compare(other SemVersion) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case v.PreRelease == "" && other.PreRelease == "":
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	default:
		return comparePreRelease(v.PreRelease, other.PreRelease)
	}
}

// Equal reports whether both versions have the same precedence.
func (v SemVersion) Equal(other SemVersion) bool {
	return v.Compare(other) == 0
}

// IsPreRelease reports whether v carries pre-release identifiers.
func (v SemVersion) IsPreRelease() bool {
	return v.PreRelease != ""
}

// IncrementMajor returns X+1.0.0.
func IncrementMajor(v SemVersion) SemVersion {
	return SemVersion{Major: v.Major + 1}
}

// IncrementMinor returns X.Y+1.0.
func IncrementMinor(v SemVersion) SemVersion {
	return SemVersion{Major: v.Major, Minor: v.Minor + 1}
}

// IncrementPatch returns X.Y.Z+1.
func IncrementPatch(v SemVersion) SemVersion {
	return SemVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// WithPreRelease returns a copy of v whose pre-release is exactly label.
func WithPreRelease(v SemVersion, label string) SemVersion {
	v.PreRelease = label
	return v
}

// BumpByPolicy bumps the version using an explicit policy label.
//
// Supported labels:
//   - "patch": 1.2.3 -> 1.2.4
//   - "minor": 1.2.3 -> 1.3.0
//   - "major": 1.2.3 -> 2.0.0
func BumpByPolicy(v SemVersion, label string) (SemVersion, error) {
	switch label {
	case "patch":
		return IncrementPatch(v), nil
	case "minor":
		return IncrementMinor(v), nil
	case "major":
		return IncrementMajor(v), nil
	default:
		return SemVersion{}, fmt.Errorf("invalid bump policy: %s", label)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePreRelease(a, b string) int {
	aIDs := strings.Split(a, ".")
	bIDs := strings.Split(b, ".")

	for i := range min(len(aIDs), len(bIDs)) {
		if c := compareIdentifier(aIDs[i], bIDs[i]); c != 0 {
			return c
		}
	}

	// Equal so far: the strict prefix is smaller.
	return compareInt(len(aIDs), len(bIDs))
}

func compareIdentifier(a, b string) int {
	aIsNum := isNumericIdentifier(a)
	bIsNum := isNumericIdentifier(b)

	switch {
	case aIsNum && bIsNum:
		// Without leading zeros, a longer digit string is a larger number.
		if c := compareInt(len(a), len(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case aIsNum:
		return -1
	case bIsNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// isNumericIdentifier accepts only digits without a leading zero (except "0").
// Digit strings of any length qualify, so values beyond int still order
// numerically.
func isNumericIdentifier(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
