package tagmanager

import (
	"strconv"
	"strings"

	"github.com/indaco/cutrelease/internal/semver"
)

// FormatMessage expands {version}, {tag}, {major}, {minor}, {patch} and
// {prerelease} in template. Unknown placeholders are left untouched.
func FormatMessage(template string, version semver.SemVersion) string {
	r := strings.NewReplacer(
		"{version}", version.String(),
		"{tag}", FormatTagName(version),
		"{major}", strconv.Itoa(version.Major),
		"{minor}", strconv.Itoa(version.Minor),
		"{patch}", strconv.Itoa(version.Patch),
		"{prerelease}", version.PreRelease,
	)
	return r.Replace(template)
}
