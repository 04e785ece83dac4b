// Package version reports the build version of cutrelease.
package version

import "runtime/debug"

// version is set at build time with
// -ldflags "-X github.com/indaco/cutrelease/internal/version.version=1.2.3".
var version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, then the module version recorded
// by `go install`, then "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			if v[0] == 'v' {
				return v[1:]
			}
			return v
		}
	}
	return "dev"
}
