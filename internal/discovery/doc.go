// Package discovery inspects a repository to suggest its release
// configuration: which toolchain manifest holds the version and which other
// files carry the same version and should be kept in sync.
package discovery
