// Package semver implements the small semantic version algebra the release
// flow needs: parsing, total ordering, increments and pre-release labels.
package semver
