// Package version holds the build version string, overridable at build
// time via -ldflags "-X github.com/chayuto/ai-truffle-hog/version.Version=...".
package version

// Version is the released version string, or "dev" for local builds.
var Version = "dev"
