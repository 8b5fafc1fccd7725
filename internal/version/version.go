// Package version holds the build's version information.
package version

import "runtime"

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X c4kit/internal/version.Version=0.4.0 -X c4kit/internal/version.Commit=abc123"
var (
	// Version is the semantic version of c4kit
	Version = "0.3.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// Info returns the version, with the short commit when one was stamped in
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns complete version information for `c4kit --version`
func Full() string {
	return "c4kit version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate + "\n" +
		"Go: " + runtime.Version()
}
