// Package version exposes build provenance injected via -ldflags.
package version

import "fmt"

// Overridden at build time; releases are identified by commit, there is
// no semver.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String renders the version line shown by --version.
func String() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("dayops dev (commit: %s, built: %s)", commit, BuildTime)
}
