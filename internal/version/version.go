// Package version holds the build information reported by `blockmeta version`.
package version

import "fmt"

// Overridden at build time:
// go build -ldflags "-X blockmeta/internal/version.Version=0.4.0 -X blockmeta/internal/version.Commit=$(git rev-parse HEAD)"
var (
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Short returns the version with an abbreviated commit when one was stamped.
func Short() string {
	if Commit == "unknown" || len(Commit) <= 7 {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit[:7])
}

// Full returns the multi-line build report.
func Full() string {
	return fmt.Sprintf("blockmeta %s\ncommit: %s\nbuilt:  %s", Version, Commit, BuildDate)
}
