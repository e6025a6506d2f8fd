// Package version holds build metadata injected at link time.
package version

import "fmt"

// Version is set with -ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/rhaidoc/internal/version.Version=v0.3.0".
var Version = "unknown"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	if GitCommit == "unknown" {
		return fmt.Sprintf("rhaidoc %s", Version)
	}
	return fmt.Sprintf("rhaidoc %s (%s, built %s)", Version, GitCommit, BuildTime)
}
