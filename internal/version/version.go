// Package version holds build metadata injected at link time.
package version

import "fmt"

// Version is set with
// go build -ldflags "-X git.home.luguber.info/inful/vaultsite/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String is the one-line version banner.
func String() string {
	return fmt.Sprintf("vaultsite %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
