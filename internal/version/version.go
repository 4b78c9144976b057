// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags, e.g.
//
//	-X github.com/open-cli-collective/tailwind-shorthand/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the one-line version banner printed by tws --version.
func String() string {
	return fmt.Sprintf("tws version %s (commit: %s, built: %s)", Version, Commit, Date)
}
