package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/cleared-dev/runway/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String describes the build for --version output.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
