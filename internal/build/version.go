package build

import "fmt"

// Set through -ldflags "-X" at release time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Summary is the line printed by amp-sanitize --version.
func Summary() string {
	return fmt.Sprintf("%s (built %s)", FullVersion(), BuildTime)
}
