package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// UserAgent is sent on every request to the timing API.
func UserAgent() string {
	return fmt.Sprintf("racepace/%s (+%s)", Version, GitSHA)
}

// String is the one-line form printed by -version.
func String() string {
	return fmt.Sprintf("racepace %s (commit %s, built %s)", Version, GitSHA, BuildTime)
}
