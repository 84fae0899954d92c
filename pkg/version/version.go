// Package version contains version information for pipecomplete.
package version

var (
	// Version is the current version of pipecomplete.
	Version = "dev"
	// BuildTime is the time when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
)

// String returns the version line printed by the CLI
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
