// Package version holds the program name and build metadata.
package version

import "fmt"

// Name is the program name printed by --version.
const Name = "ovh-ddns"

// Version, Commit and BuildDate are set via ldflags during build.
// Example: -ldflags="-X ovh-ddns/internal/pkg/version.Commit=$(git rev-parse HEAD)"
var (
	Version   = "1.0"
	Commit    = "none"
	BuildDate = "unknown"
)

type buildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// String returns the fixed version line, e.g. "ovh-ddns version 1.0".
func String() string {
	return fmt.Sprintf("%s version %s", Name, Version)
}

// GetBuildInfo returns a copy of the build metadata.
func GetBuildInfo() buildInfo {
	return buildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	}
}
