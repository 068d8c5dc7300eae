package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is set via ldflags during build
	Version = "dev"
	// Commit is set via ldflags during build
	Commit = "none"
)

// Short returns the version string
func Short() string {
	return Version
}

// Long returns the version with build details
func Long() string {
	return fmt.Sprintf("skilltui %s (commit %s, %s %s/%s)", Version, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
