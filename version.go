package plumb

import (
	"fmt"
	"runtime"
)

var (
	// version, commit, and buildTime are set via ldflags at release build
	// time. Development builds fall back to the defaults below.
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version, or "dev" for a development build.
func Version() string { return version }

// Commit returns the git commit the binary was built from, or "unknown"
// for a development build.
func Commit() string { return commit }

// BuildTime returns the RFC3339 build timestamp, or "unknown" for a
// development build.
func BuildTime() string { return buildTime }

// UserAgent returns a User-Agent string of the form "plumb/<version>".
func UserAgent() string { return fmt.Sprintf("plumb/%s", version) }

// GoVersion returns the Go runtime version plumb was built with.
func GoVersion() string { return runtime.Version() }

// BuildInfo renders all build metadata as a multi-line string, the way
// cmd/plumb's "version" output does.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s", version, commit, buildTime, GoVersion())
}
