package oafront

import (
	"fmt"
	"runtime"
)

var (
	// version and commit are set via ldflags at release time.
	// Source builds report "dev" and "unknown".
	version = "dev"
	commit  = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the short git hash the binary was built from.
func Commit() string {
	return commit
}

// UserAgent returns the User-Agent sent when fetching documents over HTTP.
func UserAgent() string {
	return fmt.Sprintf("oafront/%s", version)
}

// BuildInfo renders the build metadata on multiple lines for `oafront version`.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nGo Version: %s", version, commit, runtime.Version())
}
