// Package commands provides CLI command handlers for oafront.
package commands

import (
	"errors"
	"strings"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrDrift is returned by generate --check when the files on disk differ
// from what would be generated.
var ErrDrift = errors.New("generated files are out of date")

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// isURL reports whether specPath is fetched over HTTP rather than read from disk.
func isURL(specPath string) bool {
	return strings.HasPrefix(specPath, "http://") || strings.HasPrefix(specPath, "https://")
}
