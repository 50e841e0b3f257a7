// Package issues provides the issue type collected during client generation.
package issues

import (
	"fmt"

	"github.com/erraggy/oafront/internal/severity"
)

// Issue is a single non-fatal problem or decision recorded during generation.
type Issue struct {
	// Path locates the issue in the document, e.g. "paths./pets.post.requestBody"
	Path string `json:"path"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Operation is the generated operation id the issue belongs to, if any
	Operation string `json:"operation,omitempty"`
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int `json:"line,omitempty"`
}

// String formats the issue with a severity symbol:
// "✗" for Critical, "⚠" for Warning and "ℹ" for Info.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	path := i.Path
	if i.Operation != "" {
		path = fmt.Sprintf("%s (%s)", i.Path, i.Operation)
	}
	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d): %s", symbol, path, i.Line, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, path, i.Message)
}

// Counts tallies issues by severity.
func Counts(list []Issue) (info, warning, critical int) {
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityInfo:
			info++
		case severity.SeverityWarning:
			warning++
		case severity.SeverityCritical:
			critical++
		}
	}
	return info, warning, critical
}
