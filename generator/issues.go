package generator

import (
	"github.com/erraggy/oafront/internal/issues"
	"github.com/erraggy/oafront/internal/severity"
	"github.com/erraggy/oafront/parser"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo records a choice made on the caller's behalf
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning marks input that was skipped or degraded
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical marks output that is known to be unusable
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// collector gathers issues for one generation call.
type collector struct {
	issues []GenerateIssue
	log    parser.Logger
}

func newCollector(log parser.Logger) *collector {
	if log == nil {
		log = parser.NopLogger{}
	}
	return &collector{log: log}
}

// add records an issue located under op. at is a dotted suffix such as
// "responses.404"; it may be empty.
func (c *collector) add(op *Operation, at string, sev Severity, message string) {
	issue := GenerateIssue{Message: message, Severity: sev}
	if op != nil {
		issue.Path = "paths." + op.Path + "." + op.Method
		issue.Operation = op.OperationID
		if op.Definition != nil {
			issue.Line = op.Definition.Line
		}
	}
	if at != "" {
		if issue.Path != "" {
			issue.Path += "."
		}
		issue.Path += at
	}
	c.issues = append(c.issues, issue)

	if sev >= SeverityWarning {
		c.log.Warn(message, "path", issue.Path)
	} else {
		c.log.Debug(message, "path", issue.Path)
	}
}
