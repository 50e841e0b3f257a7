// Package severity provides severity levels for issues reported while
// generating client code.
//
// The levels are ordered from least to most severe: Info < Warning < Critical.
package severity

// Severity indicates how serious a generation issue is.
type Severity int

const (
	// SeverityInfo records a choice the generator made on the caller's behalf,
	// such as switching an operation to full-response mode.
	SeverityInfo Severity = iota

	// SeverityWarning marks input the generator had to skip or degrade, such
	// as a non-JSON request body. Strict mode turns warnings into failures.
	SeverityWarning

	// SeverityCritical marks output that is known to be unusable.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText renders the level by name in JSON and TOML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
