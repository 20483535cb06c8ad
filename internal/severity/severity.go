// Package severity provides the severity levels attached to conversion messages.
//
// The levels are ordered from least to most severe:
//   - SeverityInfo: Informational notes about choices made during conversion
//   - SeverityTask: Conversion succeeded but follow-up work is required (e.g. a job worker)
//   - SeverityReview: A mapping was produced that should be reviewed by a human
//   - SeverityWarning: The construct could not be converted correctly
//
// Info < Task < Review < Warning
package severity

import (
	"fmt"
	"strings"
)

// Severity indicates the severity level of a conversion message.
type Severity int

const (
	// SeverityInfo indicates an informational note about a processing choice.
	SeverityInfo Severity = iota

	// SeverityTask indicates that the element converted, but an implementation
	// task remains for the migrating team.
	SeverityTask

	// SeverityReview indicates a mapping that was produced automatically and
	// needs a human review.
	SeverityReview

	// SeverityWarning indicates a construct that blocks a correct conversion.
	// The construct was removed or left untranslated.
	SeverityWarning
)

// All returns every severity level in ascending order.
func All() []Severity {
	return []Severity{SeverityInfo, SeverityTask, SeverityReview, SeverityWarning}
}

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityTask:
		return "task"
	case SeverityReview:
		return "review"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the defined levels.
func (s Severity) IsValid() bool {
	return s >= SeverityInfo && s <= SeverityWarning
}

// Parse returns the severity for its name. Matching is case-insensitive.
func Parse(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, nil
	case "task":
		return SeverityTask, nil
	case "review":
		return SeverityReview, nil
	case "warning", "warn":
		return SeverityWarning, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity %q (want one of info, task, review, warning)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
