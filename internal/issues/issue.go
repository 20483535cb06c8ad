// Package issues provides the message and check result types collected
// while converting a BPMN document.
package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/bpmnconv/internal/severity"
)

// Message is a single conversion note attached to a process element.
type Message struct {
	// Severity indicates the severity level of the message
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Message is a human-readable description
	Message string `json:"message" yaml:"message"`
	// Link points to documentation about the construct (optional)
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Symbol returns the glyph used for the message severity.
func (m Message) Symbol() string {
	switch m.Severity {
	case severity.SeverityWarning:
		return "⚠"
	case severity.SeverityReview:
		return "⚑"
	case severity.SeverityTask:
		return "☐"
	case severity.SeverityInfo:
		return "ℹ"
	default:
		return "?"
	}
}

// String returns a formatted string representation of the message.
func (m Message) String() string {
	result := fmt.Sprintf("%s [%s] %s", m.Symbol(), m.Severity, m.Message)
	if m.Link != "" {
		result += "\n    See: " + m.Link
	}
	return result
}

// Result holds every message recorded for one process element.
type Result struct {
	// ElementID is the id attribute of the element, unique per document
	ElementID string `json:"elementId" yaml:"elementId"`
	// ElementName is the name attribute of the element (optional)
	ElementName string `json:"elementName,omitempty" yaml:"elementName,omitempty"`
	// ElementType is the local name of the element (e.g. "serviceTask")
	ElementType string `json:"elementType" yaml:"elementType"`
	// Path lists the ids of the enclosing process elements, outermost first
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Messages are kept in the order they were added
	Messages []Message `json:"messages" yaml:"messages"`
}

// Add appends a message.
func (r *Result) Add(m Message) {
	r.Messages = append(r.Messages, m)
}

// MaxSeverity returns the highest severity among the messages and false
// when there are none.
func (r *Result) MaxSeverity() (severity.Severity, bool) {
	if len(r.Messages) == 0 {
		return severity.SeverityInfo, false
	}
	highest := r.Messages[0].Severity
	for _, m := range r.Messages[1:] {
		if m.Severity > highest {
			highest = m.Severity
		}
	}
	return highest, true
}

// Filter returns a copy holding only the messages at or above minimum.
func (r *Result) Filter(minimum severity.Severity) Result {
	out := *r
	out.Messages = make([]Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		if m.Severity >= minimum {
			out.Messages = append(out.Messages, m)
		}
	}
	return out
}

// Label returns "type 'id'" or "type 'name' (id)" for display.
func (r *Result) Label() string {
	if r.ElementName != "" {
		return fmt.Sprintf("%s '%s' (%s)", r.ElementType, r.ElementName, r.ElementID)
	}
	return fmt.Sprintf("%s '%s'", r.ElementType, r.ElementID)
}

// String returns the label followed by one indented line per message.
func (r *Result) String() string {
	var sb strings.Builder
	sb.WriteString(r.Label())
	for _, m := range r.Messages {
		sb.WriteString("\n  ")
		sb.WriteString(strings.ReplaceAll(m.String(), "\n", "\n  "))
	}
	return sb.String()
}
