// Package report renders conversion results for people and tools.
//
// Four formats are supported: text (grouped per process element with a
// glyph per severity), json, yaml and csv. Results are written in document
// order unless Options.Order asks for the most severe elements first.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/json-iterator/go"
	"go.yaml.in/yaml/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/bpmnconv/converter"
	"github.com/erraggy/bpmnconv/internal/severity"
)

// Format names an output format.
type Format string

// Output formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatCSV}
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(Formats(), f) {
		return f, nil
	}
	return "", fmt.Errorf("invalid format '%s'. Valid formats: text, json, yaml, csv", s)
}

// Order is the order results are written in.
type Order int

const (
	// DocumentOrder keeps the order of the process elements in the document
	DocumentOrder Order = iota
	// SeverityOrder writes the elements with the most severe messages first.
	// Messages of an element are sorted the same way. Ties keep document order.
	SeverityOrder
)

// Options controls rendering.
type Options struct {
	// Document names the source in the text header and the structured output
	Document string
	// Order of the results
	Order Order
	// Color styles text output with terminal colors
	Color bool
	// OmitEmpty skips elements without messages
	OmitEmpty bool
}

// document is the structured form of a report.
type document struct {
	Document string                  `json:"document,omitempty" yaml:"document,omitempty"`
	Summary  map[string]int          `json:"summary" yaml:"summary"`
	Results  []converter.CheckResult `json:"results" yaml:"results"`
}

// Write renders results to w.
func Write(w io.Writer, format Format, results []converter.CheckResult, opts Options) error {
	results = arrange(results, opts)
	switch format {
	case FormatText:
		return writeText(w, results, opts)
	case FormatJSON:
		data, err := json.ConfigCompatibleWithStandardLibrary.MarshalIndent(structured(results, opts), "", "  ")
		if err != nil {
			return fmt.Errorf("report: marshaling to json: %w", err)
		}
		return writeLine(w, data)
	case FormatYAML:
		data, err := yaml.Marshal(structured(results, opts))
		if err != nil {
			return fmt.Errorf("report: marshaling to yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatCSV:
		return writeCSV(w, results)
	default:
		return fmt.Errorf("report: invalid format %q", format)
	}
}

// arrange applies OmitEmpty and Order to a copy of results.
func arrange(results []converter.CheckResult, opts Options) []converter.CheckResult {
	out := make([]converter.CheckResult, 0, len(results))
	for _, r := range results {
		if opts.OmitEmpty && len(r.Messages) == 0 {
			continue
		}
		out = append(out, r)
	}
	if opts.Order != SeverityOrder {
		return out
	}
	for i := range out {
		msgs := slices.Clone(out[i].Messages)
		slices.SortStableFunc(msgs, func(a, b converter.CheckMessage) int {
			return int(b.Severity) - int(a.Severity)
		})
		out[i].Messages = msgs
	}
	slices.SortStableFunc(out, func(a, b converter.CheckResult) int {
		return rank(&b) - rank(&a)
	})
	return out
}

// rank orders elements without messages below every severity.
func rank(r *converter.CheckResult) int {
	s, ok := r.MaxSeverity()
	if !ok {
		return -1
	}
	return int(s)
}

func structured(results []converter.CheckResult, opts Options) document {
	return document{Document: opts.Document, Summary: counts(results), Results: results}
}

// counts returns the number of messages per severity name.
func counts(results []converter.CheckResult) map[string]int {
	out := make(map[string]int, len(severity.All()))
	for _, s := range severity.All() {
		out[s.String()] = 0
	}
	for _, r := range results {
		for _, m := range r.Messages {
			out[m.Severity.String()]++
		}
	}
	return out
}

func writeLine(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

var csvHeader = []string{"elementId", "elementName", "elementType", "severity", "message", "link"}

func writeCSV(w io.Writer, results []converter.CheckResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		for _, m := range r.Messages {
			if err := cw.Write([]string{r.ElementID, r.ElementName, r.ElementType, m.Severity.String(), m.Message, m.Link}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// palette holds one style per severity. The zero palette renders plain text.
type palette struct {
	styles map[severity.Severity]lipgloss.Style
	label  lipgloss.Style
	color  bool
}

func newPalette(color bool) palette {
	if !color {
		return palette{}
	}
	return palette{
		color: true,
		label: lipgloss.NewStyle().Bold(true),
		styles: map[severity.Severity]lipgloss.Style{
			severity.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
			severity.SeverityTask:    lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
			severity.SeverityReview:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
			severity.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true),
		},
	}
}

func (p palette) paint(s severity.Severity, text string) string {
	if !p.color {
		return text
	}
	return p.styles[s].Render(text)
}

func (p palette) heading(text string) string {
	if !p.color {
		return text
	}
	return p.label.Render(text)
}

func writeText(w io.Writer, results []converter.CheckResult, opts Options) error {
	p := newPalette(opts.Color)
	var sb strings.Builder
	if opts.Document != "" {
		sb.WriteString(p.heading(opts.Document))
		sb.WriteString("\n\n")
	}
	for _, r := range results {
		sb.WriteString(p.heading(r.Label()))
		sb.WriteByte('\n')
		for _, m := range r.Messages {
			sb.WriteString("  ")
			sb.WriteString(p.paint(m.Severity, fmt.Sprintf("%s [%s]", m.Symbol(), m.Severity)))
			sb.WriteByte(' ')
			sb.WriteString(m.Message)
			sb.WriteByte('\n')
			if m.Link != "" {
				sb.WriteString("      See: ")
				sb.WriteString(m.Link)
				sb.WriteByte('\n')
			}
		}
	}
	sb.WriteString(summaryLine(counts(results)))
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// summaryLine lists the counts from the most to the least severe.
func summaryLine(c map[string]int) string {
	caser := cases.Title(language.English)
	levels := severity.All()
	parts := make([]string, 0, len(levels))
	for i := len(levels) - 1; i >= 0; i-- {
		name := levels[i].String()
		parts = append(parts, fmt.Sprintf("%s: %d", caser.String(name), c[name]))
	}
	return strings.Join(parts, ", ")
}
