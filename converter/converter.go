package converter

import (
	"errors"
	"fmt"
	"time"

	"github.com/erraggy/bpmnconv/bpmnerrors"
	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/internal/issues"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/google/uuid"
)

// Severity indicates the severity level of a conversion message
type Severity = severity.Severity

const (
	// SeverityInfo indicates changes that need no action
	SeverityInfo = severity.SeverityInfo
	// SeverityTask indicates work to do outside the model, such as writing a job worker
	SeverityTask = severity.SeverityTask
	// SeverityReview indicates a transformation that should be checked
	SeverityReview = severity.SeverityReview
	// SeverityWarning indicates behaviour that could not be converted
	SeverityWarning = severity.SeverityWarning
)

// CheckMessage is one message about a process element
type CheckMessage = issues.Message

// CheckResult holds the messages of one process element
type CheckResult = issues.Result

// ConversionResult contains the results of converting one BPMN document
type ConversionResult struct {
	// Document is the converted document. After Check it is the unchanged source.
	Document *dom.Document
	// ConversionID identifies this conversion in logs
	ConversionID string
	// Results holds one entry per process element in document order,
	// filtered by the minimum severity
	Results []CheckResult
	// InfoCount is the total number of info messages
	InfoCount int
	// TaskCount is the total number of task messages
	TaskCount int
	// ReviewCount is the total number of review messages
	ReviewCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// Success is true if no warning was reported
	Success bool

	convertibles map[string]convertible.Convertible
}

// HasWarnings returns true if there are any warnings
func (r *ConversionResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// MessageCount returns the number of messages of all severities.
func (r *ConversionResult) MessageCount() int {
	return r.InfoCount + r.TaskCount + r.ReviewCount + r.WarningCount
}

// Convertible returns the convertible of the process element with id.
func (r *ConversionResult) Convertible(id string) (convertible.Convertible, bool) {
	c, ok := r.convertibles[id]
	return c, ok
}

// Converter converts BPMN documents. A Converter is safe for concurrent use.
type Converter struct {
	cfg *convertConfig
}

// New creates a Converter.
func New(opts ...Option) (*Converter, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Converter{cfg: cfg}, nil
}

// Convert is a convenience function that converts the BPMN file at path
// with default properties.
//
// Example:
//
//	result, err := converter.Convert("order.bpmn")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range result.Results {
//	    fmt.Println(r.String())
//	}
func Convert(path string) (*ConversionResult, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}
	return c.ConvertFile(path)
}

// Check walks doc and reports what a conversion would change, without
// modifying doc.
func (c *Converter) Check(doc *dom.Document) (*ConversionResult, error) {
	return c.run(doc, false)
}

// Convert converts doc in place and reports what was changed.
func (c *Converter) Convert(doc *dom.Document) (*ConversionResult, error) {
	return c.run(doc, true)
}

// ConvertBytes parses and converts a document held in memory.
func (c *Converter) ConvertBytes(data []byte) (*ConversionResult, error) {
	doc, err := dom.Parse(data)
	if err != nil {
		return nil, err
	}
	return c.Convert(doc)
}

// ConvertFile parses and converts the document at path.
func (c *Converter) ConvertFile(path string) (*ConversionResult, error) {
	doc, err := dom.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return c.Convert(doc)
}

// CheckFile parses and checks the document at path.
func (c *Converter) CheckFile(path string) (*ConversionResult, error) {
	doc, err := dom.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return c.Check(doc)
}

func (c *Converter) run(doc *dom.Document, mutate bool) (*ConversionResult, error) {
	if doc == nil {
		return nil, &bpmnerrors.ConfigError{Option: "document", Message: "must not be nil"}
	}
	start := time.Now()
	id := uuid.NewString()
	logger := c.cfg.logger.With("conversionId", id, "document", doc.Path())

	conv := newConversion(doc, c.cfg, logger)
	if err := conv.walk(); err != nil {
		logger.Error("conversion failed", "error", err)
		return nil, wrapFatal(doc, err)
	}
	if mutate {
		if err := conv.apply(); err != nil {
			logger.Error("rendering failed", "error", err)
			return nil, wrapFatal(doc, err)
		}
	}

	result := c.buildResult(conv)
	result.ConversionID = id
	logger.Info("conversion finished",
		"mode", mode(mutate),
		"elements", doc.Count(),
		"results", len(result.Results),
		"warnings", result.WarningCount,
		"duration", time.Since(start),
	)

	if c.cfg.strictMode && result.WarningCount > 0 {
		return result, &bpmnerrors.ConversionError{
			Document: doc.Path(),
			Message:  fmt.Sprintf("strict mode: %d warning(s)", result.WarningCount),
		}
	}
	return result, nil
}

func mode(mutate bool) string {
	if mutate {
		return "convert"
	}
	return "check"
}

// wrapFatal attaches the document to a fatal error.
func wrapFatal(doc *dom.Document, err error) error {
	var convErr *bpmnerrors.ConversionError
	if errors.As(err, &convErr) {
		return err
	}
	return &bpmnerrors.ConversionError{Document: doc.Path(), Cause: err}
}

// buildResult counts and filters the collected results.
func (c *Converter) buildResult(conv *conversion) *ConversionResult {
	all := conv.collector.Results()
	result := &ConversionResult{
		Document:     conv.doc,
		Results:      make([]CheckResult, 0, len(all)),
		convertibles: make(map[string]convertible.Convertible, len(all)),
	}
	for _, r := range all {
		for _, m := range r.Messages {
			switch m.Severity {
			case SeverityInfo:
				result.InfoCount++
			case SeverityTask:
				result.TaskCount++
			case SeverityReview:
				result.ReviewCount++
			case SeverityWarning:
				result.WarningCount++
			}
		}
		result.Results = append(result.Results, r.Filter(c.cfg.minimumSeverity))
	}
	for _, n := range conv.order {
		result.convertibles[n.ID()] = conv.convertibles[n]
	}
	result.Success = result.WarningCount == 0
	return result
}
