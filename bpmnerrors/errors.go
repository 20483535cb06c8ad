// Package bpmnerrors provides structured error types for bpmnconv.
//
// Every error in this package is fatal for the document being converted:
// conversion of that document stops and no partial output is produced.
// Expected problems such as unsupported attributes are never errors; they
// are reported as messages in the conversion result instead.
//
// # Error Categories
//
//   - ParseError: the source document is not well-formed XML or has no root
//   - DuplicateIDError: two process elements share an id
//   - MissingIDError: a process element has no id attribute
//   - ConvertibleNotFoundError: no enclosing element offers the requested capability
//   - ConversionError: a conversion rule or the rendering step failed
//   - ConfigError: invalid converter properties or input options
//
// # Usage with errors.Is
//
//	result, err := converter.Convert("order.bpmn")
//	if err != nil {
//	    var dup *bpmnerrors.DuplicateIDError
//	    if errors.As(err, &dup) {
//	        // dup.ID names the offending element
//	    }
//	}
package bpmnerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrDuplicateElement indicates a process element id was registered twice.
	ErrDuplicateElement = errors.New("duplicate element id")

	// ErrMissingID indicates a process element without an id attribute.
	ErrMissingID = errors.New("missing element id")

	// ErrConvertibleNotFound indicates a failed enclosing convertible lookup.
	ErrConvertibleNotFound = errors.New("convertible not found")

	// ErrConversion indicates a conversion failure.
	ErrConversion = errors.New("conversion error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to read a BPMN document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// DuplicateIDError is returned when a second process element tries to
// register an id that is already taken. The first registration is kept.
type DuplicateIDError struct {
	// ID is the duplicated element id
	ID string
	// ElementType is the local name of the element that attempted the registration
	ElementType string
	// ExistingType is the local name of the element that owns the id
	ExistingType string
}

// Error returns a human-readable error message.
func (e *DuplicateIDError) Error() string {
	msg := fmt.Sprintf("element with id '%s' is already contained in list of results", e.ID)
	if e.ElementType != "" && e.ExistingType != "" {
		msg += fmt.Sprintf(" (%s conflicts with %s)", e.ElementType, e.ExistingType)
	}
	return msg
}

// Unwrap returns nil as DuplicateIDError has no underlying cause.
func (e *DuplicateIDError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateElement
}

// MissingIDError is returned when an element that must become a process
// element has no id attribute.
type MissingIDError struct {
	// ElementType is the local name of the element
	ElementType string
	// Name is the element's name attribute, if any
	Name string
}

// Error returns a human-readable error message.
func (e *MissingIDError) Error() string {
	msg := "element has no id"
	if e.ElementType != "" {
		msg = e.ElementType + " has no id"
	}
	if e.Name != "" {
		msg += fmt.Sprintf(" (name: %q)", e.Name)
	}
	return msg
}

// Unwrap returns nil as MissingIDError has no underlying cause.
func (e *MissingIDError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *MissingIDError) Is(target error) bool {
	return target == ErrMissingID
}

// ConvertibleNotFoundError is returned when no ancestor of an element holds
// a convertible with the requested capability. It signals a wiring mistake
// in the conversion rules, not a problem in the source document.
type ConvertibleNotFoundError struct {
	// Capability names the interface that was requested
	Capability string
	// ElementType is the local name of the element the lookup started at
	ElementType string
	// ElementID is the id of the element the lookup started at, if any
	ElementID string
}

// Error returns a human-readable error message.
func (e *ConvertibleNotFoundError) Error() string {
	msg := "no enclosing convertible"
	if e.Capability != "" {
		msg += " of type " + e.Capability
	}
	if e.ElementType != "" {
		msg += " for " + e.ElementType
		if e.ElementID != "" {
			msg += fmt.Sprintf(" '%s'", e.ElementID)
		}
	}
	return msg
}

// Unwrap returns nil as ConvertibleNotFoundError has no underlying cause.
func (e *ConvertibleNotFoundError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ConvertibleNotFoundError) Is(target error) bool {
	return target == ErrConvertibleNotFound
}

// ConversionError represents a failure while converting one document.
type ConversionError struct {
	// Document is the file path or source identifier
	Document string
	// ElementID is the id of the element being processed, if known
	ElementID string
	// Message describes the conversion failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConversionError) Error() string {
	msg := "conversion error"
	if e.Document != "" {
		msg += " in " + e.Document
	}
	if e.ElementID != "" {
		msg += " at " + e.ElementID
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
