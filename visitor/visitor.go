// Package visitor defines conversion rules and the context they run in.
//
// A Visitor matches one element or attribute name. The converter walks the
// source document and, for every element, runs the element visitors that
// match it and then the attribute visitors for each attribute present.
// Visitors never touch the document directly; they work through Context.
package visitor

import (
	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/message"
	"github.com/erraggy/bpmnconv/properties"
)

// TargetKind distinguishes element rules from attribute rules.
type TargetKind int

const (
	// ElementTarget rules match an element name.
	ElementTarget TargetKind = iota
	// AttributeTarget rules match an attribute name.
	AttributeTarget
)

// String returns the string representation of the target kind.
func (k TargetKind) String() string {
	if k == AttributeTarget {
		return "attribute"
	}
	return "element"
}

// Target is the qualified name a visitor is dispatched for. Unprefixed
// attributes have an empty NamespaceURI.
type Target struct {
	Kind         TargetKind
	NamespaceURI string
	LocalName    string
}

// Visitor is one conversion rule.
type Visitor interface {
	// Name identifies the rule in exclusion lists.
	Name() string
	// Target is the element or attribute the rule is dispatched for.
	Target() Target
	// CanVisit narrows the rule to the contexts it applies to.
	CanVisit(ctx Context) bool
	// Visit applies the rule. A returned error aborts the conversion.
	Visit(ctx Context) error
}

// Context is everything a visitor may do while the walk stands on one
// element.
type Context interface {
	// Element returns the element being visited.
	Element() dom.Node
	// RemoveElement removes the element once the walk is over.
	RemoveElement()
	// RemoveAttribute removes an attribute of the element once the walk is over.
	RemoveAttribute(namespaceURI, localName string)
	// AddMessage records a message on the enclosing process element.
	AddMessage(sev severity.Severity, msg message.Message) error
	// SetAsProcessElement makes the element a process element converted to c.
	SetAsProcessElement(c convertible.Convertible) error
	// Convertible returns the convertible of the nearest process element,
	// starting at the element itself, for which accept is true. capability
	// names what is looked for in the error when there is none.
	Convertible(capability string, accept func(convertible.Convertible) bool) (convertible.Convertible, error)
	// Notify sends an observation to the converter's notifier.
	Notify(event any)
	// Properties returns the properties of the run.
	Properties() *properties.Properties
}
