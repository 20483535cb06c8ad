package visitor

import (
	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/message"
)

// ProcessElement registers a BPMN element as a process element.
type ProcessElement struct {
	// Element is the BPMN local name.
	Element string
	// New creates the convertible for the visited node.
	New func(n dom.Node) convertible.Convertible
	// Setup runs after registration, for defaults such as the script job type.
	Setup func(ctx Context, c convertible.Convertible) error
	// Unsupported, when set, is reported as a Warning on the element.
	Unsupported *message.Message
}

func (p ProcessElement) Name() string { return elementName("", "bpmn", p.Element) }

func (p ProcessElement) Target() Target {
	return Target{Kind: ElementTarget, NamespaceURI: dom.NamespaceBPMN, LocalName: p.Element}
}

func (p ProcessElement) CanVisit(Context) bool { return true }

func (p ProcessElement) Visit(ctx Context) error {
	c := p.New(ctx.Element())
	if err := ctx.SetAsProcessElement(c); err != nil {
		return err
	}
	if p.Setup != nil {
		if err := p.Setup(ctx, c); err != nil {
			return err
		}
	}
	if p.Unsupported != nil {
		return ctx.AddMessage(severity.SeverityWarning, *p.Unsupported)
	}
	return nil
}

// BPMNElement is a rule for a BPMN element that is not a process element,
// such as the script of a script task.
type BPMNElement struct {
	Element string
	When    func(ctx Context) bool
	Convert func(ctx Context) error
}

func (b BPMNElement) Name() string { return elementName("", "bpmn", b.Element) }

func (b BPMNElement) Target() Target {
	return Target{Kind: ElementTarget, NamespaceURI: dom.NamespaceBPMN, LocalName: b.Element}
}

func (b BPMNElement) CanVisit(ctx Context) bool { return b.When == nil || b.When(ctx) }

func (b BPMNElement) Visit(ctx Context) error { return b.Convert(ctx) }

// ExtensionElement is a rule for a camunda extension element. The element is
// removed unless it is a Container, whose children carry their own rules
// and which disappears once it is empty. Without Convert, a Warning is
// reported unless the rule is Silent. Scope tells apart rules for the same
// element that apply to different owners.
type ExtensionElement struct {
	Element   string
	Scope     string
	Silent    bool
	Container bool
	When      func(ctx Context) bool
	Convert   func(ctx Context) error
}

func (e ExtensionElement) Name() string { return elementName(e.Scope, "camunda", e.Element) }

func (e ExtensionElement) Target() Target {
	return Target{Kind: ElementTarget, NamespaceURI: dom.NamespaceCamunda, LocalName: e.Element}
}

func (e ExtensionElement) CanVisit(ctx Context) bool { return e.When == nil || e.When(ctx) }

func (e ExtensionElement) Visit(ctx Context) error {
	if !e.Container {
		ctx.RemoveElement()
	}
	if e.Convert != nil {
		return e.Convert(ctx)
	}
	if e.Silent || e.Container {
		return nil
	}
	n := ctx.Element()
	return ctx.AddMessage(severity.SeverityWarning, message.ElementNotSupported(n.LocalName(), owner(n).LocalName()))
}

// ExtensionAttribute is a rule for a camunda attribute. The attribute is
// always removed; Convert receives its value.
type ExtensionAttribute struct {
	Attribute string
	Scope     string
	When      func(ctx Context) bool
	Convert   func(ctx Context, value string) error
}

func (a ExtensionAttribute) Name() string { return attributeName(a.Scope, "camunda", a.Attribute) }

func (a ExtensionAttribute) Target() Target {
	return Target{Kind: AttributeTarget, NamespaceURI: dom.NamespaceCamunda, LocalName: a.Attribute}
}

func (a ExtensionAttribute) CanVisit(ctx Context) bool { return a.When == nil || a.When(ctx) }

func (a ExtensionAttribute) Visit(ctx Context) error {
	value, _ := ctx.Element().Attr(dom.NamespaceCamunda, a.Attribute)
	ctx.RemoveAttribute(dom.NamespaceCamunda, a.Attribute)
	return a.Convert(ctx, value)
}

// BPMNAttribute is a rule for an unprefixed BPMN attribute. The attribute
// is kept unless Remove is set.
type BPMNAttribute struct {
	Attribute string
	Remove    bool
	When      func(ctx Context) bool
	Convert   func(ctx Context, value string) error
}

func (a BPMNAttribute) Name() string { return attributeName("", "", a.Attribute) }

func (a BPMNAttribute) Target() Target {
	return Target{Kind: AttributeTarget, LocalName: a.Attribute}
}

func (a BPMNAttribute) CanVisit(ctx Context) bool { return a.When == nil || a.When(ctx) }

func (a BPMNAttribute) Visit(ctx Context) error {
	value, _ := ctx.Element().Attr("", a.Attribute)
	if a.Remove {
		ctx.RemoveAttribute("", a.Attribute)
	}
	return a.Convert(ctx, value)
}

// UnsupportedAttribute removes a camunda attribute that has no equivalent
// and reports one message, a Warning unless Severity is set. With OnElement
// set, the row only applies to that BPMN element.
type UnsupportedAttribute struct {
	Attribute string
	OnElement string
	Message   func(value string) message.Message
	Severity  *severity.Severity
}

func (u UnsupportedAttribute) Name() string { return attributeName(u.OnElement, "camunda", u.Attribute) }

func (u UnsupportedAttribute) Target() Target {
	return Target{Kind: AttributeTarget, NamespaceURI: dom.NamespaceCamunda, LocalName: u.Attribute}
}

func (u UnsupportedAttribute) CanVisit(ctx Context) bool {
	return u.OnElement == "" || ctx.Element().IsBPMN(u.OnElement)
}

func (u UnsupportedAttribute) Visit(ctx Context) error {
	n := ctx.Element()
	value, _ := n.Attr(dom.NamespaceCamunda, u.Attribute)
	ctx.RemoveAttribute(dom.NamespaceCamunda, u.Attribute)
	msg := message.AttributeNotSupported(u.Attribute, n.LocalName())
	if u.Message != nil {
		msg = u.Message(value)
	}
	sev := severity.SeverityWarning
	if u.Severity != nil {
		sev = *u.Severity
	}
	return ctx.AddMessage(sev, msg)
}

// elementName is "prefix:local", or "scope/prefix:local" for a scoped rule.
func elementName(scope, prefix, local string) string {
	name := prefix + ":" + local
	if scope != "" {
		return scope + "/" + name
	}
	return name
}

// attributeName is "@prefix:local", or "scope@prefix:local" for a scoped
// rule. Unprefixed attributes are "@local".
func attributeName(scope, prefix, local string) string {
	name := local
	if prefix != "" {
		name = prefix + ":" + local
	}
	return scope + "@" + name
}

var (
	_ Visitor = ProcessElement{}
	_ Visitor = BPMNElement{}
	_ Visitor = ExtensionElement{}
	_ Visitor = ExtensionAttribute{}
	_ Visitor = BPMNAttribute{}
	_ Visitor = UnsupportedAttribute{}
)
