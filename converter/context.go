package converter

import (
	"slices"

	"github.com/erraggy/bpmnconv/bpmnerrors"
	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/internal/issues"
	"github.com/erraggy/bpmnconv/message"
	"github.com/erraggy/bpmnconv/properties"
	"github.com/erraggy/bpmnconv/visitor"
)

// attrRef names one attribute queued for removal.
type attrRef struct {
	node         dom.Node
	namespaceURI string
	localName    string
}

// conversion is the state of one document's conversion. It is owned by a
// single goroutine.
type conversion struct {
	doc      *dom.Document
	props    *properties.Properties
	registry *visitor.Registry
	notifier Notifier
	logger   Logger

	collector *issues.Collector
	// convertibles and results are keyed by process element
	convertibles map[dom.Node]convertible.Convertible
	results      map[dom.Node]*issues.Result
	// order lists process elements in registration order
	order []dom.Node

	removedElements []dom.Node
	removed         map[dom.Node]bool
	removedAttrs    []attrRef
	// excluded elements are left as they are, with their content
	excluded map[dom.Node]bool
}

func newConversion(doc *dom.Document, cfg *convertConfig, logger Logger) *conversion {
	return &conversion{
		doc:          doc,
		props:        cfg.props,
		registry:     cfg.registry,
		notifier:     cfg.notifier,
		logger:       logger,
		collector:    issues.NewCollector(),
		convertibles: make(map[dom.Node]convertible.Convertible),
		results:      make(map[dom.Node]*issues.Result),
		removed:      make(map[dom.Node]bool),
		excluded:     make(map[dom.Node]bool),
	}
}

// elementContext is the visitor.Context for one element of a conversion.
type elementContext struct {
	conv *conversion
	node dom.Node
}

var _ visitor.Context = (*elementContext)(nil)

func (c *elementContext) Element() dom.Node { return c.node }

func (c *elementContext) RemoveElement() {
	if c.conv.removed[c.node] {
		return
	}
	c.conv.removed[c.node] = true
	c.conv.removedElements = append(c.conv.removedElements, c.node)
}

func (c *elementContext) RemoveAttribute(namespaceURI, localName string) {
	ref := attrRef{node: c.node, namespaceURI: namespaceURI, localName: localName}
	if slices.Contains(c.conv.removedAttrs, ref) {
		return
	}
	c.conv.removedAttrs = append(c.conv.removedAttrs, ref)
}

func (c *elementContext) AddMessage(sev Severity, msg message.Message) error {
	for n := c.node; !n.IsZero(); n = n.Parent() {
		if r, ok := c.conv.results[n]; ok {
			r.Add(issues.Message{Severity: sev, Message: msg.Text, Link: msg.Link})
			return nil
		}
	}
	return &bpmnerrors.ConvertibleNotFoundError{
		Capability:  "process element",
		ElementType: c.node.LocalName(),
		ElementID:   c.node.ID(),
	}
}

func (c *elementContext) SetAsProcessElement(conv convertible.Convertible) error {
	n := c.node
	id := n.ID()
	if id == "" {
		return &bpmnerrors.MissingIDError{ElementType: n.LocalName(), Name: n.Name()}
	}
	r, err := c.conv.collector.Register(id, n.Name(), n.LocalName())
	if err != nil {
		return err
	}
	r.Path = c.conv.pathOf(n)
	c.conv.convertibles[n] = conv
	c.conv.results[n] = r
	c.conv.order = append(c.conv.order, n)
	return nil
}

func (c *elementContext) Convertible(capability string, accept func(convertible.Convertible) bool) (convertible.Convertible, error) {
	for n := c.node; !n.IsZero(); n = n.Parent() {
		if conv, ok := c.conv.convertibles[n]; ok && accept(conv) {
			return conv, nil
		}
	}
	return nil, &bpmnerrors.ConvertibleNotFoundError{
		Capability:  capability,
		ElementType: c.node.LocalName(),
		ElementID:   c.node.ID(),
	}
}

func (c *elementContext) Notify(event any) { c.conv.notifier.Notify(event) }

func (c *elementContext) Properties() *properties.Properties { return c.conv.props }

// pathOf lists the ids of the process elements enclosing n and n itself,
// outermost first, skipping the definitions root.
func (c *conversion) pathOf(n dom.Node) string {
	ids := []string{n.ID()}
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		if _, ok := c.results[p]; ok && !p.IsBPMN("definitions") {
			ids = append(ids, p.ID())
		}
	}
	slices.Reverse(ids)
	return issues.FormatPath(ids...)
}

// suppressed reports whether an ancestor of n is queued for removal. The
// rule that removed the ancestor consumed its content.
func (c *conversion) suppressed(n dom.Node) bool {
	for p := n.Parent(); !p.IsZero(); p = p.Parent() {
		if c.removed[p] {
			return true
		}
	}
	return false
}
