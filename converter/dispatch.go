package converter

import (
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/message"
	"github.com/erraggy/bpmnconv/visitor"
	"github.com/erraggy/bpmnconv/walker"
)

// walk visits every element of the document once, in document order.
func (c *conversion) walk() error {
	var walkErr error
	err := walker.Walk(c.doc, walker.WithElementHandler(func(_ *walker.WalkContext, n dom.Node) walker.Action {
		action, err := c.visit(n)
		if err != nil {
			walkErr = err
			return walker.Stop
		}
		return action
	}))
	if err != nil {
		return err
	}
	return walkErr
}

// visit runs the element rules for n and then the attribute rules for each
// of its attributes. Content whose rule is excluded is left as it is: an
// excluded element keeps its attributes and children.
func (c *conversion) visit(n dom.Node) (walker.Action, error) {
	if c.suppressed(n) {
		return walker.Continue, nil
	}
	ctx := &elementContext{conv: c, node: n}

	visited, err := c.dispatch(ctx, c.registry.ElementVisitors(n))
	if err != nil {
		return walker.Stop, err
	}
	if !visited {
		target := visitor.Target{Kind: visitor.ElementTarget, NamespaceURI: n.NamespaceURI(), LocalName: n.LocalName()}
		switch {
		case c.registry.Excludes(target, ctx):
			c.logger.Debug("skipping excluded element", "element", n.String())
			c.excluded[n] = true
			return walker.SkipChildren, nil
		case dom.IsCamunda(n.NamespaceURI()):
			ctx.RemoveElement()
			if err := ctx.AddMessage(SeverityWarning, message.UnknownElement(n.LocalName())); err != nil {
				return walker.Stop, err
			}
		default:
			c.notifier.Notify(UnhandledElement{Element: n.String(), Path: n.Path()})
		}
	}
	if c.removed[n] {
		return walker.Continue, nil
	}

	for _, a := range n.Attrs() {
		visited, err := c.dispatch(ctx, c.registry.AttributeVisitors(a.NamespaceURI, a.LocalName))
		if err != nil {
			return walker.Stop, err
		}
		if visited || !dom.IsCamunda(a.NamespaceURI) {
			continue
		}
		target := visitor.Target{Kind: visitor.AttributeTarget, NamespaceURI: a.NamespaceURI, LocalName: a.LocalName}
		if c.registry.Excludes(target, ctx) {
			c.logger.Debug("skipping excluded attribute", "attribute", a.LocalName, "element", n.String())
			continue
		}
		ctx.RemoveAttribute(a.NamespaceURI, a.LocalName)
		if err := ctx.AddMessage(SeverityWarning, message.UnknownAttribute(a.LocalName, n.LocalName())); err != nil {
			return walker.Stop, err
		}
	}
	return walker.Continue, nil
}

// dispatch runs the visitors that accept ctx, in registry order, and
// reports whether any did.
func (c *conversion) dispatch(ctx *elementContext, visitors []visitor.Visitor) (bool, error) {
	visited := false
	for _, v := range visitors {
		if !v.CanVisit(ctx) {
			continue
		}
		c.logger.Debug("visiting", "visitor", v.Name(), "target", v.Target().Kind.String(), "element", ctx.node.String())
		if err := v.Visit(ctx); err != nil {
			return visited, err
		}
		visited = true
	}
	return visited, nil
}
