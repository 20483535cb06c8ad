package visitor

import (
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/expression"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/message"
)

// owner returns the BPMN element an extension element or attribute belongs
// to, skipping extensionElements and enclosing camunda elements.
func owner(n dom.Node) dom.Node {
	p := n.Parent()
	for !p.IsZero() && (dom.IsCamunda(p.NamespaceURI()) || p.IsBPMN("extensionElements")) {
		p = p.Parent()
	}
	return p
}

// ownerIs reports whether the extension element in ctx belongs to one of
// the named BPMN elements.
func ownerIs(localNames ...string) func(Context) bool {
	return func(ctx Context) bool {
		return isBPMN(owner(ctx.Element()), localNames...)
	}
}

// elementIs reports whether the attribute in ctx sits on one of the named
// BPMN elements.
func elementIs(localNames ...string) func(Context) bool {
	return func(ctx Context) bool {
		return isBPMN(ctx.Element(), localNames...)
	}
}

func not(when func(Context) bool) func(Context) bool {
	return func(ctx Context) bool { return !when(ctx) }
}

func isBPMN(n dom.Node, localNames ...string) bool {
	for _, name := range localNames {
		if n.IsBPMN(name) {
			return true
		}
	}
	return false
}

// jobElements can carry a zeebe:taskDefinition.
var jobElements = []string{
	"serviceTask", "sendTask", "scriptTask", "businessRuleTask",
	"intermediateThrowEvent", "endEvent", "messageEventDefinition",
}

// label names the element of ctx in messages, such as "assignee" or
// "inputParameter 'x'".
func label(localName, name string) string {
	if name == "" {
		return localName
	}
	return localName + " '" + name + "'"
}

// convertExpression transforms value and reports through ctx what could
// not be carried over. Values without expressions are returned unchanged;
// expressions outside the supported grammar are returned unchanged with a
// Warning.
func convertExpression(ctx Context, context, value string) (string, error) {
	res := expression.Transform(value)
	if expression.IsExpression(value) && !res.Converted() {
		return value, ctx.AddMessage(severity.SeverityWarning, message.ExpressionNotTransformable(context, value))
	}
	if res.HasMethodInvocation {
		if err := ctx.AddMessage(severity.SeverityWarning, message.MethodInvocation(context, value)); err != nil {
			return "", err
		}
	}
	if res.HasExecution {
		if err := ctx.AddMessage(severity.SeverityWarning, message.ExecutionAccess(context, value)); err != nil {
			return "", err
		}
	}
	return res.NewExpression, nil
}

// feelValue is convertExpression for attributes that always hold an
// expression in the target, such as a mapping source: literal text becomes
// a string literal.
func feelValue(ctx Context, context, value string) (string, error) {
	if value == "" {
		return "=null", nil
	}
	if !expression.IsExpression(value) {
		return "=" + expression.Quote(value), nil
	}
	return convertExpression(ctx, context, value)
}
