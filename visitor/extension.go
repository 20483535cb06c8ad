package visitor

import (
	"regexp"
	"strings"

	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/expression"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/message"
)

func extensionElements() []Visitor {
	v := []Visitor{
		ExtensionElement{Element: "inputOutput", Container: true},
		ExtensionElement{Element: "inputParameter", Convert: convertParameter(convertible.Input)},
		ExtensionElement{Element: "outputParameter", Convert: convertParameter(convertible.Output)},
		ExtensionElement{Element: "properties", Container: true},
		ExtensionElement{Element: "property", Convert: convertProperty},
		ExtensionElement{Element: "executionListener", Convert: convertListener("Execution")},
		ExtensionElement{Element: "taskListener", Convert: convertListener("Task")},
		ExtensionElement{Element: "failedJobRetryTimeCycle", Scope: "job", When: ownerIs(jobElements...), Convert: convertRetries},
		ExtensionElement{
			Element: "failedJobRetryTimeCycle",
			When:    not(ownerIs(jobElements...)),
			Convert: notSupported("only elements executed by a job worker have retries", message.LinkRetries),
		},
		ExtensionElement{Element: "connector", Convert: convertConnector},
		ExtensionElement{Element: "field", Scope: "job", When: ownerIs(jobElements...), Convert: convertField},
		ExtensionElement{
			Element: "field",
			When:    not(ownerIs(jobElements...)),
			Convert: notSupported("fields can only be passed to job workers", message.LinkTaskHeaders),
		},
		ExtensionElement{Element: "in", Scope: "callActivity", When: ownerIs("callActivity"), Convert: convertVariables(convertible.Input)},
		ExtensionElement{Element: "out", Scope: "callActivity", When: ownerIs("callActivity"), Convert: convertVariables(convertible.Output)},
		ExtensionElement{
			Element: "in",
			When:    not(ownerIs("callActivity")),
			Convert: notSupported("variables are only propagated by call activities", message.LinkCallActivity),
		},
		ExtensionElement{
			Element: "out",
			When:    not(ownerIs("callActivity")),
			Convert: notSupported("variables are only propagated by call activities", message.LinkCallActivity),
		},
		ExtensionElement{
			Element: "formData",
			Convert: notSupported("generated task forms have to be rebuilt as Camunda Forms", message.LinkForms),
		},
		ExtensionElement{
			Element: "potentialStarter",
			Convert: notSupported("process starters are configured in Identity", message.LinkMigration),
		},
	}
	// Nested content of the elements above, consumed by their rules.
	for _, nested := range []string{
		"value", "list", "map", "entry", "script", "string", "expression",
		"connectorId", "formField", "validation", "constraint", "resourceAssignmentExpression",
	} {
		v = append(v, ExtensionElement{Element: nested, Silent: true})
	}
	return v
}

// notSupported reports the visited extension element as unsupported.
func notSupported(reason, link string) func(Context) error {
	return func(ctx Context) error {
		n := ctx.Element()
		return ctx.AddMessage(severity.SeverityWarning,
			message.ElementNotSupportedWithReason(n.LocalName(), owner(n).LocalName(), reason, link))
	}
}

func convertParameter(direction convertible.Direction) func(Context) error {
	return func(ctx Context) error {
		n := ctx.Element()
		name := n.AttrValue("name")
		if len(n.Children()) > 0 {
			return ctx.AddMessage(severity.SeverityWarning, message.IOMappingNotTransformable(name))
		}
		text := strings.TrimSpace(n.Text())
		context := label(n.LocalName(), name)
		if expression.IsExpression(text) && !expression.IsTraversing(text) {
			return ctx.AddMessage(severity.SeverityWarning, message.ExpressionNotTransformable(context, text))
		}
		source, err := feelValue(ctx, context, text)
		if err != nil {
			return err
		}
		if err := AddConversion(ctx, func(m convertible.DataMapper) {
			m.AddIOMapping(direction, source, name)
		}); err != nil {
			return err
		}
		return ctx.AddMessage(severity.SeverityReview, message.IOMapping(direction.String(), name, text))
	}
}

func convertProperty(ctx Context) error {
	n := ctx.Element()
	name, value := n.AttrValue("name"), n.AttrValue("value")
	if err := AddConversion(ctx, func(p convertible.PropertyHolder) { p.AddProperty(name, value) }); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityInfo, message.Property(name))
}

func convertListener(kind string) func(Context) error {
	return func(ctx Context) error {
		n := ctx.Element()
		implementation := "script"
		for _, attr := range []string{"class", "delegateExpression", "expression"} {
			if v := n.AttrValue(attr); v != "" {
				implementation = v
				break
			}
		}
		return ctx.AddMessage(severity.SeverityWarning, message.Listener(kind, n.AttrValue("event"), implementation))
	}
}

var retryCycle = regexp.MustCompile(`^R(\d+)/`)

func convertRetries(ctx Context) error {
	cycle := strings.TrimSpace(ctx.Element().Text())
	m := retryCycle.FindStringSubmatch(cycle)
	if m == nil {
		return ctx.AddMessage(severity.SeverityWarning, message.RetriesNotTransformable(cycle))
	}
	if err := AddConversion(ctx, func(t convertible.TaskDefinitionHolder) { t.SetRetries(m[1]) }); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityReview, message.Retries(cycle, m[1]))
}

func convertConnector(ctx Context) error {
	id := ""
	if c, ok := ctx.Element().Child(dom.NamespaceCamunda, "connectorId"); ok {
		id = strings.TrimSpace(c.Text())
	}
	return ctx.AddMessage(severity.SeverityWarning, message.Connector(id))
}

func convertField(ctx Context) error {
	n := ctx.Element()
	name := n.AttrValue("name")
	value := n.AttrValue("stringValue")
	if v := n.AttrValue("expression"); v != "" {
		value = v
	}
	for _, child := range []string{"string", "expression"} {
		if c, ok := n.Child(dom.NamespaceCamunda, child); ok {
			value = strings.TrimSpace(c.Text())
		}
	}
	if err := AddConversion(ctx, func(m convertible.DataMapper) { m.AddTaskHeader(name, value) }); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityReview, message.Field(name))
}

func convertVariables(direction convertible.Direction) func(Context) error {
	return func(ctx Context) error {
		n := ctx.Element()
		if n.AttrValue("variables") == "all" {
			if err := AddConversion(ctx, func(c *convertible.CallActivity) {
				c.SetCalledElement(func(e *convertible.CalledElement) {
					if direction == convertible.Input {
						e.PropagateAllParentVariables = true
					} else {
						e.PropagateAllChildVariables = true
					}
				})
			}); err != nil {
				return err
			}
			return ctx.AddMessage(severity.SeverityReview, message.Variables(direction.String(), true))
		}
		if n.AttrValue("businessKey") != "" {
			return ctx.AddMessage(severity.SeverityWarning, message.AttributeNotSupportedWithReason(
				"businessKey", "callActivity", "business keys do not exist in Zeebe", message.LinkCallActivity))
		}
		target := n.AttrValue("target")
		from := n.AttrValue("source")
		source := "=" + from
		if expr := n.AttrValue("sourceExpression"); expr != "" {
			from = expr
			var err error
			if source, err = feelValue(ctx, label(n.LocalName(), target), expr); err != nil {
				return err
			}
		}
		if err := AddConversion(ctx, func(c *convertible.CallActivity) {
			c.AddIOMapping(direction, source, target)
		}); err != nil {
			return err
		}
		return ctx.AddMessage(severity.SeverityReview, message.IOMapping(direction.String(), target, from))
	}
}
