package visitor

import (
	"strings"

	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/expression"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/message"
)

func newOf[T any, P interface {
	*T
	convertible.Convertible
}]() func(dom.Node) convertible.Convertible {
	return func(dom.Node) convertible.Convertible { return P(new(T)) }
}

func newEvent(n dom.Node) convertible.Convertible {
	return convertible.NewEvent(n.LocalName())
}

func unsupported(element, reason, link string) *message.Message {
	m := message.ElementNotSupportedWithReason(element, "process", reason, link)
	return &m
}

func processElements() []Visitor {
	v := []Visitor{
		ProcessElement{Element: "definitions", New: newOf[convertible.Definitions]()},
		ProcessElement{Element: "process", New: newOf[convertible.Process]()},
		ProcessElement{Element: "subProcess", New: newOf[convertible.SubProcess]()},
		ProcessElement{Element: "adHocSubProcess", New: newOf[convertible.SubProcess]()},
		ProcessElement{
			Element:     "transaction",
			New:         newOf[convertible.SubProcess](),
			Unsupported: unsupported("transaction", "transactions and compensation handlers have to be remodeled", message.LinkSupportedBPMN),
		},
		ProcessElement{Element: "callActivity", New: newOf[convertible.CallActivity]()},
		ProcessElement{Element: "serviceTask", New: newOf[convertible.ServiceTask]()},
		ProcessElement{Element: "sendTask", New: newOf[convertible.ServiceTask]()},
		ProcessElement{Element: "scriptTask", New: newOf[convertible.ServiceTask](), Setup: setupScriptTask},
		ProcessElement{Element: "userTask", New: newOf[convertible.UserTask]()},
		ProcessElement{Element: "businessRuleTask", New: newOf[convertible.BusinessRuleTask]()},
		ProcessElement{Element: "receiveTask", New: newOf[convertible.ReceiveTask]()},
		ProcessElement{Element: "task", New: newOf[convertible.Activity]()},
		ProcessElement{Element: "manualTask", New: newOf[convertible.Activity]()},
		ProcessElement{Element: "exclusiveGateway", New: newOf[convertible.Gateway]()},
		ProcessElement{Element: "parallelGateway", New: newOf[convertible.Gateway]()},
		ProcessElement{Element: "inclusiveGateway", New: newOf[convertible.Gateway]()},
		ProcessElement{Element: "eventBasedGateway", New: newOf[convertible.Gateway]()},
		ProcessElement{
			Element:     "complexGateway",
			New:         newOf[convertible.Gateway](),
			Unsupported: unsupported("complexGateway", "use an inclusive gateway or remodel the join condition", message.LinkSupportedBPMN),
		},
		ProcessElement{Element: "sequenceFlow", New: newOf[convertible.SequenceFlow]()},
	}
	for _, event := range []string{"startEvent", "endEvent", "intermediateCatchEvent", "intermediateThrowEvent", "boundaryEvent"} {
		v = append(v, ProcessElement{Element: event, New: newEvent})
	}
	return v
}

func setupScriptTask(ctx Context, c convertible.Convertible) error {
	task := c.(convertible.TaskDefinitionHolder)
	task.SetTaskType(ctx.Properties().ScriptJobType())
	return nil
}

func bpmnElements() []Visitor {
	return []Visitor{
		BPMNElement{
			Element: "script",
			When:    func(ctx Context) bool { return ctx.Element().Parent().IsBPMN("scriptTask") },
			Convert: convertScript,
		},
		BPMNElement{
			Element: "conditionExpression",
			When:    func(ctx Context) bool { return ctx.Element().Parent().IsBPMN("sequenceFlow") },
			Convert: convertCondition,
		},
		BPMNElement{
			Element: "completionCondition",
			Convert: convertCompletionCondition,
		},
		BPMNElement{
			Element: "loopCardinality",
			Convert: func(ctx Context) error {
				ctx.RemoveElement()
				return ctx.AddMessage(severity.SeverityWarning, message.ElementNotSupportedWithReason(
					"loopCardinality", "multiInstanceLoopCharacteristics",
					"use an input collection instead", message.LinkMultiInstance))
			},
		},
		BPMNElement{
			Element: "conditionalEventDefinition",
			Convert: func(ctx Context) error {
				return ctx.AddMessage(severity.SeverityWarning, message.ElementNotSupportedWithReason(
					"conditionalEventDefinition", ctx.Element().Parent().LocalName(),
					"conditional events do not exist in Zeebe", message.LinkSupportedBPMN))
			},
		},
	}
}

func convertScript(ctx Context) error {
	props := ctx.Properties()
	script := ctx.Element().Text()
	ctx.RemoveElement()
	if err := AddConversion(ctx, func(m convertible.DataMapper) {
		m.AddTaskHeader(props.ScriptHeader(), script)
	}); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityTask, message.Script(props.ScriptJobType(), props.ScriptHeader()))
}

func convertCondition(ctx Context) error {
	n := ctx.Element()
	if language := n.AttrValue("language"); language != "" {
		return ctx.AddMessage(severity.SeverityWarning, message.ElementNotSupportedWithReason(
			"conditionExpression", "sequenceFlow",
			"script conditions in '"+language+"' have to be rewritten in FEEL", message.LinkSequenceFlow))
	}
	from := strings.TrimSpace(n.Text())
	to, err := condition(ctx, "Condition expression", from)
	if err != nil {
		return err
	}
	if err := AddConversion(ctx, func(s *convertible.SequenceFlow) { s.SetCondition(to) }); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityReview, message.Expression("Condition expression", from, to))
}

func convertCompletionCondition(ctx Context) error {
	from := strings.TrimSpace(ctx.Element().Text())
	to, err := condition(ctx, "Completion condition", from)
	if err != nil {
		return err
	}
	if err := AddConversion(ctx, func(l convertible.LoopHolder) {
		l.SetLoop(func(lc *convertible.LoopCharacteristics) { lc.CompletionCondition = to })
	}); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityReview, message.Expression("Completion condition", from, to))
}

// condition converts a boolean condition. Conditions without delimiters
// are taken as FEEL already.
func condition(ctx Context, context, text string) (string, error) {
	if text != "" && !expression.IsExpression(text) {
		return "=" + text, nil
	}
	return convertExpression(ctx, context, text)
}
