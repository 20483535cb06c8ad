package visitor

import (
	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/expression"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/message"
)

func extensionAttributes() []Visitor {
	return []Visitor{
		delegate("class"),
		delegate("delegateExpression"),
		delegate("expression"),
		ExtensionAttribute{Attribute: "topic", When: elementIs(jobElements...), Convert: convertTopic},
		ExtensionAttribute{Attribute: "type", When: elementIs(jobElements...), Convert: removed("type", "every task of this kind is executed by a job worker")},
		ExtensionAttribute{Attribute: "resultVariable", Scope: "decision", When: decisionTask, Convert: convertDecisionResultVariable},
		ExtensionAttribute{Attribute: "resultVariable", When: both(elementIs(jobElements...), not(decisionTask)), Convert: convertResultVariable},
		assignment("assignee", func(a *convertible.Assignment, v string) { a.Assignee = v }),
		assignment("candidateGroups", func(a *convertible.Assignment, v string) { a.CandidateGroups = v }),
		assignment("candidateUsers", func(a *convertible.Assignment, v string) { a.CandidateUsers = v }),
		schedule("dueDate", func(s *convertible.Schedule, v string) { s.DueDate = v }),
		schedule("followUpDate", func(s *convertible.Schedule, v string) { s.FollowUpDate = v }),
		ExtensionAttribute{Attribute: "formKey", Scope: "userTask", When: elementIs("userTask"), Convert: convertForm("key", "formKey", func(f *convertible.Form, v string) { f.FormKey = v })},
		ExtensionAttribute{Attribute: "formRef", Scope: "userTask", When: elementIs("userTask"), Convert: convertForm("reference", "formId", func(f *convertible.Form, v string) { f.FormID = v })},
		ExtensionAttribute{Attribute: "decisionRef", When: elementIs("businessRuleTask"), Convert: convertDecisionRef},
		ExtensionAttribute{Attribute: "mapDecisionResult", When: elementIs("businessRuleTask"), Convert: convertMapDecisionResult},
		ExtensionAttribute{Attribute: "collection", When: elementIs("multiInstanceLoopCharacteristics"), Convert: convertCollection},
		ExtensionAttribute{Attribute: "elementVariable", When: elementIs("multiInstanceLoopCharacteristics"), Convert: convertElementVariable},
		ExtensionAttribute{Attribute: "versionTag", When: elementIs("process"), Convert: convertVersionTag},
		ExtensionAttribute{Attribute: "asyncBefore", Convert: removed("asyncBefore", "there are no asynchronous continuations in Zeebe")},
		ExtensionAttribute{Attribute: "asyncAfter", Convert: removed("asyncAfter", "there are no asynchronous continuations in Zeebe")},
		ExtensionAttribute{Attribute: "exclusive", Convert: removed("exclusive", "jobs are not locked per process instance in Zeebe")},
		ExtensionAttribute{Attribute: "historyTimeToLive", Convert: removed("historyTimeToLive", "history retention is configured in the cluster")},
		ExtensionAttribute{Attribute: "isStartableInTasklist", Convert: removed("isStartableInTasklist", "process visibility is configured in Tasklist")},
		ExtensionAttribute{Attribute: "modelerTemplate", Convert: removed("modelerTemplate", "element templates are not migrated")},
		ExtensionAttribute{Attribute: "modelerTemplateVersion", Convert: removed("modelerTemplateVersion", "element templates are not migrated")},
	}
}

func both(a, b func(Context) bool) func(Context) bool {
	return func(ctx Context) bool { return a(ctx) && b(ctx) }
}

// decisionTask holds for a business rule task that references a decision.
func decisionTask(ctx Context) bool {
	n := ctx.Element()
	if !n.IsBPMN("businessRuleTask") {
		return false
	}
	_, ok := n.Attr(dom.NamespaceCamunda, "decisionRef")
	return ok
}

func removed(attribute, reason string) func(Context, string) error {
	return func(ctx Context, _ string) error {
		return ctx.AddMessage(severity.SeverityInfo, message.AttributeRemoved(attribute, reason))
	}
}

// transformed reports an attribute moved into a zeebe element: at Review
// when its value held an expression, at Info otherwise.
func transformed(ctx Context, attribute, value, target string) error {
	sev := severity.SeverityInfo
	if expression.IsExpression(value) {
		sev = severity.SeverityReview
	}
	return ctx.AddMessage(sev, message.AttributeTransformed(attribute, value, target))
}

func delegate(attribute string) ExtensionAttribute {
	return ExtensionAttribute{
		Attribute: attribute,
		When:      elementIs(jobElements...),
		Convert: func(ctx Context, value string) error {
			jobType := ctx.Properties().DefaultJobType()
			if err := AddConversion(ctx, func(t convertible.TaskDefinitionHolder) { t.SetTaskType(jobType) }); err != nil {
				return err
			}
			if err := AddConversion(ctx, func(m convertible.DataMapper) { m.AddTaskHeader(attribute, value) }); err != nil {
				return err
			}
			return ctx.AddMessage(severity.SeverityTask, message.Delegate(attribute, value, jobType))
		},
	}
}

func convertTopic(ctx Context, value string) error {
	if err := AddConversion(ctx, func(t convertible.TaskDefinitionHolder) { t.SetTaskType(value) }); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityInfo, message.Topic(value))
}

func convertDecisionResultVariable(ctx Context, value string) error {
	if err := AddConversion(ctx, func(b *convertible.BusinessRuleTask) {
		b.SetCalledDecision(func(d *convertible.CalledDecision) { d.ResultVariable = value })
	}); err != nil {
		return err
	}
	return transformed(ctx, "resultVariable", value, "zeebe:calledDecision")
}

func convertResultVariable(ctx Context, value string) error {
	header := ctx.Properties().ResultVariableHeader()
	if err := AddConversion(ctx, func(m convertible.DataMapper) { m.AddTaskHeader(header, value) }); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityReview, message.ResultVariable(value, header))
}

func assignment(attribute string, set func(*convertible.Assignment, string)) ExtensionAttribute {
	return ExtensionAttribute{
		Attribute: attribute,
		When:      elementIs("userTask"),
		Convert: func(ctx Context, value string) error {
			converted, err := convertExpression(ctx, attribute, value)
			if err != nil {
				return err
			}
			if err := AddConversion(ctx, func(u *convertible.UserTask) {
				u.SetAssignment(func(a *convertible.Assignment) { set(a, converted) })
			}); err != nil {
				return err
			}
			return transformed(ctx, attribute, value, "zeebe:assignmentDefinition")
		},
	}
}

func schedule(attribute string, set func(*convertible.Schedule, string)) ExtensionAttribute {
	return ExtensionAttribute{
		Attribute: attribute,
		When:      elementIs("userTask"),
		Convert: func(ctx Context, value string) error {
			converted, err := convertExpression(ctx, attribute, value)
			if err != nil {
				return err
			}
			if err := AddConversion(ctx, func(u *convertible.UserTask) {
				u.SetSchedule(func(s *convertible.Schedule) { set(s, converted) })
			}); err != nil {
				return err
			}
			return transformed(ctx, attribute, value, "zeebe:taskSchedule")
		},
	}
}

func convertForm(kind, target string, set func(*convertible.Form, string)) func(Context, string) error {
	return func(ctx Context, value string) error {
		if err := AddConversion(ctx, func(u *convertible.UserTask) {
			u.SetForm(func(f *convertible.Form) { set(f, value) })
		}); err != nil {
			return err
		}
		return ctx.AddMessage(severity.SeverityReview, message.Form(kind, value, "zeebe:formDefinition "+target))
	}
}

func convertDecisionRef(ctx Context, value string) error {
	converted, err := convertExpression(ctx, "decisionRef", value)
	if err != nil {
		return err
	}
	if err := AddConversion(ctx, func(b *convertible.BusinessRuleTask) {
		b.SetCalledDecision(func(d *convertible.CalledDecision) { d.DecisionID = converted })
	}); err != nil {
		return err
	}
	return transformed(ctx, "decisionRef", value, "zeebe:calledDecision")
}

func convertMapDecisionResult(ctx Context, value string) error {
	return ctx.AddMessage(severity.SeverityReview, message.DecisionResult(value))
}

func convertCollection(ctx Context, value string) error {
	collection := "=" + value
	if expression.IsExpression(value) {
		var err error
		if collection, err = convertExpression(ctx, "collection", value); err != nil {
			return err
		}
	}
	if err := AddConversion(ctx, func(l convertible.LoopHolder) {
		l.SetLoop(func(lc *convertible.LoopCharacteristics) { lc.InputCollection = collection })
	}); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityReview, message.AttributeTransformed("collection", value, "zeebe:loopCharacteristics inputCollection"))
}

func convertElementVariable(ctx Context, value string) error {
	if err := AddConversion(ctx, func(l convertible.LoopHolder) {
		l.SetLoop(func(lc *convertible.LoopCharacteristics) { lc.InputElement = value })
	}); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityInfo, message.AttributeTransformed("elementVariable", value, "zeebe:loopCharacteristics inputElement"))
}

func convertVersionTag(ctx Context, value string) error {
	if err := AddConversion(ctx, func(p *convertible.Process) { p.SetVersionTag(value) }); err != nil {
		return err
	}
	return ctx.AddMessage(severity.SeverityInfo, message.AttributeTransformed("versionTag", value, "zeebe:versionTag"))
}

func bpmnAttributes() []Visitor {
	return []Visitor{
		BPMNAttribute{
			Attribute: "calledElement",
			When:      elementIs("callActivity"),
			Remove:    true,
			Convert: func(ctx Context, value string) error {
				converted, err := convertExpression(ctx, "calledElement", value)
				if err != nil {
					return err
				}
				if err := AddConversion(ctx, func(c *convertible.CallActivity) {
					c.SetCalledElement(func(e *convertible.CalledElement) { e.ProcessID = converted })
				}); err != nil {
					return err
				}
				return transformed(ctx, "calledElement", value, "zeebe:calledElement")
			},
		},
		BPMNAttribute{
			Attribute: "scriptFormat",
			When:      elementIs("scriptTask"),
			Remove:    true,
			Convert: func(ctx Context, value string) error {
				header := ctx.Properties().ScriptFormatHeader()
				if err := AddConversion(ctx, func(m convertible.DataMapper) { m.AddTaskHeader(header, value) }); err != nil {
					return err
				}
				return ctx.AddMessage(severity.SeverityInfo, message.ScriptFormat(value, header))
			},
		},
	}
}

func unsupportedAttributes() []Visitor {
	reason := func(attribute, element, why, link string) func(string) message.Message {
		return func(string) message.Message {
			return message.AttributeNotSupportedWithReason(attribute, element, why, link)
		}
	}
	v := []Visitor{
		UnsupportedAttribute{Attribute: "formKey", OnElement: "startEvent", Message: reason("formKey", "startEvent", "start forms have to be rebuilt as Camunda Forms", message.LinkForms)},
		UnsupportedAttribute{Attribute: "formRef", OnElement: "startEvent", Message: reason("formRef", "startEvent", "start forms have to be rebuilt as Camunda Forms", message.LinkForms)},
		UnsupportedAttribute{Attribute: "initiator", OnElement: "startEvent", Message: reason("initiator", "startEvent", "the starting user is not available as a variable", message.LinkStartEvents)},
		UnsupportedAttribute{Attribute: "priority", OnElement: "userTask"},
		UnsupportedAttribute{Attribute: "jobPriority"},
		UnsupportedAttribute{Attribute: "taskPriority"},
		UnsupportedAttribute{Attribute: "candidateStarterGroups", OnElement: "process"},
		UnsupportedAttribute{Attribute: "candidateStarterUsers", OnElement: "process"},
		UnsupportedAttribute{Attribute: "errorCodeVariable", Message: reason("errorCodeVariable", "errorEventDefinition", "map the error code with an output mapping", message.LinkErrorEvents)},
		UnsupportedAttribute{Attribute: "errorMessageVariable", Message: reason("errorMessageVariable", "errorEventDefinition", "map the error message with an output mapping", message.LinkErrorEvents)},
		UnsupportedAttribute{Attribute: "errorMessage", OnElement: "error"},
		UnsupportedAttribute{Attribute: "escalationCodeVariable"},
		UnsupportedAttribute{Attribute: "variableName", OnElement: "conditionalEventDefinition"},
		UnsupportedAttribute{Attribute: "variableEvents", OnElement: "conditionalEventDefinition"},
		UnsupportedAttribute{Attribute: "resource", OnElement: "scriptTask", Message: reason("resource", "scriptTask", "external scripts have to be inlined or run by a job worker", message.LinkScriptTask)},
		UnsupportedAttribute{Attribute: "variableMappingClass", OnElement: "callActivity"},
		UnsupportedAttribute{Attribute: "variableMappingDelegateExpression", OnElement: "callActivity"},
	}
	for _, attr := range []string{"formRefBinding", "formRefVersion"} {
		v = append(v, UnsupportedAttribute{Attribute: attr, OnElement: "userTask", Message: reason(attr, "userTask", "the latest deployed form is used", message.LinkForms)})
	}
	for _, attr := range []string{"decisionRefBinding", "decisionRefVersion", "decisionRefVersionTag", "decisionRefTenantId"} {
		v = append(v, UnsupportedAttribute{Attribute: attr, OnElement: "businessRuleTask", Message: reason(attr, "businessRuleTask", "the latest deployed decision is used", message.LinkBusinessRule)})
	}
	for _, attr := range []string{"calledElementBinding", "calledElementVersion", "calledElementVersionTag", "calledElementTenantId"} {
		v = append(v, UnsupportedAttribute{Attribute: attr, OnElement: "callActivity", Message: reason(attr, "callActivity", "the latest deployed process is called", message.LinkCallActivity)})
	}
	for _, attr := range []string{"caseRef", "caseBinding", "caseVersion", "caseTenantId"} {
		v = append(v, UnsupportedAttribute{Attribute: attr, OnElement: "callActivity", Message: reason(attr, "callActivity", "case management is not available", message.LinkSupportedBPMN)})
	}
	return v
}
