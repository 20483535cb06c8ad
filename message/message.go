// Package message is the catalog of texts reported by the conversion rules.
package message

import "fmt"

// Message is the text and documentation link of one conversion note. The
// severity is chosen by the rule that reports it.
type Message struct {
	Text string
	Link string
}

const docs = "https://docs.camunda.io/docs/"

// Documentation links.
const (
	LinkMigration      = docs + "guides/migrating-from-camunda-7/"
	LinkAdjustingCode  = docs + "guides/migrating-from-camunda-7/adjusting-bpmn-models/"
	LinkServiceTask    = docs + "components/modeler/bpmn/service-tasks/"
	LinkScriptTask     = docs + "components/modeler/bpmn/script-tasks/"
	LinkUserTask       = docs + "components/modeler/bpmn/user-tasks/"
	LinkBusinessRule   = docs + "components/modeler/bpmn/business-rule-tasks/"
	LinkCallActivity   = docs + "components/modeler/bpmn/call-activities/"
	LinkMultiInstance  = docs + "components/modeler/bpmn/multi-instance/"
	LinkVariables      = docs + "components/concepts/variables/#inputoutput-variable-mappings"
	LinkFEEL           = docs + "components/modeler/feel/what-is-feel/"
	LinkJobWorkers     = docs + "components/concepts/job-workers/"
	LinkTaskHeaders    = docs + "components/modeler/bpmn/service-tasks/#task-headers"
	LinkConnectors     = docs + "components/connectors/introduction-to-connectors/"
	LinkListeners      = docs + "components/concepts/execution-listeners/"
	LinkForms          = docs + "components/modeler/forms/utilizing-forms/"
	LinkSequenceFlow   = docs + "components/modeler/bpmn/exclusive-gateways/#conditions"
	LinkStartEvents    = docs + "components/modeler/bpmn/none-events/"
	LinkErrorEvents    = docs + "components/modeler/bpmn/error-events/"
	LinkRetries        = docs + "components/concepts/job-workers/#timeouts"
	LinkSupportedBPMN  = docs + "components/modeler/bpmn/bpmn-coverage/"
	LinkProcessHistory = docs + "self-managed/operational-guides/data-retention/"
)

// Script reports an inline script moved to a task header.
func Script(jobType, header string) Message {
	return Message{
		Text: fmt.Sprintf("Script is transformed to a job worker of type '%s'. Please implement a job worker that executes the script from task header '%s'.", jobType, header),
		Link: LinkScriptTask,
	}
}

// ScriptFormat reports the script language moved to a task header.
func ScriptFormat(format, header string) Message {
	return Message{
		Text: fmt.Sprintf("Script format '%s' is stored in task header '%s'.", format, header),
		Link: LinkScriptTask,
	}
}

// ResultVariable reports a result variable moved to a task header.
func ResultVariable(variable, header string) Message {
	return Message{
		Text: fmt.Sprintf("Result variable '%s' is stored in task header '%s'. The job worker has to set it.", variable, header),
		Link: LinkTaskHeaders,
	}
}

// Delegate reports a delegate implementation moved to a task header.
func Delegate(attribute, value, jobType string) Message {
	return Message{
		Text: fmt.Sprintf("Delegate %s '%s' has been transformed to job type '%s' with task header '%s'. Please implement a job worker.", attribute, value, jobType, attribute),
		Link: LinkJobWorkers,
	}
}

// Topic reports an external task topic used as job type.
func Topic(topic string) Message {
	return Message{
		Text: fmt.Sprintf("External task topic '%s' is used as job type.", topic),
		Link: LinkServiceTask,
	}
}

// IOMapping asks to review a converted variable mapping.
func IOMapping(direction, name, source string) Message {
	return Message{
		Text: fmt.Sprintf("'%s': Please review source '%s' of %s mapping.", name, source, direction),
		Link: LinkVariables,
	}
}

// IOMappingNotTransformable reports a mapping with a list, map or script value.
func IOMappingNotTransformable(name string) Message {
	return Message{
		Text: fmt.Sprintf("'%s': Only strings or expressions are supported as input/output in Zeebe.", name),
		Link: LinkVariables,
	}
}

// ExpressionNotTransformable reports an expression outside the supported grammar.
func ExpressionNotTransformable(context, expr string) Message {
	return Message{
		Text: fmt.Sprintf("%s: Only simple traversing expressions are supported for conversion, is: '%s'.", context, expr),
		Link: LinkFEEL,
	}
}

// MethodInvocation reports an expression calling methods.
func MethodInvocation(context, expr string) Message {
	return Message{
		Text: fmt.Sprintf("%s: Expression '%s' invokes a method. Methods cannot be called in FEEL.", context, expr),
		Link: LinkFEEL,
	}
}

// ExecutionAccess reports an expression using the execution object.
func ExecutionAccess(context, expr string) Message {
	return Message{
		Text: fmt.Sprintf("%s: Expression '%s' uses the execution object, which does not exist in Zeebe.", context, expr),
		Link: LinkFEEL,
	}
}

// Expression asks to review a transformed expression.
func Expression(context, from, to string) Message {
	return Message{
		Text: fmt.Sprintf("%s: Expression '%s' has been transformed to '%s'. Please review.", context, from, to),
		Link: LinkFEEL,
	}
}

// AttributeTransformed reports an attribute that moved to a zeebe element.
func AttributeTransformed(attribute, value, target string) Message {
	return Message{
		Text: fmt.Sprintf("Attribute '%s' with value '%s' has been transformed to %s.", attribute, value, target),
		Link: LinkAdjustingCode,
	}
}

// AttributeRemoved reports an attribute dropped because it has no meaning
// in Zeebe.
func AttributeRemoved(attribute, reason string) Message {
	return Message{
		Text: fmt.Sprintf("Attribute '%s' has been removed: %s.", attribute, reason),
		Link: LinkAdjustingCode,
	}
}

// AttributeNotSupported reports an attribute without a Zeebe equivalent.
func AttributeNotSupported(attribute, element string) Message {
	return Message{
		Text: fmt.Sprintf("Attribute '%s' on '%s' is not supported.", attribute, element),
		Link: LinkAdjustingCode,
	}
}

// AttributeNotSupportedWithReason is AttributeNotSupported with an explanation.
func AttributeNotSupportedWithReason(attribute, element, reason, link string) Message {
	return Message{
		Text: fmt.Sprintf("Attribute '%s' on '%s' is not supported: %s.", attribute, element, reason),
		Link: link,
	}
}

// ElementNotSupported reports an element without a Zeebe equivalent.
func ElementNotSupported(element, parent string) Message {
	return Message{
		Text: fmt.Sprintf("Element '%s' on '%s' is not supported.", element, parent),
		Link: LinkSupportedBPMN,
	}
}

// ElementNotSupportedWithReason is ElementNotSupported with an explanation.
func ElementNotSupportedWithReason(element, parent, reason, link string) Message {
	return Message{
		Text: fmt.Sprintf("Element '%s' on '%s' is not supported: %s.", element, parent, reason),
		Link: link,
	}
}

// UnknownElement reports an extension element no rule knows.
func UnknownElement(element string) Message {
	return Message{
		Text: fmt.Sprintf("Element '%s' is unknown and has been removed.", element),
		Link: LinkMigration,
	}
}

// UnknownAttribute reports an extension attribute no rule handled.
func UnknownAttribute(attribute, element string) Message {
	return Message{
		Text: fmt.Sprintf("Attribute '%s' on '%s' is unknown and has been removed.", attribute, element),
		Link: LinkMigration,
	}
}

// Listener reports an execution or task listener.
func Listener(kind, event, implementation string) Message {
	return Message{
		Text: fmt.Sprintf("%s listener for event '%s' implemented by '%s' cannot be transformed. Please use a job worker or an execution listener.", kind, event, implementation),
		Link: LinkListeners,
	}
}

// Retries reports a retry time cycle converted into a retry count.
func Retries(cycle, retries string) Message {
	return Message{
		Text: fmt.Sprintf("Retry time cycle '%s' has been transformed to %s retries. Retry back off has to be set by the job worker.", cycle, retries),
		Link: LinkRetries,
	}
}

// RetriesNotTransformable reports a retry cycle without a repetition count.
func RetriesNotTransformable(cycle string) Message {
	return Message{
		Text: fmt.Sprintf("Retry time cycle '%s' cannot be transformed to a retry count.", cycle),
		Link: LinkRetries,
	}
}

// Property reports an extension property kept as zeebe property.
func Property(name string) Message {
	return Message{
		Text: fmt.Sprintf("Property '%s' has been transformed to a zeebe property.", name),
		Link: LinkAdjustingCode,
	}
}

// Field reports a field injection moved to a task header.
func Field(name string) Message {
	return Message{
		Text: fmt.Sprintf("Field '%s' has been transformed to a task header. The job worker has to read it.", name),
		Link: LinkTaskHeaders,
	}
}

// Connector reports a connector implementation.
func Connector(id string) Message {
	return Message{
		Text: fmt.Sprintf("Connector '%s' cannot be transformed. Please use a Camunda 8 connector or a job worker.", id),
		Link: LinkConnectors,
	}
}

// Form reports a form reference on a user task.
func Form(attribute, value, target string) Message {
	return Message{
		Text: fmt.Sprintf("Form %s '%s' has been transformed to %s. Please make sure the form is deployed.", attribute, value, target),
		Link: LinkForms,
	}
}

// Variables reports a call activity variable propagation setting.
func Variables(direction string, all bool) Message {
	what := "selected variables"
	if all {
		what = "all variables"
	}
	return Message{
		Text: fmt.Sprintf("Propagation of %s (%s) has been transformed. Please review.", what, direction),
		Link: LinkCallActivity,
	}
}

// DecisionResult reports a decision result mapping.
func DecisionResult(mapping string) Message {
	return Message{
		Text: fmt.Sprintf("Decision result mapping '%s' is not supported. The result variable contains the whole decision result.", mapping),
		Link: LinkBusinessRule,
	}
}
