package visitor

import (
	"testing"

	"github.com/erraggy/bpmnconv/bpmnerrors"
	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/internal/severity"
	"github.com/erraggy/bpmnconv/message"
	"github.com/erraggy/bpmnconv/properties"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	severity severity.Severity
	message  message.Message
}

// fakeContext is a Context over a parsed document that records every call.
type fakeContext struct {
	node         dom.Node
	props        *properties.Properties
	convertibles map[dom.Node]convertible.Convertible
	messages     []recorded
	removed      bool
	removedAttrs []string
	events       []any
}

func newFakeContext(n dom.Node) *fakeContext {
	return &fakeContext{
		node:         n,
		props:        properties.Default(),
		convertibles: make(map[dom.Node]convertible.Convertible),
	}
}

// at moves the context to another element and clears what was recorded.
func (f *fakeContext) at(n dom.Node) *fakeContext {
	f.node = n
	f.messages = nil
	f.removed = false
	f.removedAttrs = nil
	return f
}

func (f *fakeContext) Element() dom.Node { return f.node }
func (f *fakeContext) RemoveElement()    { f.removed = true }
func (f *fakeContext) RemoveAttribute(_, localName string) {
	f.removedAttrs = append(f.removedAttrs, localName)
}
func (f *fakeContext) AddMessage(sev severity.Severity, msg message.Message) error {
	f.messages = append(f.messages, recorded{severity: sev, message: msg})
	return nil
}
func (f *fakeContext) SetAsProcessElement(c convertible.Convertible) error {
	f.convertibles[f.node] = c
	return nil
}
func (f *fakeContext) Convertible(capability string, accept func(convertible.Convertible) bool) (convertible.Convertible, error) {
	for n := f.node; !n.IsZero(); n = n.Parent() {
		if c, ok := f.convertibles[n]; ok && accept(c) {
			return c, nil
		}
	}
	return nil, &bpmnerrors.ConvertibleNotFoundError{Capability: capability, ElementType: f.node.LocalName(), ElementID: f.node.ID()}
}
func (f *fakeContext) Notify(event any)                   { f.events = append(f.events, event) }
func (f *fakeContext) Properties() *properties.Properties { return f.props }

var _ Context = (*fakeContext)(nil)

const testModel = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:camunda="http://camunda.org/schema/1.0/bpmn" id="defs">
  <bpmn:process id="p" camunda:versionTag="1.0">
    <bpmn:startEvent id="start" camunda:formKey="embedded:app:start.html"/>
    <bpmn:serviceTask id="service" camunda:class="com.example.Delegate">
      <bpmn:extensionElements>
        <camunda:inputOutput>
          <camunda:inputParameter name="x">${order.items[0]}</camunda:inputParameter>
          <camunda:inputParameter name="static">hello</camunda:inputParameter>
          <camunda:inputParameter name="list"><camunda:list><camunda:value>a</camunda:value></camunda:list></camunda:inputParameter>
          <camunda:outputParameter name="y">${execution.getVariable("z")}</camunda:outputParameter>
        </camunda:inputOutput>
        <camunda:failedJobRetryTimeCycle>R5/PT10M</camunda:failedJobRetryTimeCycle>
        <camunda:executionListener event="start" class="com.example.Listener"/>
      </bpmn:extensionElements>
    </bpmn:serviceTask>
    <bpmn:scriptTask id="script" scriptFormat="groovy"><bpmn:script>println 'hi'</bpmn:script></bpmn:scriptTask>
    <bpmn:userTask id="user" camunda:assignee="${initiator}" camunda:candidateGroups="sales" camunda:formKey="form">
      <bpmn:multiInstanceLoopCharacteristics camunda:collection="${items}" camunda:elementVariable="item">
        <bpmn:completionCondition>${done}</bpmn:completionCondition>
      </bpmn:multiInstanceLoopCharacteristics>
    </bpmn:userTask>
    <bpmn:callActivity id="call" calledElement="child">
      <bpmn:extensionElements>
        <camunda:in variables="all"/>
        <camunda:out source="result" target="total"/>
      </bpmn:extensionElements>
    </bpmn:callActivity>
    <bpmn:sequenceFlow id="flow"><bpmn:conditionExpression>${approved}</bpmn:conditionExpression></bpmn:sequenceFlow>
    <bpmn:sequenceFlow id="literal"><bpmn:conditionExpression>x &gt; 1</bpmn:conditionExpression></bpmn:sequenceFlow>
  </bpmn:process>
</bpmn:definitions>`

func parseModel(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.Parse([]byte(testModel))
	require.NoError(t, err)
	return doc
}

// find returns the first element in document order matching the predicate.
func find(t *testing.T, doc *dom.Document, match func(dom.Node) bool) dom.Node {
	t.Helper()
	stack := []dom.Node{doc.Root()}
	for len(stack) > 0 {
		n := stack[0]
		stack = stack[1:]
		if match(n) {
			return n
		}
		stack = append(n.Children(), stack...)
	}
	t.Fatal("element not found")
	return dom.Node{}
}

func byID(id string) func(dom.Node) bool {
	return func(n dom.Node) bool { return n.ID() == id }
}

func byName(namespaceURI, localName string) func(dom.Node) bool {
	return func(n dom.Node) bool { return n.Is(namespaceURI, localName) }
}

func byParam(name string) func(dom.Node) bool {
	return func(n dom.Node) bool {
		return (n.LocalName() == "inputParameter" || n.LocalName() == "outputParameter") && n.AttrValue("name") == name
	}
}

// runElement runs the element visitors of the registry that apply to the
// context's element and returns how many ran.
func runElement(t *testing.T, r *Registry, ctx *fakeContext) int {
	t.Helper()
	ran := 0
	for _, v := range r.ElementVisitors(ctx.Element()) {
		if v.CanVisit(ctx) {
			require.NoError(t, v.Visit(ctx))
			ran++
		}
	}
	return ran
}

// runAttribute runs the attribute visitors for one camunda attribute.
func runAttribute(t *testing.T, r *Registry, ctx *fakeContext, namespaceURI, localName string) int {
	t.Helper()
	ran := 0
	for _, v := range r.AttributeVisitors(namespaceURI, localName) {
		if v.CanVisit(ctx) {
			require.NoError(t, v.Visit(ctx))
			ran++
		}
	}
	return ran
}
