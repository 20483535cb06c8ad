package converter

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/internal/issues"
	"github.com/erraggy/bpmnconv/walker"
)

const executionPlatform = "Camunda Cloud"

// apply mutates the document: queued removals first, then every
// convertible is written as zeebe extension elements.
func (c *conversion) apply() error {
	for _, n := range c.removedElements {
		c.doc.RemoveElement(n)
	}
	for _, a := range c.removedAttrs {
		c.doc.RemoveAttr(a.node, a.namespaceURI, a.localName)
	}

	r := &renderer{doc: c.doc}
	for _, n := range c.order {
		r.render(n, c.convertibles[n])
		if c.props.AppendElements() {
			r.appendMessages(n, c.results[n])
		}
		c.convertibles[n].Freeze()
	}
	r.platform(c.props.PlatformVersion())
	return c.prune()
}

// prune drops camunda elements and extensionElements left empty by the
// removals, innermost first. Excluded elements are not touched.
func (c *conversion) prune() error {
	return walker.Walk(c.doc, walker.WithElementHandler(func(_ *walker.WalkContext, n dom.Node) walker.Action {
		if c.excluded[n] {
			return walker.SkipChildren
		}
		return walker.Continue
	}), walker.WithElementPostHandler(func(_ *walker.WalkContext, n dom.Node) {
		if c.excluded[n] || !dom.IsBlank(n) {
			return
		}
		if (dom.IsCamunda(n.NamespaceURI()) && len(n.Attrs()) == 0) || n.IsBPMN("extensionElements") {
			c.doc.RemoveElement(n)
		}
	}))
}

// renderer writes convertibles into the document.
type renderer struct {
	doc *dom.Document
}

func (r *renderer) render(n dom.Node, c convertible.Convertible) {
	if t, ok := c.(convertible.TaskDefinitionHolder); ok {
		r.taskDefinition(n, t.TaskDefinition())
	}
	switch v := c.(type) {
	case *convertible.Process:
		if tag := v.VersionTag(); tag != "" {
			r.zeebe(r.extensions(n), "versionTag", "value", tag)
		}
	case *convertible.UserTask:
		r.userTask(n, v)
	case *convertible.BusinessRuleTask:
		if d := v.CalledDecision(); d.DecisionID != "" {
			r.zeebe(r.extensions(n), "calledDecision", "decisionId", d.DecisionID, "resultVariable", d.ResultVariable)
		}
	case *convertible.CallActivity:
		if e := v.CalledElement(); e.ProcessID != "" {
			r.zeebe(r.extensions(n), "calledElement",
				"processId", e.ProcessID,
				"propagateAllChildVariables", strconv.FormatBool(e.PropagateAllChildVariables),
				"propagateAllParentVariables", strconv.FormatBool(e.PropagateAllParentVariables),
			)
		}
	case *convertible.SequenceFlow:
		if cond, ok := v.Condition(); ok {
			if expr, found := n.Child(dom.NamespaceBPMN, "conditionExpression"); found {
				r.doc.Element(expr).SetText(cond)
			}
		}
	}
	if m, ok := c.(convertible.DataMapper); ok {
		r.ioMapping(n, m.IOMappings())
		r.taskHeaders(n, m.TaskHeaders())
	}
	if l, ok := c.(convertible.LoopHolder); ok {
		if lc, set := l.Loop(); set {
			r.loop(n, lc)
		}
	}
	if p, ok := c.(convertible.PropertyHolder); ok {
		r.properties(n, p.Properties())
	}
}

func (r *renderer) taskDefinition(n dom.Node, td convertible.TaskDefinition) {
	if td.Type == "" {
		return
	}
	r.zeebe(r.extensions(n), "taskDefinition", "type", td.Type, "retries", td.Retries)
}

func (r *renderer) userTask(n dom.Node, u *convertible.UserTask) {
	if a := u.Assignment(); a != (convertible.Assignment{}) {
		r.zeebe(r.extensions(n), "assignmentDefinition",
			"assignee", a.Assignee,
			"candidateGroups", a.CandidateGroups,
			"candidateUsers", a.CandidateUsers,
		)
	}
	if f := u.Form(); f != (convertible.Form{}) {
		r.zeebe(r.extensions(n), "formDefinition", "formKey", f.FormKey, "formId", f.FormID)
	}
	if s := u.Schedule(); s != (convertible.Schedule{}) {
		r.zeebe(r.extensions(n), "taskSchedule", "dueDate", s.DueDate, "followUpDate", s.FollowUpDate)
	}
}

func (r *renderer) ioMapping(n dom.Node, mappings []convertible.IOMapping) {
	if len(mappings) == 0 {
		return
	}
	io := r.zeebe(r.extensions(n), "ioMapping")
	for _, dir := range []convertible.Direction{convertible.Input, convertible.Output} {
		for _, m := range mappings {
			if m.Direction == dir {
				r.zeebe(io, dir.String(), "source", m.Source, "target", m.Target)
			}
		}
	}
}

func (r *renderer) taskHeaders(n dom.Node, headers []convertible.TaskHeader) {
	if len(headers) == 0 {
		return
	}
	th := r.zeebe(r.extensions(n), "taskHeaders")
	for _, h := range headers {
		r.zeebe(th, "header", "key", h.Key, "value", h.Value)
	}
}

func (r *renderer) properties(n dom.Node, props []convertible.Property) {
	if len(props) == 0 {
		return
	}
	ps := r.zeebe(r.extensions(n), "properties")
	for _, p := range props {
		r.zeebe(ps, "property", "name", p.Name, "value", p.Value)
	}
}

func (r *renderer) loop(n dom.Node, lc convertible.LoopCharacteristics) {
	mi, ok := n.Child(dom.NamespaceBPMN, "multiInstanceLoopCharacteristics")
	if !ok {
		return
	}
	if lc.InputCollection != "" || lc.InputElement != "" || lc.OutputCollection != "" || lc.OutputElement != "" {
		r.zeebe(r.extensions(mi), "loopCharacteristics",
			"inputCollection", lc.InputCollection,
			"inputElement", lc.InputElement,
			"outputCollection", lc.OutputCollection,
			"outputElement", lc.OutputElement,
		)
	}
	if lc.CompletionCondition != "" {
		if cc, found := mi.Child(dom.NamespaceBPMN, "completionCondition"); found {
			r.doc.Element(cc).SetText(lc.CompletionCondition)
		}
	}
}

// appendMessages writes the messages of a process element as
// conversion:message extension elements.
func (r *renderer) appendMessages(n dom.Node, result *issues.Result) {
	if result == nil || len(result.Messages) == 0 {
		return
	}
	ext := r.extensions(n)
	for _, m := range result.Messages {
		e := ext.CreateElement(r.doc.Tag(dom.NamespaceConversion, dom.PrefixConversion, "message"))
		e.CreateAttr("severity", strings.ToUpper(m.Severity.String()))
		if m.Link != "" {
			e.CreateAttr("link", m.Link)
		}
		e.SetText(m.Message)
	}
}

// platform marks the definitions as targeting the new engine.
func (r *renderer) platform(version string) {
	root := r.doc.Element(r.doc.Root())
	prefix := r.doc.EnsureNamespace(dom.PrefixModeler, dom.NamespaceModeler)
	root.CreateAttr(prefix+":executionPlatform", executionPlatform)
	root.CreateAttr(prefix+":executionPlatformVersion", version)
	r.doc.EnsureNamespace(dom.PrefixZeebe, dom.NamespaceZeebe)
}

// extensions returns the extensionElements of n, creating it after any
// documentation elements when missing.
func (r *renderer) extensions(n dom.Node) *etree.Element {
	if ext, ok := n.Child(dom.NamespaceBPMN, "extensionElements"); ok {
		return r.doc.Element(ext)
	}
	e := r.doc.Element(n)
	index := 0
	for i, tok := range e.Child {
		if child, ok := tok.(*etree.Element); ok && r.doc.Node(child).IsBPMN("documentation") {
			index = i + 1
		}
	}
	ext := etree.NewElement(r.doc.Tag(dom.NamespaceBPMN, bpmnPrefix(n), "extensionElements"))
	e.InsertChildAt(index, ext)
	return ext
}

// bpmnPrefix is the prefix n uses for the BPMN namespace, "bpmn" when it
// uses none.
func bpmnPrefix(n dom.Node) string {
	if p := n.Prefix(); p != "" {
		return p
	}
	return "bpmn"
}

// zeebe appends a zeebe element to parent. attrs are name/value pairs;
// empty values are left out.
func (r *renderer) zeebe(parent *etree.Element, localName string, attrs ...string) *etree.Element {
	e := parent.CreateElement(r.doc.Tag(dom.NamespaceZeebe, dom.PrefixZeebe, localName))
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] != "" {
			e.CreateAttr(attrs[i], attrs[i+1])
		}
	}
	return e
}
