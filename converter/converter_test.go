package converter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/bpmnconv/bpmnerrors"
	"github.com/erraggy/bpmnconv/convertible"
	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/properties"
	"github.com/erraggy/bpmnconv/visitor"
	"github.com/erraggy/bpmnconv/walker"
)

func newConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

func convertFile(t *testing.T, name string, opts ...Option) (*ConversionResult, *dom.Document) {
	t.Helper()
	result, err := newConverter(t, opts...).ConvertFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	out, err := result.Document.Bytes()
	require.NoError(t, err)
	doc, err := dom.Parse(out)
	require.NoError(t, err)
	return result, doc
}

func element(t *testing.T, doc *dom.Document, id string) dom.Node {
	t.Helper()
	nodes, err := walker.Collect(doc, func(n dom.Node) bool { return n.ID() == id })
	require.NoError(t, err)
	require.Len(t, nodes, 1, "element %s", id)
	return nodes[0]
}

// zeebe returns the zeebe extension element of n.
func zeebe(t *testing.T, n dom.Node, localName string) dom.Node {
	t.Helper()
	ext, ok := n.Child(dom.NamespaceBPMN, "extensionElements")
	require.True(t, ok, "%s has no extensionElements", n)
	z, ok := ext.Child(dom.NamespaceZeebe, localName)
	require.True(t, ok, "%s has no zeebe:%s", n, localName)
	return z
}

func resultFor(t *testing.T, result *ConversionResult, id string) CheckResult {
	t.Helper()
	for _, r := range result.Results {
		if r.ElementID == id {
			return r
		}
	}
	t.Fatalf("no result for %s", id)
	return CheckResult{}
}

func TestConvertOrder(t *testing.T) {
	result, doc := convertFile(t, "order.bpmn")

	ids := make([]string, len(result.Results))
	for i, r := range result.Results {
		ids[i] = r.ElementID
	}
	assert.Equal(t, []string{"Definitions_1", "order", "start", "calculate", "charge", "approve", "gateway", "toCalculate", "toEnd", "end"}, ids)
	assert.Equal(t, 8, result.InfoCount)
	assert.Equal(t, 1, result.TaskCount)
	assert.Equal(t, 4, result.ReviewCount)
	assert.Equal(t, 1, result.WarningCount)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ConversionID)

	t.Run("script task", func(t *testing.T) {
		task := element(t, doc, "calculate")
		assert.Equal(t, "script", zeebe(t, task, "taskDefinition").AttrValue("type"))

		headers := zeebe(t, task, "taskHeaders").Children()
		require.Len(t, headers, 2)
		assert.Equal(t, "language", headers[0].AttrValue("key"))
		assert.Equal(t, "javascript", headers[0].AttrValue("value"))
		assert.Equal(t, "script", headers[1].AttrValue("key"))
		assert.Equal(t, `execution.setVariable("x", 1)`, headers[1].AttrValue("value"))

		outputs := zeebe(t, task, "ioMapping").Children()
		require.Len(t, outputs, 1)
		assert.True(t, outputs[0].Is(dom.NamespaceZeebe, "output"))
		assert.Equal(t, "=cart.total", outputs[0].AttrValue("source"))
		assert.Equal(t, "total", outputs[0].AttrValue("target"))

		_, hasScript := task.Child(dom.NamespaceBPMN, "script")
		assert.False(t, hasScript)
		_, hasFormat := task.Attr("", "scriptFormat")
		assert.False(t, hasFormat)

		children := task.Children()
		require.GreaterOrEqual(t, len(children), 2)
		assert.True(t, children[0].IsBPMN("documentation"))
		assert.True(t, children[1].IsBPMN("extensionElements"))

		r := resultFor(t, result, "calculate")
		sevs := make([]Severity, len(r.Messages))
		for i, m := range r.Messages {
			sevs[i] = m.Severity
		}
		assert.Equal(t, []Severity{SeverityInfo, SeverityReview, SeverityTask}, sevs)
		assert.Equal(t, "order/calculate", r.Path)
	})

	t.Run("service task", func(t *testing.T) {
		task := element(t, doc, "charge")
		def := zeebe(t, task, "taskDefinition")
		assert.Equal(t, "charge-card", def.AttrValue("type"))
		assert.Equal(t, "3", def.AttrValue("retries"))
		props := zeebe(t, task, "properties").Children()
		require.Len(t, props, 1)
		assert.Equal(t, "owner", props[0].AttrValue("name"))
		assert.Equal(t, "billing", props[0].AttrValue("value"))
		for _, a := range task.Attrs() {
			assert.NotEqual(t, dom.NamespaceCamunda, a.NamespaceURI, a.LocalName)
		}
	})

	t.Run("user task", func(t *testing.T) {
		assignment := zeebe(t, element(t, doc, "approve"), "assignmentDefinition")
		assert.Equal(t, "=manager", assignment.AttrValue("assignee"))
		assert.Equal(t, "managers", assignment.AttrValue("candidateGroups"))
	})

	t.Run("sequence flow", func(t *testing.T) {
		cond, ok := element(t, doc, "toEnd").Child(dom.NamespaceBPMN, "conditionExpression")
		require.True(t, ok)
		assert.Equal(t, "=approved", cond.Text())
		_, hasExt := element(t, doc, "toCalculate").Child(dom.NamespaceBPMN, "extensionElements")
		assert.False(t, hasExt)
	})

	t.Run("process and definitions", func(t *testing.T) {
		assert.Equal(t, "2", zeebe(t, element(t, doc, "order"), "versionTag").AttrValue("value"))
		root := doc.Root()
		platform, _ := root.Attr(dom.NamespaceModeler, "executionPlatform")
		assert.Equal(t, "Camunda Cloud", platform)
		version, _ := root.Attr(dom.NamespaceModeler, "executionPlatformVersion")
		assert.Equal(t, properties.DefaultPlatformVersion, version)
	})

	t.Run("no camunda content left", func(t *testing.T) {
		leftovers, err := walker.Collect(doc, func(n dom.Node) bool {
			if dom.IsCamunda(n.NamespaceURI()) {
				return true
			}
			for _, a := range n.Attrs() {
				if dom.IsCamunda(a.NamespaceURI) {
					return true
				}
			}
			return false
		})
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})

	t.Run("convertibles are frozen", func(t *testing.T) {
		c, ok := result.Convertible("charge")
		require.True(t, ok)
		task, ok := c.(*convertible.ServiceTask)
		require.True(t, ok)
		assert.True(t, task.Frozen())
		assert.Panics(t, func() { task.SetTaskType("other") })
	})
}

func TestCheckLeavesDocumentUnchanged(t *testing.T) {
	doc, err := dom.ParseFile(filepath.Join("testdata", "order.bpmn"))
	require.NoError(t, err)
	before := doc.String()

	result, err := newConverter(t).Check(doc)
	require.NoError(t, err)
	assert.Equal(t, before, doc.String())
	assert.Equal(t, 1, result.WarningCount)
	assert.Len(t, result.Results, 10)

	c, ok := result.Convertible("charge")
	require.True(t, ok)
	assert.False(t, c.Frozen())
}

func TestDuplicateIDIsFatal(t *testing.T) {
	_, err := newConverter(t).ConvertFile(filepath.Join("testdata", "duplicate.bpmn"))
	require.Error(t, err)
	assert.ErrorIs(t, err, bpmnerrors.ErrDuplicateElement)
	assert.ErrorIs(t, err, bpmnerrors.ErrConversion)

	var dup *bpmnerrors.DuplicateIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "task", dup.ID)
	assert.Equal(t, "userTask", dup.ElementType)
	assert.Equal(t, "serviceTask", dup.ExistingType)
}

func TestMissingIDIsFatal(t *testing.T) {
	_, err := newConverter(t).ConvertBytes([]byte(`<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="d">
  <bpmn:process id="p"><bpmn:serviceTask name="Nameless" /></bpmn:process>
</bpmn:definitions>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, bpmnerrors.ErrMissingID)
	var missing *bpmnerrors.MissingIDError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "serviceTask", missing.ElementType)
	assert.Equal(t, "Nameless", missing.Name)
}

func TestConvertibleNotFoundIsFatal(t *testing.T) {
	rule := visitor.BPMNElement{
		Element: "task",
		Convert: func(ctx visitor.Context) error {
			return visitor.AddConversion(ctx, func(*convertible.CallActivity) {})
		},
	}
	c := newConverter(t, WithRegistry(visitor.NewRegistry(rule)))
	_, err := c.ConvertBytes([]byte(`<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL"><bpmn:task id="t"/></bpmn:definitions>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, bpmnerrors.ErrConvertibleNotFound)
}

func TestParseErrors(t *testing.T) {
	_, err := newConverter(t).ConvertBytes([]byte("<definitions"))
	require.Error(t, err)
	assert.ErrorIs(t, err, bpmnerrors.ErrParse)

	_, err = Convert(filepath.Join("testdata", "missing.bpmn"))
	require.Error(t, err)
}

func TestUnknownCamundaContent(t *testing.T) {
	result, err := newConverter(t).ConvertBytes([]byte(`<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:camunda="http://camunda.org/schema/1.0/bpmn" id="d">
  <bpmn:process id="p">
    <bpmn:task id="t" camunda:shiny="yes">
      <bpmn:extensionElements><camunda:somethingNew><camunda:child/></camunda:somethingNew></bpmn:extensionElements>
    </bpmn:task>
  </bpmn:process>
</bpmn:definitions>`))
	require.NoError(t, err)
	r := resultFor(t, result, "t")
	require.Len(t, r.Messages, 2)
	assert.Equal(t, SeverityWarning, r.Messages[0].Severity)
	assert.Equal(t, SeverityWarning, r.Messages[1].Severity)
	assert.Contains(t, r.Messages[0].Message, "shiny", "attributes are visited before children")
	assert.Contains(t, r.Messages[1].Message, "somethingNew")

	out := result.Document.String()
	assert.NotContains(t, out, "somethingNew")
	assert.NotContains(t, out, "shiny")
	assert.NotContains(t, out, "extensionElements")
}

func TestActivitiNamespace(t *testing.T) {
	result, doc := convertFile(t, "activiti.bpmn")
	assert.Equal(t, 0, result.WarningCount)
	assert.Equal(t, "=reviewer", zeebe(t, element(t, doc, "review"), "assignmentDefinition").AttrValue("assignee"))
	def := zeebe(t, element(t, doc, "notify"), "taskDefinition")
	assert.Equal(t, properties.DefaultJobType, def.AttrValue("type"))
}

func TestStrictMode(t *testing.T) {
	result, err := newConverter(t, WithStrictMode(true)).ConvertFile(filepath.Join("testdata", "order.bpmn"))
	require.Error(t, err)
	assert.ErrorIs(t, err, bpmnerrors.ErrConversion)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.WarningCount)
	assert.Contains(t, err.Error(), "strict mode")
}

func TestMinimumSeverity(t *testing.T) {
	result, _ := convertFile(t, "order.bpmn", WithMinimumSeverity(SeverityReview))
	assert.Equal(t, 8, result.InfoCount, "counts include filtered messages")
	for _, r := range result.Results {
		for _, m := range r.Messages {
			assert.GreaterOrEqual(t, m.Severity, SeverityReview)
		}
	}
	assert.Len(t, resultFor(t, result, "charge").Messages, 1)

	_, err := New(WithMinimumSeverity(Severity(99)))
	assert.ErrorIs(t, err, bpmnerrors.ErrConfig)
}

func withExclusions(t *testing.T, names ...string) Option {
	t.Helper()
	cfg := properties.DefaultConfig()
	cfg.Exclusions = names
	props, err := properties.New(cfg)
	require.NoError(t, err)
	return WithProperties(props)
}

func TestExclusions(t *testing.T) {
	t.Run("excluded attribute is left alone", func(t *testing.T) {
		result, doc := convertFile(t, "order.bpmn", withExclusions(t, "@camunda:topic"))
		assert.Equal(t, 1, result.WarningCount)
		assert.Equal(t, 7, result.InfoCount)

		charge := element(t, doc, "charge")
		topic, ok := charge.Attr(dom.NamespaceCamunda, "topic")
		assert.True(t, ok)
		assert.Equal(t, "charge-card", topic)
		ext, ok := charge.Child(dom.NamespaceBPMN, "extensionElements")
		require.True(t, ok)
		_, hasDef := ext.Child(dom.NamespaceZeebe, "taskDefinition")
		assert.False(t, hasDef, "no task type without the topic rule")

		r := resultFor(t, result, "charge")
		require.Len(t, r.Messages, 4)
		for _, m := range r.Messages {
			assert.NotContains(t, m.Message, "topic")
		}
	})

	t.Run("excluded element keeps its content", func(t *testing.T) {
		result, doc := convertFile(t, "order.bpmn", withExclusions(t, "camunda:properties"))
		assert.Equal(t, 1, result.WarningCount)
		assert.Equal(t, 7, result.InfoCount)

		ext, ok := element(t, doc, "charge").Child(dom.NamespaceBPMN, "extensionElements")
		require.True(t, ok)
		props, ok := ext.Child(dom.NamespaceCamunda, "properties")
		require.True(t, ok)
		_, ok = props.Child(dom.NamespaceCamunda, "property")
		assert.True(t, ok)
		_, ok = ext.Child(dom.NamespaceZeebe, "properties")
		assert.False(t, ok)
	})

	t.Run("scoped rule", func(t *testing.T) {
		result, doc := convertFile(t, "order.bpmn", withExclusions(t, "startEvent@camunda:formKey"))
		assert.Equal(t, 0, result.WarningCount)
		assert.Empty(t, resultFor(t, result, "start").Messages)
		_, ok := element(t, doc, "start").Attr(dom.NamespaceCamunda, "formKey")
		assert.True(t, ok)
	})

	t.Run("strict mode ignores excluded content", func(t *testing.T) {
		_, err := newConverter(t, WithStrictMode(true), withExclusions(t, "startEvent@camunda:formKey")).
			ConvertFile(filepath.Join("testdata", "order.bpmn"))
		assert.NoError(t, err)
	})

	t.Run("unknown rule name", func(t *testing.T) {
		_, err := New(withExclusions(t, "topic"))
		require.Error(t, err)
		assert.ErrorIs(t, err, bpmnerrors.ErrConfig)
		assert.Contains(t, err.Error(), "topic")
	})
}

func TestAppendElements(t *testing.T) {
	cfg := properties.DefaultConfig()
	cfg.AppendElements = true
	props, err := properties.New(cfg)
	require.NoError(t, err)

	_, doc := convertFile(t, "order.bpmn", WithProperties(props))
	ext, ok := element(t, doc, "start").Child(dom.NamespaceBPMN, "extensionElements")
	require.True(t, ok)
	msg, ok := ext.Child(dom.NamespaceConversion, "message")
	require.True(t, ok)
	assert.Equal(t, "WARNING", msg.AttrValue("severity"))
	assert.Contains(t, msg.Text(), "formKey")
}

func TestNotifier(t *testing.T) {
	var events []UnhandledElement
	c := newConverter(t, WithNotifier(NotifierFunc(func(event any) {
		if e, ok := event.(UnhandledElement); ok {
			events = append(events, e)
		}
	})))
	_, err := c.CheckFile(filepath.Join("testdata", "order.bpmn"))
	require.NoError(t, err)

	var names []string
	for _, e := range events {
		names = append(names, e.Element)
	}
	assert.Contains(t, names, "bpmn:outgoing")
	assert.Contains(t, names, "bpmn:documentation")
	for _, name := range names {
		assert.False(t, strings.HasPrefix(name, "camunda:"), name)
	}
}

func TestNilArguments(t *testing.T) {
	_, err := New(WithProperties(nil))
	assert.ErrorIs(t, err, bpmnerrors.ErrConfig)
	_, err = New(WithRegistry(nil))
	assert.ErrorIs(t, err, bpmnerrors.ErrConfig)
	_, err = newConverter(t).Convert(nil)
	assert.ErrorIs(t, err, bpmnerrors.ErrConfig)
}

func TestConvertConvenience(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join("testdata", "order.bpmn"))
	require.NoError(t, err)
	path := filepath.Join(dir, "order.bpmn")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	result, err := Convert(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.Document.Path())
	assert.Equal(t, 14, result.MessageCount())
	assert.True(t, result.HasWarnings())
}
