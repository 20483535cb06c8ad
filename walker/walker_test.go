package walker

import (
	"strings"
	"testing"

	"github.com/erraggy/bpmnconv/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const model = `<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="defs">
  <bpmn:process id="p">
    <bpmn:startEvent id="start"/>
    <bpmn:subProcess id="sub">
      <bpmn:task id="inner"/>
    </bpmn:subProcess>
    <bpmn:endEvent id="end"/>
  </bpmn:process>
</bpmn:definitions>`

func parse(t *testing.T, xml string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse([]byte(xml))
	require.NoError(t, err)
	return doc
}

func ids(t *testing.T, doc *dom.Document, opts ...Option) []string {
	t.Helper()
	var got []string
	opts = append([]Option{WithElementHandler(func(_ *WalkContext, n dom.Node) Action {
		got = append(got, n.ID())
		return Continue
	})}, opts...)
	require.NoError(t, Walk(doc, opts...))
	return got
}

func TestWalk_NilInput(t *testing.T) {
	err := Walk(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil Document")

	err = WalkNode(dom.Node{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero Node")
}

func TestWalk_PreOrder(t *testing.T) {
	doc := parse(t, model)
	assert.Equal(t, []string{"defs", "p", "start", "sub", "inner", "end"}, ids(t, doc))
}

func TestWalk_Context(t *testing.T) {
	doc := parse(t, model)
	depth := map[string]int{}
	index := map[string]int{}
	parent := map[string]string{}
	require.NoError(t, Walk(doc, WithElementHandler(func(wc *WalkContext, n dom.Node) Action {
		depth[n.ID()] = wc.Depth
		index[n.ID()] = wc.Index
		if !wc.Parent.IsZero() {
			parent[n.ID()] = wc.Parent.ID()
		}
		return Continue
	})))
	assert.Equal(t, map[string]int{"defs": 0, "p": 1, "start": 2, "sub": 2, "inner": 3, "end": 2}, depth)
	assert.Equal(t, 2, index["end"])
	assert.Equal(t, "sub", parent["inner"])
	assert.NotContains(t, parent, "defs")
}

func TestWalk_SkipChildren(t *testing.T) {
	doc := parse(t, model)
	var got []string
	require.NoError(t, Walk(doc, WithElementHandler(func(_ *WalkContext, n dom.Node) Action {
		got = append(got, n.ID())
		if n.IsBPMN("subProcess") {
			return SkipChildren
		}
		return Continue
	})))
	assert.Equal(t, []string{"defs", "p", "start", "sub", "end"}, got)
}

func TestWalk_Stop(t *testing.T) {
	doc := parse(t, model)
	var got, left []string
	require.NoError(t, Walk(doc,
		WithElementHandler(func(_ *WalkContext, n dom.Node) Action {
			got = append(got, n.ID())
			if n.ID() == "inner" {
				return Stop
			}
			return Continue
		}),
		WithElementPostHandler(func(_ *WalkContext, n dom.Node) {
			left = append(left, n.ID())
		}),
	))
	assert.Equal(t, []string{"defs", "p", "start", "sub", "inner"}, got)
	assert.Equal(t, []string{"start"}, left)
}

func TestWalk_PostHandler(t *testing.T) {
	doc := parse(t, model)
	var left []string
	require.NoError(t, Walk(doc, WithElementPostHandler(func(_ *WalkContext, n dom.Node) {
		left = append(left, n.ID())
	})))
	assert.Equal(t, []string{"start", "inner", "sub", "end", "p", "defs"}, left)
}

func TestWalk_DeepNesting(t *testing.T) {
	const depth = 5000
	var b strings.Builder
	b.WriteString(`<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL">`)
	for range depth {
		b.WriteString("<bpmn:subProcess>")
	}
	for range depth {
		b.WriteString("</bpmn:subProcess>")
	}
	b.WriteString("</bpmn:definitions>")

	doc := parse(t, b.String())
	count := 0
	require.NoError(t, Walk(doc, WithElementHandler(func(*WalkContext, dom.Node) Action {
		count++
		return Continue
	})))
	assert.Equal(t, depth+1, count)
}

func TestCollect(t *testing.T) {
	doc := parse(t, model)
	events, err := Collect(doc, func(n dom.Node) bool { return strings.HasSuffix(n.LocalName(), "Event") })
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "start", events[0].ID())
	assert.Equal(t, "end", events[1].ID())

	tasks, err := Collect(doc, func(n dom.Node) bool { return n.IsBPMN("task") })
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "inner", tasks[0].ID())
}

func TestAction_String(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{Continue, "Continue"},
		{SkipChildren, "SkipChildren"},
		{Stop, "Stop"},
		{Action(42), "Action(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.action.String())
		assert.Equal(t, tt.action != Action(42), tt.action.IsValid())
	}
}
