package walker_test

import (
	"fmt"

	"github.com/erraggy/bpmnconv/dom"
	"github.com/erraggy/bpmnconv/walker"
)

func ExampleWalk() {
	doc, _ := dom.Parse([]byte(`<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL">
  <bpmn:process id="order">
    <bpmn:serviceTask id="charge"/>
    <bpmn:userTask id="approve"/>
    <bpmn:serviceTask id="ship"/>
  </bpmn:process>
</bpmn:definitions>`))

	var ids []string
	_ = walker.Walk(doc,
		walker.WithElementHandler(func(wc *walker.WalkContext, n dom.Node) walker.Action {
			if n.IsBPMN("serviceTask") {
				ids = append(ids, n.ID())
			}
			return walker.Continue
		}),
	)

	for _, id := range ids {
		fmt.Println(id)
	}
	// Output:
	// charge
	// ship
}
