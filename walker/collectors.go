package walker

import (
	"github.com/erraggy/bpmnconv/dom"
)

// Collect returns the elements of the document for which match is true,
// in document order.
func Collect(doc *dom.Document, match func(dom.Node) bool) ([]dom.Node, error) {
	var nodes []dom.Node
	err := Walk(doc,
		WithElementHandler(func(_ *WalkContext, n dom.Node) Action {
			if match(n) {
				nodes = append(nodes, n)
			}
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}
