// Package walker provides a traversal API for BPMN documents.
//
// The walker visits every element of a document once, in document order,
// parents before children. It is iterative, so deeply nested models cannot
// exhaust the stack.
//
// # Quick Start
//
// Collect the ids of all service tasks:
//
//	doc, _ := dom.ParseFile("order.bpmn")
//
//	var ids []string
//	err := walker.Walk(doc,
//	    walker.WithElementHandler(func(wc *walker.WalkContext, n dom.Node) walker.Action {
//	        if n.IsBPMN("serviceTask") {
//	            ids = append(ids, n.ID())
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current element, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # Post-Visit Hooks
//
// A handler registered with [WithElementPostHandler] runs when the walk
// leaves an element, after all of its children. It is not called for
// elements left because of [Stop].
//
// # Collectors
//
// [Collect] returns matching elements in document order without writing a
// handler.
package walker
