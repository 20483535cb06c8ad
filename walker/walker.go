package walker

import (
	"fmt"

	"github.com/erraggy/bpmnconv/dom"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// WalkContext describes the position of the element being visited.
type WalkContext struct {
	// Depth is 0 for the walk root.
	Depth int

	// Index is the position among the parent's child elements.
	Index int

	// Parent is the parent element, zero for the walk root.
	Parent dom.Node
}

// ElementHandler is called for each element before its children.
type ElementHandler func(wc *WalkContext, n dom.Node) Action

// ElementPostHandler is called for each element after its children.
type ElementPostHandler func(wc *WalkContext, n dom.Node)

// Walker traverses BPMN documents and calls handlers for each element.
type Walker struct {
	onElement     ElementHandler
	onElementPost ElementPostHandler
}

// New creates a new Walker with default settings.
func New(opts ...Option) *Walker {
	w := &Walker{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Option configures the Walker.
type Option func(*Walker)

// WithElementHandler sets the handler called when entering an element.
func WithElementHandler(fn ElementHandler) Option {
	return func(w *Walker) { w.onElement = fn }
}

// WithElementPostHandler sets the handler called when leaving an element.
func WithElementPostHandler(fn ElementPostHandler) Option {
	return func(w *Walker) { w.onElementPost = fn }
}

// Walk traverses the document from its root element.
func Walk(doc *dom.Document, opts ...Option) error {
	if doc == nil {
		return fmt.Errorf("walker: nil Document")
	}
	return WalkNode(doc.Root(), opts...)
}

// WalkNode traverses the subtree rooted at n.
func WalkNode(n dom.Node, opts ...Option) error {
	if n.IsZero() {
		return fmt.Errorf("walker: zero Node")
	}
	New(opts...).walk(n)
	return nil
}

// frame is one element on the walk stack.
type frame struct {
	node     dom.Node
	wc       WalkContext
	children []dom.Node
	next     int
}

// walk performs a pre-order traversal with an explicit stack.
func (w *Walker) walk(root dom.Node) {
	stack := make([]frame, 0, 16)
	f, ok := w.enter(root, WalkContext{})
	if !ok {
		return
	}
	stack = append(stack, f)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.children) {
			stack = stack[:len(stack)-1]
			if w.onElementPost != nil {
				w.onElementPost(&top.wc, top.node)
			}
			continue
		}
		child := top.children[top.next]
		wc := WalkContext{Depth: top.wc.Depth + 1, Index: top.next, Parent: top.node}
		top.next++
		f, ok := w.enter(child, wc)
		if !ok {
			return
		}
		stack = append(stack, f)
	}
}

// enter visits n and returns its frame. ok is false when the walk stops.
func (w *Walker) enter(n dom.Node, wc WalkContext) (f frame, ok bool) {
	action := Continue
	if w.onElement != nil {
		action = w.onElement(&wc, n)
	}
	f = frame{node: n, wc: wc}
	switch action {
	case Stop:
		return f, false
	case SkipChildren:
	default:
		f.children = n.Children()
	}
	return f, true
}
