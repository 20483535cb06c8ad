package visitor

import (
	"github.com/erraggy/bpmnconv/dom"
)

type targetKey struct {
	kind         TargetKind
	namespaceURI string
	localName    string
}

func keyOf(t Target) targetKey {
	return targetKey{kind: t.Kind, namespaceURI: t.NamespaceURI, localName: t.LocalName}
}

// Registry is a flat, ordered list of visitors indexed by target. Visitors
// for the same target run in registration order. A registry made by Without
// remembers the visitors it left out.
type Registry struct {
	visitors []Visitor
	index    map[targetKey][]Visitor
	excluded map[targetKey][]Visitor
}

// NewRegistry returns a registry holding visitors in the given order.
func NewRegistry(visitors ...Visitor) *Registry {
	r := &Registry{index: make(map[targetKey][]Visitor), excluded: make(map[targetKey][]Visitor)}
	r.Register(visitors...)
	return r
}

// Register appends visitors.
func (r *Registry) Register(visitors ...Visitor) {
	for _, v := range visitors {
		k := keyOf(v.Target())
		r.visitors = append(r.visitors, v)
		r.index[k] = append(r.index[k], v)
	}
}

// ElementVisitors returns the element visitors registered for n.
func (r *Registry) ElementVisitors(n dom.Node) []Visitor {
	return r.index[targetKey{kind: ElementTarget, namespaceURI: n.NamespaceURI(), localName: n.LocalName()}]
}

// AttributeVisitors returns the attribute visitors registered for the
// qualified attribute name.
func (r *Registry) AttributeVisitors(namespaceURI, localName string) []Visitor {
	return r.index[targetKey{kind: AttributeTarget, namespaceURI: namespaceURI, localName: localName}]
}

// Without returns a copy of the registry without the visitors whose Name
// is listed. Names match exactly; see Has.
func (r *Registry) Without(names ...string) *Registry {
	if len(names) == 0 {
		return r
	}
	skip := make(map[string]bool, len(names))
	for _, name := range names {
		skip[name] = true
	}
	out := NewRegistry()
	for k, vs := range r.excluded {
		out.excluded[k] = append([]Visitor(nil), vs...)
	}
	for _, v := range r.visitors {
		if skip[v.Name()] {
			k := keyOf(v.Target())
			out.excluded[k] = append(out.excluded[k], v)
			continue
		}
		out.Register(v)
	}
	return out
}

// Has reports whether a visitor named name is registered.
func (r *Registry) Has(name string) bool {
	for _, v := range r.visitors {
		if v.Name() == name {
			return true
		}
	}
	return false
}

// Excludes reports whether a visitor for t that was left out by Without
// would have accepted ctx. The converter leaves such content untouched.
func (r *Registry) Excludes(t Target, ctx Context) bool {
	for _, v := range r.excluded[keyOf(t)] {
		if v.CanVisit(ctx) {
			return true
		}
	}
	return false
}

// Visitors returns all visitors in registration order.
func (r *Registry) Visitors() []Visitor {
	out := make([]Visitor, len(r.visitors))
	copy(out, r.visitors)
	return out
}

// Len returns the number of visitors.
func (r *Registry) Len() int {
	return len(r.visitors)
}

// Default returns a registry with every built in rule.
func Default() *Registry {
	r := NewRegistry()
	r.Register(processElements()...)
	r.Register(bpmnElements()...)
	r.Register(extensionElements()...)
	r.Register(extensionAttributes()...)
	r.Register(bpmnAttributes()...)
	r.Register(unsupportedAttributes()...)
	return r
}
