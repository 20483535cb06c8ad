package issues

import (
	"github.com/tidwall/btree"

	"github.com/erraggy/bpmnconv/bpmnerrors"
)

// Collector holds the results of one document in registration order and
// indexes them by element id.
type Collector struct {
	ordered []*Result
	byID    *btree.Map[string, *Result]
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{byID: &btree.Map[string, *Result]{}}
}

// Register creates the result for a process element. Registering an id
// twice returns a *bpmnerrors.DuplicateIDError and leaves the first result
// untouched.
func (c *Collector) Register(id, name, elementType string) (*Result, error) {
	if existing, ok := c.byID.Get(id); ok {
		return nil, &bpmnerrors.DuplicateIDError{
			ID:           id,
			ElementType:  elementType,
			ExistingType: existing.ElementType,
		}
	}
	r := &Result{ElementID: id, ElementName: name, ElementType: elementType}
	c.byID.Set(id, r)
	c.ordered = append(c.ordered, r)
	return r, nil
}

// Get returns the result registered for id.
func (c *Collector) Get(id string) (*Result, bool) {
	return c.byID.Get(id)
}

// Len returns the number of registered results.
func (c *Collector) Len() int {
	return len(c.ordered)
}

// Results returns copies of the results in registration order.
func (c *Collector) Results() []Result {
	out := make([]Result, 0, len(c.ordered))
	for _, r := range c.ordered {
		cp := *r
		cp.Messages = append([]Message(nil), r.Messages...)
		out = append(out, cp)
	}
	return out
}

