// Package convertible holds the model of the converted diagram.
//
// Every process element of the source document gets exactly one
// Convertible. Conversion rules never depend on the concrete variant;
// they ask for a capability (DataMapper, TaskDefinitionHolder, ...) and
// record what the target element needs. Once the walk is done the
// converter freezes each convertible and renders it into zeebe extension
// elements.
package convertible

import "fmt"

// Kind identifies the variant of a Convertible.
type Kind int

const (
	KindDefinitions Kind = iota
	KindProcess
	KindSubProcess
	KindActivity
	KindServiceTask
	KindUserTask
	KindBusinessRuleTask
	KindCallActivity
	KindReceiveTask
	KindEvent
	KindGateway
	KindSequenceFlow
)

var kindNames = [...]string{
	KindDefinitions:      "definitions",
	KindProcess:          "process",
	KindSubProcess:       "subProcess",
	KindActivity:         "activity",
	KindServiceTask:      "serviceTask",
	KindUserTask:         "userTask",
	KindBusinessRuleTask: "businessRuleTask",
	KindCallActivity:     "callActivity",
	KindReceiveTask:      "receiveTask",
	KindEvent:            "event",
	KindGateway:          "gateway",
	KindSequenceFlow:     "sequenceFlow",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Convertible is the converted form of one process element.
type Convertible interface {
	Kind() Kind
	Freeze()
	Frozen() bool
}

// As returns c viewed as capability T.
func As[T any](c Convertible) (T, bool) {
	t, ok := c.(T)
	return t, ok
}

// Element carries the state shared by every variant. It is embedded by all
// of them.
type Element struct {
	frozen     bool
	properties []Property
}

// Property is an entry of the zeebe:properties extension.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Freeze ends the mutation phase. Any later change panics.
func (e *Element) Freeze() {
	e.frozen = true
}

// Frozen reports whether Freeze was called.
func (e *Element) Frozen() bool {
	return e.frozen
}

func (e *Element) mutate() {
	if e.frozen {
		panic("convertible: modified after conversion finished")
	}
}

// AddProperty sets a property. Setting a name again replaces the value and
// keeps the original position.
func (e *Element) AddProperty(name, value string) {
	e.mutate()
	for i := range e.properties {
		if e.properties[i].Name == name {
			e.properties[i].Value = value
			return
		}
	}
	e.properties = append(e.properties, Property{Name: name, Value: value})
}

// Properties returns the properties in insertion order.
func (e *Element) Properties() []Property {
	return append([]Property(nil), e.properties...)
}

// PropertyHolder is implemented by every convertible.
type PropertyHolder interface {
	Convertible
	AddProperty(name, value string)
	Properties() []Property
}
