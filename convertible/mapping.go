package convertible

// Direction tells input mappings from output mappings.
type Direction int

const (
	Input Direction = iota
	Output
)

// String returns "input" or "output".
func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// IOMapping is one zeebe:input or zeebe:output entry.
type IOMapping struct {
	Direction Direction `json:"direction"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
}

// TaskHeader is one zeebe:header entry.
type TaskHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DataMapper is the capability to carry variable mappings and task headers.
type DataMapper interface {
	Convertible
	AddIOMapping(direction Direction, source, target string)
	AddTaskHeader(key, value string)
	IOMappings() []IOMapping
	TaskHeaders() []TaskHeader
}

// Mapping implements DataMapper.
type Mapping struct {
	Element
	mappings []IOMapping
	headers  []TaskHeader
}

// AddIOMapping records a mapping. A second mapping to the same target in
// the same direction replaces the source.
func (m *Mapping) AddIOMapping(direction Direction, source, target string) {
	m.mutate()
	for i := range m.mappings {
		if m.mappings[i].Direction == direction && m.mappings[i].Target == target {
			m.mappings[i].Source = source
			return
		}
	}
	m.mappings = append(m.mappings, IOMapping{Direction: direction, Source: source, Target: target})
}

// AddTaskHeader sets a header. Setting a key again replaces the value and
// keeps the original position.
func (m *Mapping) AddTaskHeader(key, value string) {
	m.mutate()
	for i := range m.headers {
		if m.headers[i].Key == key {
			m.headers[i].Value = value
			return
		}
	}
	m.headers = append(m.headers, TaskHeader{Key: key, Value: value})
}

// IOMappings returns the mappings in insertion order.
func (m *Mapping) IOMappings() []IOMapping {
	return append([]IOMapping(nil), m.mappings...)
}

// TaskHeaders returns the headers in insertion order.
func (m *Mapping) TaskHeaders() []TaskHeader {
	return append([]TaskHeader(nil), m.headers...)
}

// TaskHeader returns the value of the header key.
func (m *Mapping) TaskHeader(key string) (string, bool) {
	for _, h := range m.headers {
		if h.Key == key {
			return h.Value, true
		}
	}
	return "", false
}
