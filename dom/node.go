package dom

import (
	"strings"

	"github.com/beevik/etree"
)

// Node is a read-only view of one element in a document. Nodes are
// comparable and can be used as map keys. The zero Node stands for "no
// element", for example the parent of the root.
type Node struct {
	e *etree.Element
}

// Attribute is one attribute of a Node with its prefix resolved.
type Attribute struct {
	NamespaceURI string
	Prefix       string
	LocalName    string
	Value        string
}

// IsZero reports whether n refers to no element.
func (n Node) IsZero() bool {
	return n.e == nil
}

// LocalName returns the element name without prefix.
func (n Node) LocalName() string {
	return n.e.Tag
}

// Prefix returns the namespace prefix as written in the document.
func (n Node) Prefix() string {
	return n.e.Space
}

// NamespaceURI returns the namespace the element belongs to. Elements in the
// Activiti extension namespace report NamespaceCamunda.
func (n Node) NamespaceURI() string {
	return resolve(n.e, n.e.Space)
}

// Is reports whether n has the given namespace and local name.
func (n Node) Is(namespaceURI, localName string) bool {
	return !n.IsZero() && n.e.Tag == localName && n.NamespaceURI() == namespaceURI
}

// IsBPMN reports whether n is the BPMN model element localName.
func (n Node) IsBPMN(localName string) bool {
	return n.Is(NamespaceBPMN, localName)
}

// Attr returns the value of the attribute with the given namespace and local
// name. Unprefixed attributes have no namespace.
func (n Node) Attr(namespaceURI, localName string) (string, bool) {
	for _, a := range n.e.Attr {
		if a.Key != localName || isNamespaceDecl(a) {
			continue
		}
		if attrNamespace(n.e, a) == namespaceURI {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the value of the unprefixed attribute localName, or ""
// when it is absent.
func (n Node) AttrValue(localName string) string {
	v, _ := n.Attr("", localName)
	return v
}

// ID returns the id attribute.
func (n Node) ID() string {
	return n.AttrValue("id")
}

// Name returns the name attribute.
func (n Node) Name() string {
	return n.AttrValue("name")
}

// Attrs returns the attributes in document order. Namespace declarations
// are not included.
func (n Node) Attrs() []Attribute {
	attrs := make([]Attribute, 0, len(n.e.Attr))
	for _, a := range n.e.Attr {
		if isNamespaceDecl(a) {
			continue
		}
		attrs = append(attrs, Attribute{
			NamespaceURI: attrNamespace(n.e, a),
			Prefix:       a.Space,
			LocalName:    a.Key,
			Value:        a.Value,
		})
	}
	return attrs
}

// Text returns the character data directly inside the element, CDATA
// sections included.
func (n Node) Text() string {
	var sb strings.Builder
	for _, t := range n.e.Child {
		if cd, ok := t.(*etree.CharData); ok {
			sb.WriteString(cd.Data)
		}
	}
	return sb.String()
}

// Parent returns the enclosing element, or the zero Node for the root.
func (n Node) Parent() Node {
	return Node{e: parentElement(n.e)}
}

// Children returns the child elements in document order.
func (n Node) Children() []Node {
	children := n.e.ChildElements()
	nodes := make([]Node, len(children))
	for i, c := range children {
		nodes[i] = Node{e: c}
	}
	return nodes
}

// Child returns the first child element with the given name.
func (n Node) Child(namespaceURI, localName string) (Node, bool) {
	for _, c := range n.e.ChildElements() {
		child := Node{e: c}
		if child.Is(namespaceURI, localName) {
			return child, true
		}
	}
	return Node{}, false
}

// Path returns the local names from the root down to n, such as
// "/definitions/process/serviceTask".
func (n Node) Path() string {
	var names []string
	for e := n.e; e != nil; e = parentElement(e) {
		names = append(names, e.Tag)
	}
	var sb strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(names[i])
	}
	return sb.String()
}

// String returns "prefix:local" with the id when present.
func (n Node) String() string {
	if n.IsZero() {
		return "<none>"
	}
	s := n.e.FullTag()
	if id := n.ID(); id != "" {
		s += "#" + id
	}
	return s
}

// parentElement returns the parent of e. The document itself is the parent
// of the root element in etree and is reported as nil.
func parentElement(e *etree.Element) *etree.Element {
	p := e.Parent()
	if p == nil || p.Tag == "" {
		return nil
	}
	return p
}

func isNamespaceDecl(a etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}

func attrNamespace(e *etree.Element, a etree.Attr) string {
	if a.Space == "" {
		return ""
	}
	return resolve(e, a.Space)
}

// resolve finds the namespace bound to prefix on e or its ancestors. The
// Activiti extension namespace is reported as the Camunda namespace.
func resolve(e *etree.Element, prefix string) string {
	if prefix == "xml" {
		return NamespaceXML
	}
	for ; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if (prefix == "" && a.Space == "" && a.Key == "xmlns") ||
				(prefix != "" && a.Space == "xmlns" && a.Key == prefix) {
				if a.Value == NamespaceActiviti {
					return NamespaceCamunda
				}
				return a.Value
			}
		}
	}
	return ""
}
