// Package dom gives the converter a namespace aware view over BPMN XML.
//
// A Document owns the underlying etree document. Conversion rules only see
// Node values, which cannot change the tree; every change goes through the
// Document so that it can be deferred until the walk is over.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/erraggy/bpmnconv/bpmnerrors"
)

// Document is a parsed BPMN document.
type Document struct {
	doc  *etree.Document
	path string
}

// Parse reads a document from data.
func Parse(data []byte) (*Document, error) {
	return ParseReader(bytes.NewReader(data), "")
}

// ParseReader reads a document from r. path names the source in errors and
// may be empty.
func ParseReader(r io.Reader, path string) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &bpmnerrors.ParseError{Path: path, Message: "invalid XML", Cause: err}
	}
	if doc.Root() == nil {
		return nil, &bpmnerrors.ParseError{Path: path, Message: "document has no root element"}
	}
	return &Document{doc: doc, path: path}, nil
}

// ParseFile reads the document stored at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path) //nolint:gosec // reading user supplied models is the purpose
	if err != nil {
		return nil, &bpmnerrors.ParseError{Path: path, Message: "cannot open file", Cause: err}
	}
	defer func() { _ = f.Close() }()
	return ParseReader(f, path)
}

// Path returns the file the document was read from, if any.
func (d *Document) Path() string {
	return d.path
}

// Root returns the root element.
func (d *Document) Root() Node {
	return Node{e: d.doc.Root()}
}

// Element exposes the element behind n for writing the converted tree.
func (d *Document) Element(n Node) *etree.Element {
	return n.e
}

// Node wraps an element of this document.
func (d *Document) Node(e *etree.Element) Node {
	return Node{e: e}
}

// RemoveElement detaches n from its parent. It reports false when n is
// already detached.
func (d *Document) RemoveElement(n Node) bool {
	if n.IsZero() || n.e.Parent() == nil {
		return false
	}
	return n.e.Parent().RemoveChild(n.e) != nil
}

// RemoveAttr removes the attribute of n with the given namespace and local
// name.
func (d *Document) RemoveAttr(n Node, namespaceURI, localName string) bool {
	for _, a := range n.e.Attr {
		if a.Key == localName && !isNamespaceDecl(a) && attrNamespace(n.e, a) == namespaceURI {
			return n.e.RemoveAttr(a.FullKey()) != nil
		}
	}
	return false
}

// PrefixFor returns the prefix bound to uri on the root element. An empty
// prefix with true means uri is the default namespace.
func (d *Document) PrefixFor(uri string) (string, bool) {
	for _, a := range d.doc.Root().Attr {
		switch {
		case a.Space == "xmlns" && a.Value == uri:
			return a.Key, true
		case a.Space == "" && a.Key == "xmlns" && a.Value == uri:
			return "", true
		}
	}
	return "", false
}

// EnsureNamespace declares uri on the root element unless it is already
// declared, and returns the prefix to use for it.
func (d *Document) EnsureNamespace(prefix, uri string) string {
	if p, ok := d.PrefixFor(uri); ok {
		return p
	}
	root := d.doc.Root()
	candidate := prefix
	for i := 2; resolve(root, candidate) != ""; i++ {
		candidate = fmt.Sprintf("%s%d", prefix, i)
	}
	root.CreateAttr("xmlns:"+candidate, uri)
	return candidate
}

// Tag returns the qualified tag for a new element in namespace uri, reusing
// the prefix the document already binds to it.
func (d *Document) Tag(uri, preferredPrefix, localName string) string {
	prefix := d.EnsureNamespace(preferredPrefix, uri)
	if prefix == "" {
		return localName
	}
	return prefix + ":" + localName
}

// Count returns the number of elements in the document.
func (d *Document) Count() int {
	count := 0
	stack := []*etree.Element{d.doc.Root()}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, e.ChildElements()...)
	}
	return count
}

// Bytes serializes the document indented by two spaces.
func (d *Document) Bytes() ([]byte, error) {
	d.doc.Indent(2)
	return d.doc.WriteToBytes()
}

// String serializes the document, ignoring write errors.
func (d *Document) String() string {
	b, err := d.Bytes()
	if err != nil {
		return ""
	}
	return string(b)
}

// WriteTo writes the indented document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.doc.Indent(2)
	return d.doc.WriteTo(w)
}

// IsBlank reports whether n has neither child elements nor text.
func IsBlank(n Node) bool {
	return len(n.e.ChildElements()) == 0 && strings.TrimSpace(n.Text()) == ""
}
